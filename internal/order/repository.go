package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"erp-be/internal/logger"
	"erp-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, orderID string) (*Order, error)
	Search(ctx context.Context, f Filter) ([]*Order, error)

	AddLine(ctx context.Context, orderID, itemID string, quantity int) (*Order, error)
	UpdateLine(ctx context.Context, orderID, itemID string, quantity int) (*Order, error)
	RemoveLine(ctx context.Context, orderID, itemID string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, action Action) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_id", o.ID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (id, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING total, status, created_at
	`, o.ID, o.Description, o.UserID,
	).Scan(&o.Total, &o.Status, &o.CreatedAt)

	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
	}
	return err
}

func (r *repository) Get(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, description, total, status, user_id, created_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(&o.ID, &o.Description, &o.Total, &o.Status, &o.UserID, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.item_id, i.name, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id = $1
		ORDER BY oi.item_id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.OrderID, &l.ItemID, &l.ItemName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, &l)
	}

	return &o, rows.Err()
}

func (r *repository) Search(ctx context.Context, f Filter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Search"),
		zap.String("description", utils.PtrString(f.Description)),
	)

	query := `
		SELECT o.id, o.description, o.total, o.status, o.user_id, o.created_at
		FROM orders o
	`

	where := []string{}
	args := []any{}

	if f.Description != nil && *f.Description != "" {
		where = append(where, fmt.Sprintf("o.description ILIKE $%d", len(args)+1))
		args = append(args, "%"+*f.Description+"%")
	}
	if f.Status != nil && *f.Status != "" {
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)+1))
		args = append(args, *f.Status)
	}
	if f.UserID != nil && *f.UserID != "" {
		where = append(where, fmt.Sprintf("o.user_id = $%d", len(args)+1))
		args = append(args, *f.UserID)
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Description, &o.Total, &o.Status, &o.UserID, &o.CreatedAt); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	return orders, rows.Err()
}

// lockOrder reads the order row under FOR UPDATE so concurrent mutations
// against the same order serialize on the row lock.
func lockOrder(ctx context.Context, tx *sql.Tx, orderID string) (*Order, error) {
	var o Order
	err := tx.QueryRowContext(ctx, `
		SELECT id, description, total, status, user_id, created_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, orderID).Scan(&o.ID, &o.Description, &o.Total, &o.Status, &o.UserID, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type lockedItem struct {
	ID    string
	Price decimal.Decimal
	Stock int
}

// lockItem reads the item row under FOR UPDATE. With onlyActive the lookup
// is restricted to non-deleted items; line updates and removals still need
// to reach items that were soft-deleted after the line was created.
func lockItem(ctx context.Context, tx *sql.Tx, itemID string, onlyActive bool) (*lockedItem, error) {
	query := `
		SELECT id, price, stock
		FROM items
		WHERE id = $1
		FOR UPDATE
	`
	if onlyActive {
		query = `
		SELECT id, price, stock
		FROM items
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`
	}

	var it lockedItem
	err := tx.QueryRowContext(ctx, query, itemID).Scan(&it.ID, &it.Price, &it.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// recomputeTotal re-derives the order total from its lines inside the same
// transaction instead of maintaining it with arithmetic deltas.
func recomputeTotal(ctx context.Context, tx *sql.Tx, orderID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity * unit_price), 0)
		FROM order_items
		WHERE order_id = $1
	`, orderID).Scan(&total)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET total = $1 WHERE id = $2`,
		total, orderID,
	); err != nil {
		return decimal.Decimal{}, err
	}

	return total, nil
}

func (r *repository) AddLine(ctx context.Context, orderID, itemID string, quantity int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddLine"),
		zap.String("order_id", orderID),
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	o, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.Open() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotOpen, orderID, o.Status)
	}

	it, err := lockItem(ctx, tx, itemID, true)
	if err != nil {
		return nil, err
	}
	if it.Stock < quantity {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, it.Stock)
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM order_items WHERE order_id = $1 AND item_id = $2)`,
		orderID, itemID,
	).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateLine
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
	`, orderID, itemID, quantity, it.Price); err != nil {
		log.Error("failed to insert order line", zap.Error(err))
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE items SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
		quantity, itemID,
	)
	if err != nil {
		return nil, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, it.Stock)
	}

	total, err := recomputeTotal(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	o.Total = total
	log.Info("order line added", zap.String("total", total.String()))
	return o, nil
}

func (r *repository) UpdateLine(ctx context.Context, orderID, itemID string, quantity int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateLine"),
		zap.String("order_id", orderID),
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	o, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.Open() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotOpen, orderID, o.Status)
	}

	it, err := lockItem(ctx, tx, itemID, false)
	if err != nil {
		return nil, err
	}

	var oldQuantity int
	err = tx.QueryRowContext(ctx, `
		SELECT quantity
		FROM order_items
		WHERE order_id = $1 AND item_id = $2
		FOR UPDATE
	`, orderID, itemID).Scan(&oldQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLineNotFound
	}
	if err != nil {
		return nil, err
	}

	// The delta the item gains back: old - new. Reject if the net result
	// would drive stock below zero.
	if it.Stock+oldQuantity-quantity < 0 {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, it.Stock+oldQuantity)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE items SET stock = stock + $1 - $2 WHERE id = $3 AND stock + $1 - $2 >= 0`,
		oldQuantity, quantity, itemID,
	)
	if err != nil {
		return nil, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, it.Stock+oldQuantity)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE order_items
		SET quantity = $1, unit_price = $2
		WHERE order_id = $3 AND item_id = $4
	`, quantity, it.Price, orderID, itemID); err != nil {
		return nil, err
	}

	total, err := recomputeTotal(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	o.Total = total
	log.Info("order line updated", zap.String("total", total.String()))
	return o, nil
}

func (r *repository) RemoveLine(ctx context.Context, orderID, itemID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "RemoveLine"),
		zap.String("order_id", orderID),
		zap.String("item_id", itemID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	o, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status.Open() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotOpen, orderID, o.Status)
	}

	if _, err := lockItem(ctx, tx, itemID, false); err != nil {
		return nil, err
	}

	var lineQuantity int
	err = tx.QueryRowContext(ctx, `
		SELECT quantity
		FROM order_items
		WHERE order_id = $1 AND item_id = $2
		FOR UPDATE
	`, orderID, itemID).Scan(&lineQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLineNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET stock = stock + $1 WHERE id = $2`,
		lineQuantity, itemID,
	); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM order_items WHERE order_id = $1 AND item_id = $2`,
		orderID, itemID,
	); err != nil {
		return nil, err
	}

	total, err := recomputeTotal(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	o.Total = total
	log.Info("order line removed", zap.String("total", total.String()))
	return o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, action Action) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", orderID),
		zap.String("action", string(action)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	// The precondition is re-checked on the locked row so two concurrent
	// requests cannot both observe the same pre-transition status.
	o, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := o.Status.Transition(action)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		next, orderID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	o.Status = next
	log.Info("order status updated", zap.String("status", string(next)))
	return o, nil
}
