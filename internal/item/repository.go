package item

import (
	"context"
	"database/sql"
	"errors"

	"erp-be/internal/logger"
	"erp-be/internal/tag"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, it *Item, tagIDs []string) error
	Update(ctx context.Context, p UpdateParams) error
	SoftDelete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := `
		SELECT id, name, description, stock, price, user_id, created_at
		FROM items
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Stock, &it.Price,
			&it.UserID, &it.CreatedAt,
		); err != nil {
			log.Error("failed to scan item row", zap.Error(err))
			return nil, err
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, stock, price, user_id, created_at
		FROM items
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Stock, &it.Price,
		&it.UserID, &it.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM tags t
		JOIN items_to_tags it ON it.tag_id = t.id
		WHERE it.item_id = $1
		ORDER BY t.id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		it.Tags = append(it.Tags, &t)
	}

	return &it, rows.Err()
}

// countTags verifies that every referenced tag exists.
func countTags(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, tagIDs []string,
) error {
	if len(tagIDs) == 0 {
		return nil
	}

	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE id = ANY($1)`,
		pq.Array(tagIDs),
	).Scan(&n)
	if err != nil {
		return err
	}
	if n != len(tagIDs) {
		return ErrInvalidTags
	}
	return nil
}

func (r *repository) Create(ctx context.Context, it *Item, tagIDs []string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("item_id", it.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := countTags(ctx, tx, tagIDs); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO items (id, name, description, stock, price, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, it.ID, it.Name, it.Description, it.Stock, it.Price, it.UserID,
	).Scan(&it.CreatedAt)
	if err != nil {
		log.Error("failed to insert item", zap.Error(err))
		return err
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items_to_tags (item_id, tag_id) VALUES ($1, $2)`,
			it.ID, tagID,
		); err != nil {
			log.Error("failed to link tag", zap.String("tag_id", tagID), zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, p UpdateParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("item_id", p.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := countTags(ctx, tx, p.TagIDs); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE items
		SET name = $1, description = $2, stock = $3, price = $4
		WHERE id = $5 AND deleted_at IS NULL
	`, p.Name, p.Description, p.Stock, p.Price, p.ID)
	if err != nil {
		log.Error("failed to update item", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM items_to_tags WHERE item_id = $1`, p.ID,
	); err != nil {
		return err
	}

	for _, tagID := range p.TagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items_to_tags (item_id, tag_id) VALUES ($1, $2)`,
			p.ID, tagID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}
