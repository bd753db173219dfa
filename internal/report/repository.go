package report

import (
	"context"
	"database/sql"

	"erp-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Metadata(ctx context.Context) (*Metadata, error)
	Overview(ctx context.Context) (Overview, error)
	LatestOrders(ctx context.Context) (*LatestOrders, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Metadata(ctx context.Context) (*Metadata, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Metadata"),
	)

	var m Metadata
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT SUM(total) FROM orders WHERE status IN ('paid', 'completed')), 0),
			COALESCE((SELECT SUM(total) FROM orders WHERE status IN ('paid', 'completed') AND created_at >= NOW() - INTERVAL '7 days'), 0),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM items WHERE deleted_at IS NULL)
	`).Scan(&m.TotalRevenue, &m.WeekRevenue, &m.OrderCount, &m.ItemCount)
	if err != nil {
		log.Error("failed to query metadata", zap.Error(err))
		return nil, err
	}

	return &m, nil
}

func (r *repository) Overview(ctx context.Context) (Overview, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Overview"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(created_at, 'YYYY-MM') AS month, SUM(total)
		FROM orders
		WHERE status IN ('paid', 'completed')
		  AND created_at >= date_trunc('month', NOW()) - INTERVAL '11 months'
		GROUP BY month
		ORDER BY month ASC
	`)
	if err != nil {
		log.Error("failed to query monthly revenue", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	overview := Overview{}
	for rows.Next() {
		var month string
		var revenue decimal.Decimal
		if err := rows.Scan(&month, &revenue); err != nil {
			log.Error("failed to scan revenue row", zap.Error(err))
			return nil, err
		}
		overview[month] = revenue
	}

	return overview, rows.Err()
}

func (r *repository) LatestOrders(ctx context.Context) (*LatestOrders, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "LatestOrders"),
	)

	var out LatestOrders
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE created_at >= date_trunc('month', NOW())
	`).Scan(&out.MonthCount)
	if err != nil {
		log.Error("failed to count orders this month", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.description, o.total, o.status, u.name, o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT 5
	`)
	if err != nil {
		log.Error("failed to query latest orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.Description, &o.Total, &o.Status, &o.OwnerName, &o.CreatedAt); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		out.Orders = append(out.Orders, &o)
	}

	return &out, rows.Err()
}
