package tag

import (
	"context"
	"database/sql"

	"erp-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Tag, error)
	Create(ctx context.Context, t *Tag) error
	Update(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Tag, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := `
		SELECT t.id, t.name, COUNT(it.tag_id)
		FROM tags t
		LEFT JOIN items_to_tags it ON it.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY t.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tags", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Count); err != nil {
			log.Error("failed to scan tag row", zap.Error(err))
			return nil, err
		}
		tags = append(tags, &t)
	}

	return tags, rows.Err()
}

func (r *repository) Create(ctx context.Context, t *Tag) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("tag_name", t.Name),
	)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name) VALUES ($1, $2)`,
		t.ID, t.Name,
	)
	if err != nil {
		log.Error("failed to insert tag", zap.Error(err))
	}
	return err
}

func (r *repository) Update(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tags SET name = $1 WHERE id = $2`,
		name, id,
	)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM items_to_tags WHERE tag_id = $1`, id,
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrTagNotFound
	}

	return tx.Commit()
}
