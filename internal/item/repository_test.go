package item

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "stock", "price", "user_id", "created_at"}).
		AddRow("i-1", "Widget", "A widget", 10, "5.00", "u-1", time.Now())

	mock.ExpectQuery(`SELECT id, name, description, stock, price, user_id, created_at FROM items WHERE deleted_at IS NULL`).
		WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("5.00")))
}

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, description, stock, price, user_id, created_at FROM items WHERE id = \$1 AND deleted_at IS NULL`).
			WithArgs("i-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "stock", "price", "user_id", "created_at"}).
				AddRow("i-1", "Widget", "A widget", 10, "5.00", "u-1", time.Now()))

		mock.ExpectQuery(`SELECT t.id, t.name FROM tags t JOIN items_to_tags it`).
			WithArgs("i-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("t-1", "hardware"))

		it, err := repo.Get(ctx, "i-1")
		require.NoError(t, err)
		assert.Equal(t, "i-1", it.ID)
		require.Len(t, it.Tags, 1)
		assert.Equal(t, "hardware", it.Tags[0].Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, description, stock, price, user_id, created_at FROM items`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "stock", "price", "user_id", "created_at"}))

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		it := &Item{
			ID: "i-1", Name: "Widget", Description: "A widget",
			Stock: 10, Price: decimal.RequireFromString("5.00"), UserID: "u-1",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tags WHERE id = ANY\(\$1\)`).
			WithArgs(pq.Array([]string{"t-1", "t-2"})).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`INSERT INTO items`).
			WithArgs("i-1", "Widget", "A widget", 10, it.Price, "u-1").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec(`INSERT INTO items_to_tags`).
			WithArgs("i-1", "t-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO items_to_tags`).
			WithArgs("i-1", "t-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(ctx, it, []string{"t-1", "t-2"})
		assert.NoError(t, err)
	})

	t.Run("InvalidTags", func(t *testing.T) {
		it := &Item{
			ID: "i-2", Name: "Widget", Description: "A widget",
			Stock: 10, Price: decimal.RequireFromString("5.00"), UserID: "u-1",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tags WHERE id = ANY\(\$1\)`).
			WithArgs(pq.Array([]string{"t-1", "ghost"})).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.Create(ctx, it, []string{"t-1", "ghost"})
		assert.ErrorIs(t, err, ErrInvalidTags)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	p := UpdateParams{
		ID: "i-1", Name: "Widget v2", Description: "Updated",
		Stock: 7, Price: decimal.RequireFromString("6.50"), TagIDs: []string{"t-1"},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tags WHERE id = ANY\(\$1\)`).
			WithArgs(pq.Array([]string{"t-1"})).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`UPDATE items SET name = \$1, description = \$2, stock = \$3, price = \$4 WHERE id = \$5 AND deleted_at IS NULL`).
			WithArgs("Widget v2", "Updated", 7, p.Price, "i-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM items_to_tags WHERE item_id = \$1`).
			WithArgs("i-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO items_to_tags`).
			WithArgs("i-1", "t-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Update(ctx, p))
	})

	t.Run("NotFound", func(t *testing.T) {
		missing := p
		missing.ID = "missing"

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tags`).
			WithArgs(pq.Array([]string{"t-1"})).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`UPDATE items SET`).
			WithArgs("Widget v2", "Updated", 7, p.Price, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Update(ctx, missing), ErrItemNotFound)
	})
}

func TestRepository_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE items SET deleted_at = NOW\(\) WHERE id = \$1 AND deleted_at IS NULL`).
			WithArgs("i-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(ctx, "i-1"))
	})

	t.Run("AlreadyDeleted", func(t *testing.T) {
		mock.ExpectExec(`UPDATE items SET deleted_at = NOW\(\)`).
			WithArgs("i-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SoftDelete(ctx, "i-1"), ErrItemNotFound)
	})
}
