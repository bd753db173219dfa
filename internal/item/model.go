package item

import (
	"time"

	"erp-be/internal/tag"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	UserID      string          `json:"userID"`
	CreatedAt   time.Time       `json:"createdAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
	Tags        []*tag.Tag      `json:"tags,omitempty"`
}

type CreateParams struct {
	Name        string
	Description string
	Stock       int
	Price       decimal.Decimal
	TagIDs      []string
	UserID      string
}

type UpdateParams struct {
	ID          string
	Name        string
	Description string
	Stock       int
	Price       decimal.Decimal
	TagIDs      []string
}
