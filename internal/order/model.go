package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	Status      Status          `json:"status"`
	UserID      string          `json:"userID"`
	CreatedAt   time.Time       `json:"createdAt"`
	Lines       []*Line         `json:"lines,omitempty"`
}

// Line is one order line. At most one line exists per (order, item) pair;
// UnitPrice is the item price captured when the line was added or last updated.
type Line struct {
	OrderID   string          `json:"orderID"`
	ItemID    string          `json:"itemID"`
	ItemName  string          `json:"itemName,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type Filter struct {
	Description *string
	Status      *Status
	UserID      *string
}
