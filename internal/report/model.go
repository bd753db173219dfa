package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metadata is the dashboard headline block. Revenue counts only orders that
// were actually paid for (paid or completed).
type Metadata struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	WeekRevenue  decimal.Decimal `json:"weekRevenue"`
	OrderCount   int             `json:"orderCount"`
	ItemCount    int             `json:"itemCount"`
}

// Overview maps "YYYY-MM" to revenue for that month, covering the last twelve
// months. Months without revenue are absent.
type Overview map[string]decimal.Decimal

type RecentOrder struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	OwnerName   string          `json:"ownerName"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type LatestOrders struct {
	MonthCount int            `json:"monthCount"`
	Orders     []*RecentOrder `json:"orders"`
}
