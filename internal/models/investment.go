package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Security is a row of the securities table.
type Security struct {
	SecurityID   string `db:"security_id"`
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	Kind         string `db:"kind"`
	AuditFields
}

// Holding is a row of the holdings table.
type Holding struct {
	HoldingID  string          `db:"holding_id"`
	AccountID  string          `db:"account_id"`
	SecurityID string          `db:"security_id"`
	Symbol     string          `db:"symbol"`
	Quantity   decimal.Decimal `db:"quantity"`
	AvgCostP   int64           `db:"avg_cost_p"`
	AuditFields
}

// InvestOrder is a row of the invest_orders table. Orders are never updated.
type InvestOrder struct {
	OrderID       string          `db:"order_id"`
	AccountID     string          `db:"account_id"`
	SecurityID    string          `db:"security_id"`
	Symbol        string          `db:"symbol"`
	Side          string          `db:"side"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitPrice     int64           `db:"unit_price"`
	Notional      int64           `db:"notional"`
	Fee           int64           `db:"fee"`
	Total         int64           `db:"total"`
	Status        string          `db:"status"`
	TransactionID string          `db:"transaction_id"`
	PlacedAt      time.Time       `db:"placed_at"`
	FilledAt      time.Time       `db:"filled_at"`
	CreatedBy     string          `db:"created_by"`
}
