package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSide is BUY or SELL.
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// Valid reports whether s is BUY or SELL.
func (s OrderSide) Valid() bool { return s == SideBuy || s == SideSell }

// OrderStatus of an executed trade. Partial fills are not modeled.
type OrderStatus string

const OrderFilled OrderStatus = "FILLED"

// InvestOrder is the append-only audit record of one executed trade.
type InvestOrder struct {
	OrderID       string          `json:"orderID"`
	AccountID     string          `json:"accountID"`
	SecurityID    string          `json:"securityID"`
	Symbol        string          `json:"symbol"`
	Side          OrderSide       `json:"side"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     int64           `json:"unitPrice"`
	Notional      int64           `json:"notional"`
	Fee           int64           `json:"fee"`
	Total         int64           `json:"total"` // cash debited on BUY, credited on SELL
	Status        OrderStatus     `json:"status"`
	TransactionID string          `json:"transactionID"`
	PlacedAt      time.Time       `json:"placedAt"`
	FilledAt      time.Time       `json:"filledAt"`
	CreatedBy     string          `json:"createdBy"`
}
