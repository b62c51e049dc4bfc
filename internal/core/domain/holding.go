package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrPositionTooSmall is returned by Holding.Sell when quantity exceeds the position.
var ErrPositionTooSmall = errors.New("position smaller than requested quantity")

// Holding is a position of an investment account in one security.
// Quantity is fractional; AvgCostP is the floor of the quantity-weighted acquisition price in minor units.
type Holding struct {
	HoldingID  string          `json:"holdingID"`
	AccountID  string          `json:"accountID"`
	SecurityID string          `json:"securityID"`
	Symbol     string          `json:"symbol"`
	Quantity   decimal.Decimal `json:"quantity"`
	AvgCostP   int64           `json:"avgCostP"`
	AuditFields
}

// Buy adds quantity at price and recomputes the average cost.
// newAvg = floor((oldQty*oldAvg + qty*price) / (oldQty+qty)).
func (h *Holding) Buy(quantity decimal.Decimal, price int64) {
	if h.Quantity.IsZero() {
		h.Quantity = quantity
		h.AvgCostP = price
		return
	}
	held := h.Quantity.Mul(decimal.NewFromInt(h.AvgCostP))
	bought := quantity.Mul(decimal.NewFromInt(price))
	newQty := h.Quantity.Add(quantity)
	// QuoRem at precision 0 truncates exactly; Div would round to 16 places first.
	q, _ := held.Add(bought).QuoRem(newQty, 0)
	h.AvgCostP = q.IntPart()
	h.Quantity = newQty
}

// Sell removes quantity from the position. AvgCostP is untouched.
// It reports whether the position is now empty and must be removed.
func (h *Holding) Sell(quantity decimal.Decimal) (empty bool, err error) {
	if h.Quantity.LessThan(quantity) {
		return false, ErrPositionTooSmall
	}
	h.Quantity = h.Quantity.Sub(quantity)
	return h.Quantity.IsZero(), nil
}
