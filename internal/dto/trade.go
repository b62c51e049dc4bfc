package dto

import (
	"time"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExecuteOrderRequest places a market order on an investment account.
type ExecuteOrderRequest struct {
	AccountID string           `json:"accountID" binding:"required"`
	Symbol    string           `json:"symbol" binding:"required,symbol"`
	Side      domain.OrderSide `json:"side" binding:"required,oneof=BUY SELL"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
}

// OrderResult is the outcome of an executed order.
type OrderResult struct {
	Order      domain.InvestOrder `json:"order"`
	Holding    *domain.Holding    `json:"holding,omitempty"` // nil when a SELL closed the position
	NewBalance int64              `json:"newBalance"`
}

// OrderResponse defines the data returned for an executed order.
type OrderResponse struct {
	OrderID   string             `json:"orderID"`
	AccountID string             `json:"accountID"`
	Symbol    string             `json:"symbol"`
	Side      domain.OrderSide   `json:"side"`
	Quantity  decimal.Decimal    `json:"quantity"`
	UnitPrice int64              `json:"unitPrice"`
	Notional  int64              `json:"notional"`
	Fee       int64              `json:"fee"`
	Total     int64              `json:"total"`
	Status    domain.OrderStatus `json:"status"`
	FilledAt  time.Time          `json:"filledAt"`
}

// ToOrderResponse converts a domain.InvestOrder to OrderResponse DTO.
func ToOrderResponse(o *domain.InvestOrder) OrderResponse {
	return OrderResponse{
		OrderID:   o.OrderID,
		AccountID: o.AccountID,
		Symbol:    o.Symbol,
		Side:      o.Side,
		Quantity:  o.Quantity,
		UnitPrice: o.UnitPrice,
		Notional:  o.Notional,
		Fee:       o.Fee,
		Total:     o.Total,
		Status:    o.Status,
		FilledAt:  o.FilledAt,
	}
}

// HoldingResponse defines the data returned for a position.
type HoldingResponse struct {
	HoldingID  string          `json:"holdingID"`
	SecurityID string          `json:"securityID"`
	Symbol     string          `json:"symbol"`
	Quantity   decimal.Decimal `json:"quantity"`
	AvgCostP   int64           `json:"avgCostP"`
}

// ToHoldingResponses converts a slice of domain.Holding to []HoldingResponse.
func ToHoldingResponses(hs []domain.Holding) []HoldingResponse {
	res := make([]HoldingResponse, len(hs))
	for i, h := range hs {
		res[i] = HoldingResponse{
			HoldingID:  h.HoldingID,
			SecurityID: h.SecurityID,
			Symbol:     h.Symbol,
			Quantity:   h.Quantity,
			AvgCostP:   h.AvgCostP,
		}
	}
	return res
}

// TradeResponse is returned after an order fills.
type TradeResponse struct {
	Order      OrderResponse    `json:"order"`
	Holding    *HoldingResponse `json:"holding,omitempty"`
	NewBalance int64            `json:"newBalance"`
}
