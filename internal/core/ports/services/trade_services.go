package services

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

// PriceOracle returns the current unit price of a symbol in minor units.
type PriceOracle interface {
	Quote(ctx context.Context, symbol string) (int64, error)
}

// TradeSvc executes investment orders against cash and holdings.
type TradeSvc interface {
	// ExecuteOrder fills a BUY or SELL at the oracle price locked at entry.
	ExecuteOrder(ctx context.Context, req dto.ExecuteOrderRequest, userID string) (*dto.OrderResult, error)

	// ListOrders retrieves the executed orders of an owned account, newest first.
	ListOrders(ctx context.Context, accountID string, userID string, limit int, offset int) ([]domain.InvestOrder, error)
}
