package repositories

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
)

// HoldingRepository defines persistence for positions.
type HoldingRepository interface {
	// FindHolding retrieves the position of an account in a security, or ErrNotFound.
	FindHolding(ctx context.Context, accountID, securityID string) (*domain.Holding, error)

	// FindHoldingByID retrieves a position by its id.
	FindHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error)

	// SaveHolding inserts or replaces a position.
	SaveHolding(ctx context.Context, holding domain.Holding) error

	// DeleteHolding removes a position that reached zero.
	DeleteHolding(ctx context.Context, holdingID string) error

	// ListHoldingsByAccount retrieves every position of an account.
	ListHoldingsByAccount(ctx context.Context, accountID string) ([]domain.Holding, error)

	// ListHoldings retrieves a page of all positions.
	ListHoldings(ctx context.Context, limit int, offset int) ([]domain.Holding, error)
}

// SecurityRepository defines persistence for instrument reference data.
type SecurityRepository interface {
	FindSecurityBySymbol(ctx context.Context, symbol string) (*domain.Security, error)
	FindSecurityByID(ctx context.Context, securityID string) (*domain.Security, error)
	SaveSecurity(ctx context.Context, security domain.Security) error
	// EnsureSecurity inserts security unless its symbol exists, and returns the stored row.
	EnsureSecurity(ctx context.Context, security domain.Security) (*domain.Security, error)
	ListSecurities(ctx context.Context, limit int, offset int) ([]domain.Security, error)
	DeleteSecurity(ctx context.Context, securityID string) error
}

// InvestOrderRepository defines the append-only trade audit trail.
type InvestOrderRepository interface {
	SaveOrder(ctx context.Context, order domain.InvestOrder) error
	FindOrderByID(ctx context.Context, orderID string) (*domain.InvestOrder, error)
	ListOrdersByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.InvestOrder, error)
	ListOrders(ctx context.Context, limit int, offset int) ([]domain.InvestOrder, error)
}
