package services

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

// AccountReaderSvc defines owner-scoped read operations.
type AccountReaderSvc interface {
	// GetAccount retrieves an account owned by userID.
	GetAccount(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves every account owned by userID.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// ListTransactions retrieves a page of an owned account's ledger, newest first.
	ListTransactions(ctx context.Context, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListHoldings retrieves the positions of an owned investment account.
	ListHoldings(ctx context.Context, accountID string, userID string) ([]domain.Holding, error)
}

// AccountLifecycleSvc defines operator-only lifecycle operations.
type AccountLifecycleSvc interface {
	// OpenAccount creates an account with a zero balance in OPEN status.
	OpenAccount(ctx context.Context, req dto.OpenAccountRequest, adminID string) (*domain.Account, error)

	// SetAccountStatus moves an account through its lifecycle. CLOSED is final.
	SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, adminID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountLifecycleSvc
}
