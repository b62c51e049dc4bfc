package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves every account owned by a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// ListAccounts retrieves a page of all accounts, oldest first.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus changes the lifecycle status of an account.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations that support ledger postings.
// Inside a unit of work the ForUpdate lookups hold the row lock until commit or rollback.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them, in ascending id order.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalance writes the new running balance of a locked account.
	UpdateAccountBalance(ctx context.Context, accountID string, balance int64, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
