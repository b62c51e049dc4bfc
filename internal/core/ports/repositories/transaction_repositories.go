package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// FindTransactionByID retrieves a single ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a page of an account's entries, newest first,
	// returning a token for the next page.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindAllTransactionsByAccountID retrieves every entry of an account in posting order.
	FindAllTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a page of all entries in posting order.
	ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries
type TransactionWriter interface {
	// InsertTransaction appends an entry and assigns its posting sequence.
	InsertTransaction(ctx context.Context, txn *domain.Transaction) error

	// FindTransactionByIDForUpdate retrieves and locks an entry.
	FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// UpdateTransactionStatus changes only the status tag and admin message of an entry.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, adminMessage string, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all ledger entry repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
