package repositories

import "context"

// Repositories gives access to every entity repository bound to one connection scope:
// either the shared pool or a single database transaction.
type Repositories interface {
	Accounts() AccountRepositoryFacade
	Transactions() TransactionRepositoryFacade
	Payments() PaymentRepository
	Payees() PayeeRepository
	Holdings() HoldingRepository
	Securities() SecurityRepository
	Orders() InvestOrderRepository
}

// UnitOfWork runs a set of repository calls as one atomic unit.
type UnitOfWork interface {
	Repositories

	// WithinTx runs fn against transaction-scoped repositories. A non-nil return from fn
	// rolls everything back; otherwise all writes become visible together on commit.
	WithinTx(ctx context.Context, fn func(tx Repositories) error) error
}
