// Package pgsql is the PostgreSQL ledger store. Row locks are taken with SELECT ... FOR UPDATE
// and held until the enclosing database transaction ends.
package pgsql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository can run
// against the shared pool or inside one transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements portsrepo.UnitOfWork over a connection pool.
type Store struct {
	pool *pgxpool.Pool
	root portsrepo.RepositoryProvider
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

// NewStore creates a store whose root repositories use the pool directly.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, root: NewRepositoryProvider(pool)}
}

// NewRepositoryProvider binds every repository to db.
func NewRepositoryProvider(db DBTX) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     &accountRepository{db: db},
		TransactionRepo: &transactionRepository{db: db},
		PaymentRepo:     &paymentRepository{db: db},
		PayeeRepo:       &payeeRepository{db: db},
		HoldingRepo:     &holdingRepository{db: db},
		SecurityRepo:    &securityRepository{db: db},
		OrderRepo:       &orderRepository{db: db},
	}
}

func (s *Store) Accounts() portsrepo.AccountRepositoryFacade         { return s.root.Accounts() }
func (s *Store) Transactions() portsrepo.TransactionRepositoryFacade { return s.root.Transactions() }
func (s *Store) Payments() portsrepo.PaymentRepository               { return s.root.Payments() }
func (s *Store) Payees() portsrepo.PayeeRepository                   { return s.root.Payees() }
func (s *Store) Holdings() portsrepo.HoldingRepository               { return s.root.Holdings() }
func (s *Store) Securities() portsrepo.SecurityRepository            { return s.root.Securities() }
func (s *Store) Orders() portsrepo.InvestOrderRepository             { return s.root.Orders() }

// WithinTx runs fn inside one READ COMMITTED transaction. Any error from fn, or a panic,
// rolls the transaction back.
func (s *Store) WithinTx(ctx context.Context, fn func(tx portsrepo.Repositories) error) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer s.rollback(ctx, tx)

	if err := fn(NewRepositoryProvider(tx)); err != nil {
		return err
	}
	return s.commit(ctx, tx)
}

func (s *Store) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

func (s *Store) commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// rollback is a no-op after a successful commit.
func (s *Store) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction", slog.String("error", err.Error()))
	}
}
