// Package memory is an in-process ledger store. It gives the same atomic-unit guarantees as the
// PostgreSQL store: row locks held until the unit ends, and writes that become visible together.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
)

// Store holds every table in memory. The zero value is not usable; call New.
type Store struct {
	mu    sync.RWMutex
	locks *lockTable
	seq   atomic.Int64

	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	payments     map[string]domain.Payment
	payees       map[string]domain.Payee
	holdings     map[string]domain.Holding
	securities   map[string]domain.Security
	orders       map[string]domain.InvestOrder

	root *scope
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	s := &Store{
		locks:        newLockTable(),
		accounts:     map[string]domain.Account{},
		transactions: map[string]domain.Transaction{},
		payments:     map[string]domain.Payment{},
		payees:       map[string]domain.Payee{},
		holdings:     map[string]domain.Holding{},
		securities:   map[string]domain.Security{},
		orders:       map[string]domain.InvestOrder{},
	}
	s.root = newScope(s, false)
	return s
}

func (s *Store) Accounts() portsrepo.AccountRepositoryFacade         { return s.root.provider().AccountRepo }
func (s *Store) Transactions() portsrepo.TransactionRepositoryFacade { return s.root.provider().TransactionRepo }
func (s *Store) Payments() portsrepo.PaymentRepository               { return s.root.provider().PaymentRepo }
func (s *Store) Payees() portsrepo.PayeeRepository                   { return s.root.provider().PayeeRepo }
func (s *Store) Holdings() portsrepo.HoldingRepository               { return s.root.provider().HoldingRepo }
func (s *Store) Securities() portsrepo.SecurityRepository            { return s.root.provider().SecurityRepo }
func (s *Store) Orders() portsrepo.InvestOrderRepository             { return s.root.provider().OrderRepo }

// WithinTx runs fn in a new unit of work. Row locks taken by ForUpdate lookups are held
// until fn returns; staged writes are published under the store mutex only if fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(tx portsrepo.Repositories) error) (err error) {
	sc := newScope(s, true)
	defer sc.release()
	defer func() {
		if p := recover(); p != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Panic inside memory unit of work, discarding writes", slog.Any("panic", p))
			panic(p)
		}
	}()

	if err := fn(sc.provider()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperrors.NewAppError(500, "unit of work cancelled", err)
	}
	return sc.commit()
}

// scope is one connection scope: either the auto-committing root or a unit of work.
type scope struct {
	s    *Store
	tx   bool
	held []string

	accounts     *overlay[domain.Account]
	transactions *overlay[domain.Transaction]
	payments     *overlay[domain.Payment]
	payees       *overlay[domain.Payee]
	holdings     *overlay[domain.Holding]
	securities   *overlay[domain.Security]
	orders       *overlay[domain.InvestOrder]

	repos portsrepo.RepositoryProvider
}

func newScope(s *Store, tx bool) *scope {
	sc := &scope{
		s:            s,
		tx:           tx,
		accounts:     newOverlay(&s.mu, s.accounts, !tx),
		transactions: newOverlay(&s.mu, s.transactions, !tx),
		payments:     newOverlay(&s.mu, s.payments, !tx),
		payees:       newOverlay(&s.mu, s.payees, !tx),
		holdings:     newOverlay(&s.mu, s.holdings, !tx),
		securities:   newOverlay(&s.mu, s.securities, !tx),
		orders:       newOverlay(&s.mu, s.orders, !tx),
	}
	sc.repos = portsrepo.RepositoryProvider{
		AccountRepo:     &accountRepository{sc: sc},
		TransactionRepo: &transactionRepository{sc: sc},
		PaymentRepo:     &paymentRepository{sc: sc},
		PayeeRepo:       &payeeRepository{sc: sc},
		HoldingRepo:     &holdingRepository{sc: sc},
		SecurityRepo:    &securityRepository{sc: sc},
		OrderRepo:       &orderRepository{sc: sc},
	}
	return sc
}

func (sc *scope) provider() portsrepo.RepositoryProvider { return sc.repos }

// lock takes the row lock for key and keeps it until the unit ends. Outside a unit the
// lock is a no-op, matching SELECT ... FOR UPDATE in autocommit mode.
func (sc *scope) lock(ctx context.Context, key string) error {
	if !sc.tx {
		return nil
	}
	for _, h := range sc.held {
		if h == key {
			return nil
		}
	}
	if err := sc.s.locks.acquire(ctx, key); err != nil {
		return apperrors.NewAppError(500, "failed to acquire row lock "+key, err)
	}
	sc.held = append(sc.held, key)
	return nil
}

// lockAll locks keys in ascending order so concurrent units never deadlock.
func (sc *scope) lockAll(ctx context.Context, keys []string) error {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	for _, k := range sorted {
		if err := sc.lock(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (sc *scope) release() {
	for i := len(sc.held) - 1; i >= 0; i-- {
		sc.s.locks.release(sc.held[i])
	}
	sc.held = nil
}

func (sc *scope) commit() error {
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()

	// symbol is unique across securities
	for id, sec := range sc.securities.staged {
		for otherID, other := range sc.s.securities {
			if otherID != id && other.Symbol == sec.Symbol && !sc.securities.deleted[otherID] {
				return fmt.Errorf("%w: security symbol %s", apperrors.ErrDuplicate, sec.Symbol)
			}
		}
	}

	// holdings point at a live security
	for _, h := range sc.holdings.staged {
		if _, ok := sc.securities.staged[h.SecurityID]; ok {
			continue
		}
		if _, ok := sc.s.securities[h.SecurityID]; !ok || sc.securities.deleted[h.SecurityID] {
			return fmt.Errorf("%w: security %s", apperrors.ErrNotFound, h.SecurityID)
		}
	}
	for id := range sc.securities.deleted {
		for hid, h := range sc.s.holdings {
			if h.SecurityID == id && !sc.holdings.deleted[hid] {
				return fmt.Errorf("%w: security %s is still held", apperrors.ErrValidation, id)
			}
		}
	}

	sc.accounts.apply()
	sc.transactions.apply()
	sc.payments.apply()
	sc.payees.apply()
	sc.holdings.apply()
	sc.securities.apply()
	sc.orders.apply()
	return nil
}

// deleteSecurity removes an unreferenced security, checking holdings under the same lock
// that commits publish under.
func (s *Store) deleteSecurity(securityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.securities[securityID]; !ok {
		return notFound("security", securityID)
	}
	for _, h := range s.holdings {
		if h.SecurityID == securityID {
			return fmt.Errorf("%w: security %s is still held", apperrors.ErrValidation, securityID)
		}
	}
	delete(s.securities, securityID)
	return nil
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, what, id)
}
