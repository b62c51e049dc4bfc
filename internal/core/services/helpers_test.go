package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/SscSPs/simbank_ledger/internal/adapters/database/memory"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/core/services"
)

// fakeClock is a settable clock shared by every service under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// recordingSink captures audit records.
type recordingSink struct {
	mu      sync.Mutex
	records []domain.AuditRecord
}

func (s *recordingSink) Emit(_ context.Context, rec domain.AuditRecord) {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
}

func (s *recordingSink) Records() []domain.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditRecord(nil), s.records...)
}

// stubOracle returns fixed prices and counts calls.
type stubOracle struct {
	mu     sync.Mutex
	prices map[string]int64
	calls  atomic.Int64
}

func (o *stubOracle) Quote(_ context.Context, symbol string) (int64, error) {
	o.calls.Add(1)
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.prices[symbol], nil
}

func (o *stubOracle) Set(symbol string, price int64) {
	o.mu.Lock()
	o.prices[symbol] = price
	o.mu.Unlock()
}

// ledgerSuite wires the real services over an in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	clock  *fakeClock
	sink   *recordingSink
	oracle *stubOracle
	svc    *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.clock = &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	s.sink = &recordingSink{}
	s.oracle = &stubOracle{prices: map[string]int64{}}

	otp := services.DefaultOTPPolicy
	otp.HashCost = bcrypt.MinCost
	s.svc = services.NewServiceContainerWithPolicies(
		services.Dependencies{Store: s.store, Oracle: s.oracle, Sink: s.sink},
		services.DefaultFeePolicy,
		otp,
		services.WithClock(s.clock.Now),
	)
}

// seedAccount stores an OPEN account with an opening balance posted through the ledger.
func (s *ledgerSuite) seedAccount(id, userID string, kind domain.AccountKind, balance int64) domain.Account {
	acc := domain.Account{
		AccountID:    id,
		UserID:       userID,
		Name:         id,
		Kind:         kind,
		CurrencyCode: "GBP",
		Status:       domain.AccountOpen,
		AuditFields:  domain.NewAuditFields("admin", s.clock.Now()),
	}
	s.Require().NoError(s.store.Accounts().SaveAccount(s.ctx, acc))
	if balance != 0 {
		_, err := s.svc.Ledger.Apply(s.ctx, portssvc.PostingRequest{
			AccountID: id, Delta: balance, Description: "opening balance", Actor: "admin",
		})
		s.Require().NoError(err)
	}
	acc.Balance = balance
	return acc
}

func (s *ledgerSuite) balance(accountID string) int64 {
	acc, err := s.store.Accounts().FindAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *ledgerSuite) ledger(accountID string) []domain.Transaction {
	txns, err := s.store.Transactions().FindAllTransactionsByAccountID(s.ctx, accountID)
	s.Require().NoError(err)
	return txns
}

// assertReconciles checks the sum of POSTED entries equals the stored balance.
func (s *ledgerSuite) assertReconciles(accountIDs ...string) {
	for _, id := range accountIDs {
		report, err := s.svc.Ledger.Reconcile(s.ctx, id)
		s.Require().NoError(err)
		s.Truef(report.Consistent(), "account %s drifted by %d", id, report.Drift)
	}
}
