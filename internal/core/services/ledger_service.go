package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

// ledgerService is the balance mutator: the only code that writes Account.Balance.
type ledgerService struct {
	BaseService
	uow  portsrepo.UnitOfWork
	sink portssvc.AuditSink
}

// NewLedgerService creates the balance mutator. sink may be nil.
func NewLedgerService(uow portsrepo.UnitOfWork, sink portssvc.AuditSink, opts ...Option) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(opts...),
		uow:         uow,
		sink:        sink,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Apply implements portssvc.BalanceMutator
func (s *ledgerService) Apply(ctx context.Context, req portssvc.PostingRequest) (*portssvc.Posting, error) {
	var posting *portssvc.Posting
	err := s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		var err error
		posting, err = s.ApplyInTx(ctx, tx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Publish(ctx, *posting)
	return posting, nil
}

// ApplyInTx implements portssvc.BalanceMutator
func (s *ledgerService) ApplyInTx(ctx context.Context, tx portsrepo.Repositories, req portssvc.PostingRequest) (*portssvc.Posting, error) {
	if req.Status == "" {
		req.Status = domain.TxnPosted
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, req.Status)
	}
	if req.Status.Applied() && req.Delta == 0 {
		return nil, fmt.Errorf("%w: posted delta must be non-zero", apperrors.ErrInvalidAmount)
	}

	accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, []string{req.AccountID})
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %s: %w", req.AccountID, err)
	}
	acc, ok := accounts[req.AccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
	}

	newBalance := acc.Balance
	if req.Status.Applied() {
		newBalance = acc.Balance + req.Delta
		if (req.Delta > 0) != (newBalance > acc.Balance) {
			return nil, fmt.Errorf("%w: balance overflow on account %s", apperrors.ErrInvalidAmount, acc.AccountID)
		}
		if req.Delta < 0 && newBalance < 0 {
			return nil, fmt.Errorf("%w: account %s has %d, needs %d", apperrors.ErrInsufficientFunds, acc.AccountID, acc.Balance, -req.Delta)
		}
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     acc.AccountID,
		PostedAt:      now,
		Description:   req.Description,
		Amount:        req.Delta,
		BalanceAfter:  newBalance,
		Status:        req.Status,
		AdminMessage:  req.AdminMessage,
		AuditFields:   domain.NewAuditFields(req.Actor, now),
	}

	if req.Status.Applied() {
		if err := tx.Accounts().UpdateAccountBalance(ctx, acc.AccountID, newBalance, req.Actor, now); err != nil {
			return nil, fmt.Errorf("failed to update balance of account %s: %w", acc.AccountID, err)
		}
	}
	if err := tx.Transactions().InsertTransaction(ctx, &txn); err != nil {
		return nil, fmt.Errorf("failed to append transaction to account %s: %w", acc.AccountID, err)
	}

	return &portssvc.Posting{Transaction: txn, NewBalance: newBalance}, nil
}

// Publish implements portssvc.BalanceMutator. Only applied postings are money movements.
func (s *ledgerService) Publish(ctx context.Context, postings ...portssvc.Posting) {
	for _, p := range postings {
		if !p.Transaction.Status.Applied() {
			continue
		}
		s.LogInfo(ctx, "Balance mutated",
			slog.String("account_id", p.Transaction.AccountID),
			slog.String("transaction_id", p.Transaction.TransactionID),
			slog.Int64("delta", p.Transaction.Amount),
			slog.Int64("balance_after", p.NewBalance))
		if s.sink == nil {
			continue
		}
		s.sink.Emit(ctx, domain.AuditRecord{
			AccountID:     p.Transaction.AccountID,
			TransactionID: p.Transaction.TransactionID,
			Delta:         p.Transaction.Amount,
			BalanceAfter:  p.NewBalance,
			Description:   p.Transaction.Description,
			Actor:         p.Transaction.CreatedBy,
			OccurredAt:    p.Transaction.PostedAt,
		})
	}
}

// ReclassifyInTx implements portssvc.BalanceMutator. A closed account's entries are frozen.
func (s *ledgerService) ReclassifyInTx(ctx context.Context, tx portsrepo.Repositories, req portssvc.ReclassifyRequest) (*portssvc.Reclassification, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, req.Status)
	}
	txn, err := tx.Transactions().FindTransactionByIDForUpdate(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	out := &portssvc.Reclassification{Transaction: *txn, From: txn.Status}
	if txn.Status == req.Status && txn.AdminMessage == req.AdminMessage {
		return out, nil
	}

	now := s.Now()
	if txn.Status.Applied() != req.Status.Applied() {
		delta := txn.Amount
		if txn.Status.Applied() {
			delta = -txn.Amount
		}
		accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, []string{txn.AccountID})
		if err != nil {
			return nil, fmt.Errorf("failed to lock account %s: %w", txn.AccountID, err)
		}
		acc, ok := accounts[txn.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, txn.AccountID)
		}
		if acc.Status == domain.AccountClosed {
			return nil, fmt.Errorf("%w: account %s is closed", apperrors.ErrAccountNotActive, acc.AccountID)
		}
		newBalance := acc.Balance + delta
		if delta < 0 && newBalance < 0 {
			return nil, fmt.Errorf("%w: reclassifying %s would take account %s to %d",
				apperrors.ErrInsufficientFunds, txn.TransactionID, acc.AccountID, newBalance)
		}
		if delta > 0 && newBalance < acc.Balance {
			return nil, fmt.Errorf("%w: balance overflow on account %s", apperrors.ErrInvalidAmount, acc.AccountID)
		}
		if err := tx.Accounts().UpdateAccountBalance(ctx, acc.AccountID, newBalance, req.Actor, now); err != nil {
			return nil, fmt.Errorf("failed to update balance of account %s: %w", acc.AccountID, err)
		}
		out.Delta = delta
		out.NewBalance = newBalance
	}

	if err := tx.Transactions().UpdateTransactionStatus(ctx, txn.TransactionID, req.Status, req.AdminMessage, req.Actor, now); err != nil {
		return nil, err
	}
	txn.Status = req.Status
	txn.AdminMessage = req.AdminMessage
	txn.Touch(req.Actor, now)
	out.Transaction = *txn
	out.Changed = true
	return out, nil
}

// PublishReclassification implements portssvc.BalanceMutator
func (s *ledgerService) PublishReclassification(ctx context.Context, r portssvc.Reclassification) {
	if r.Delta == 0 {
		return
	}
	s.LogInfo(ctx, "Balance reconciled after reclassification",
		slog.String("transaction_id", r.Transaction.TransactionID),
		slog.Int64("delta", r.Delta),
		slog.Int64("balance_after", r.NewBalance))
	if s.sink == nil {
		return
	}
	s.sink.Emit(ctx, domain.AuditRecord{
		AccountID:     r.Transaction.AccountID,
		TransactionID: r.Transaction.TransactionID,
		Delta:         r.Delta,
		BalanceAfter:  r.NewBalance,
		Description:   fmt.Sprintf("status %s -> %s", r.From, r.Transaction.Status),
		Actor:         r.Transaction.LastUpdatedBy,
		OccurredAt:    r.Transaction.LastUpdatedAt,
	})
}

// Reconcile implements portssvc.LedgerReconcilerSvc
func (s *ledgerService) Reconcile(ctx context.Context, accountID string) (*dto.ReconciliationReport, error) {
	acc, err := s.uow.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	txns, err := s.uow.Transactions().FindAllTransactionsByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger of account %s: %w", accountID, err)
	}

	report := &dto.ReconciliationReport{
		AccountID:          accountID,
		Balance:            acc.Balance,
		ReconstructedTotal: domain.SumApplied(txns),
		TotalEntries:       len(txns),
	}
	for _, t := range txns {
		if t.Status.Applied() {
			report.PostedEntries++
		}
	}
	report.Drift = report.Balance - report.ReconstructedTotal
	if !report.Consistent() {
		s.LogError(ctx, errors.New("ledger drift"), "Balance does not match ledger",
			slog.String("account_id", accountID), slog.Int64("drift", report.Drift))
	}
	return report, nil
}
