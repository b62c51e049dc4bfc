package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

type transferService struct {
	BaseService
	uow    portsrepo.UnitOfWork
	ledger portssvc.BalanceMutator
}

// NewTransferService creates the internal transfer engine.
func NewTransferService(uow portsrepo.UnitOfWork, ledger portssvc.BalanceMutator, opts ...Option) portssvc.TransferSvc {
	return &transferService{BaseService: newBaseService(opts...), uow: uow, ledger: ledger}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

// Transfer debits one account and credits another of the same owner in one atomic unit.
func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*dto.TransferResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrInvalidAmount)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	var debit, credit *portssvc.Posting
	var payment domain.Payment
	err := s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, []string{req.FromAccountID, req.ToAccountID})
		if err != nil {
			return err
		}
		from, ok := accounts[req.FromAccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.FromAccountID)
		}
		to, ok := accounts[req.ToAccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.ToAccountID)
		}
		if !from.OwnedBy(userID) || !to.OwnedBy(userID) {
			return fmt.Errorf("%w: both accounts must belong to the caller", apperrors.ErrForbidden)
		}
		if !from.IsOpen() || !to.IsOpen() {
			return apperrors.ErrAccountNotActive
		}
		if from.CurrencyCode != to.CurrencyCode {
			return fmt.Errorf("%w: currency mismatch %s/%s", apperrors.ErrInvalidAmount, from.CurrencyCode, to.CurrencyCode)
		}

		note := strings.TrimSpace(req.Description)
		debit, err = s.ledger.ApplyInTx(ctx, tx, portssvc.PostingRequest{
			AccountID:   from.AccountID,
			Delta:       -req.Amount,
			Description: describe("Transfer to "+to.Name, note),
			Actor:       userID,
		})
		if err != nil {
			return err
		}
		credit, err = s.ledger.ApplyInTx(ctx, tx, portssvc.PostingRequest{
			AccountID:   to.AccountID,
			Delta:       req.Amount,
			Description: describe("Transfer from "+from.Name, note),
			Actor:       userID,
		})
		if err != nil {
			return err
		}

		now := s.Now()
		payment = domain.Payment{
			PaymentID:            uuid.NewString(),
			UserID:               userID,
			SourceAccountID:      from.AccountID,
			DestinationAccountID: to.AccountID,
			Amount:               req.Amount,
			CurrencyCode:         from.CurrencyCode,
			Description:          note,
			Method:               domain.MethodInternal,
			Status:               domain.PaymentCompleted,
			DebitTransactionID:   debit.Transaction.TransactionID,
			CreditTransactionID:  credit.Transaction.TransactionID,
			ResolvedAt:           &now,
			AuditFields:          domain.NewAuditFields(userID, now),
		}
		return tx.Payments().SavePayment(ctx, payment)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transfer failed",
			slog.String("from_account_id", req.FromAccountID),
			slog.String("to_account_id", req.ToAccountID),
			slog.Int64("amount", req.Amount))
		return nil, fmt.Errorf("transfer failed: %w", err)
	}

	s.ledger.Publish(ctx, *debit, *credit)
	return &dto.TransferResult{
		PaymentID:           payment.PaymentID,
		DebitTransactionID:  debit.Transaction.TransactionID,
		CreditTransactionID: credit.Transaction.TransactionID,
		FromBalance:         debit.NewBalance,
		ToBalance:           credit.NewBalance,
	}, nil
}

// describe joins a generated label with an optional user note.
func describe(label, note string) string {
	if note == "" {
		return label
	}
	return label + ": " + note
}
