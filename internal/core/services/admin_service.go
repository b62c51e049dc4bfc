package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

type adminService struct {
	BaseService
	uow     portsrepo.UnitOfWork
	ledger  portssvc.BalanceMutator
	studios map[domain.EntityKind]portssvc.StudioRepository
}

// NewAdminService creates the admin override and studio service.
func NewAdminService(uow portsrepo.UnitOfWork, ledger portssvc.BalanceMutator, opts ...Option) portssvc.AdminSvcFacade {
	return &adminService{
		BaseService: newBaseService(opts...),
		uow:         uow,
		ledger:      ledger,
		studios:     newStudios(uow),
	}
}

var _ portssvc.AdminSvcFacade = (*adminService)(nil)

// AdminAdjust implements portssvc.AdminOverrideSvc. Debits respect the balance floor.
func (s *adminService) AdminAdjust(ctx context.Context, req dto.AdjustBalanceRequest, adminID string) (*portssvc.Posting, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: adjustment must be non-zero", apperrors.ErrInvalidAmount)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	var posting *portssvc.Posting
	err := s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, []string{req.AccountID})
		if err != nil {
			return err
		}
		acc, ok := accounts[req.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
		}
		if acc.Status == domain.AccountClosed {
			return fmt.Errorf("%w: account %s is closed", apperrors.ErrAccountNotActive, acc.AccountID)
		}
		posting, err = s.ledger.ApplyInTx(ctx, tx, portssvc.PostingRequest{
			AccountID:    acc.AccountID,
			Delta:        req.Delta,
			Description:  description,
			Actor:        adminID,
			AdminMessage: "admin adjustment",
		})
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Admin adjustment rejected", slog.String("account_id", req.AccountID), slog.Int64("delta", req.Delta))
		return nil, fmt.Errorf("admin adjustment failed: %w", err)
	}
	s.ledger.Publish(ctx, *posting)
	return posting, nil
}

// SetTransactionStatus implements portssvc.AdminOverrideSvc.
// Amount and BalanceAfter are never rewritten. When the new status moves the entry into
// or out of the applied set, the balance mutator reconciles the account by the entry amount
// in the same atomic unit, so the sum of POSTED amounts always equals the balance.
func (s *adminService) SetTransactionStatus(ctx context.Context, transactionID string, req dto.SetTransactionStatusRequest, adminID string) (*domain.Transaction, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, req.Status)
	}

	var result *portssvc.Reclassification
	err := s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		var err error
		result, err = s.ledger.ReclassifyInTx(ctx, tx, portssvc.ReclassifyRequest{
			TransactionID: transactionID,
			Status:        req.Status,
			AdminMessage:  req.AdminMessage,
			Actor:         adminID,
		})
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transaction status change rejected", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to set transaction status: %w", err)
	}

	if result.Changed {
		s.LogInfo(ctx, "Transaction status changed",
			slog.String("transaction_id", transactionID),
			slog.String("from", string(result.From)),
			slog.String("to", string(result.Transaction.Status)))
	}
	s.ledger.PublishReclassification(ctx, *result)
	return &result.Transaction, nil
}

// Studio implements portssvc.AdminStudioSvc
func (s *adminService) Studio(kind domain.EntityKind) (portssvc.StudioRepository, error) {
	studio, ok := s.studios[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown entity kind %q", apperrors.ErrValidation, kind)
	}
	return studio, nil
}
