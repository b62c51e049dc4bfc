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
	"github.com/SscSPs/simbank_ledger/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type accountService struct {
	BaseService
	uow portsrepo.UnitOfWork
}

// NewAccountService creates the account read and lifecycle service.
func NewAccountService(uow portsrepo.UnitOfWork, opts ...Option) portssvc.AccountSvcFacade {
	return &accountService{BaseService: newBaseService(opts...), uow: uow}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ownedAccount loads an account and checks it belongs to userID.
func ownedAccount(ctx context.Context, repo portsrepo.AccountReader, accountID, userID string) (*domain.Account, error) {
	acc, err := repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acc.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: account %s is not owned by the caller", apperrors.ErrForbidden, accountID)
	}
	return acc, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func (s *accountService) GetAccount(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	return ownedAccount(ctx, s.uow.Accounts(), accountID, userID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.uow.Accounts().ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ListTransactions(ctx context.Context, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := ownedAccount(ctx, s.uow.Accounts(), accountID, userID); err != nil {
		return nil, err
	}
	txns, next, err := s.uow.Transactions().ListTransactionsByAccountID(ctx, accountID, clampLimit(params.Limit), params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	}, nil
}

func (s *accountService) ListHoldings(ctx context.Context, accountID string, userID string) ([]domain.Holding, error) {
	if _, err := ownedAccount(ctx, s.uow.Accounts(), accountID, userID); err != nil {
		return nil, err
	}
	return s.uow.Holdings().ListHoldingsByAccount(ctx, accountID)
}

func (s *accountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, adminID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.UserID == "" {
		return nil, fmt.Errorf("%w: owner and name are required", apperrors.ErrValidation)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, req.Kind)
	}
	currency := strings.ToUpper(req.CurrencyCode)
	if !utils.KnownCurrency(currency) {
		return nil, fmt.Errorf("%w: unknown currency %q", apperrors.ErrValidation, req.CurrencyCode)
	}

	now := s.Now()
	acc := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       req.UserID,
		Name:         name,
		Kind:         req.Kind,
		CurrencyCode: currency,
		Status:       domain.AccountOpen,
		AuditFields:  domain.NewAuditFields(adminID, now),
	}
	if err := s.uow.Accounts().SaveAccount(ctx, acc); err != nil {
		s.LogFailure(ctx, err, "Failed to open account", slog.String("user_id", req.UserID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.LogInfo(ctx, "Account opened", slog.String("account_id", acc.AccountID), slog.String("kind", string(acc.Kind)))
	return &acc, nil
}

func (s *accountService) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, adminID string) (*domain.Account, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}

	var result domain.Account
	err := s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, []string{accountID})
		if err != nil {
			return err
		}
		acc, ok := accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if acc.Status == status {
			result = acc
			return nil
		}
		if acc.Status == domain.AccountClosed {
			return fmt.Errorf("%w: closed accounts cannot be reopened", apperrors.ErrAccountNotActive)
		}
		if status == domain.AccountClosed {
			if acc.Balance != 0 {
				return fmt.Errorf("%w: account %s still holds %d", apperrors.ErrValidation, accountID, acc.Balance)
			}
			holdings, err := tx.Holdings().ListHoldingsByAccount(ctx, accountID)
			if err != nil {
				return err
			}
			if len(holdings) > 0 {
				return fmt.Errorf("%w: account %s still has %d open positions", apperrors.ErrValidation, accountID, len(holdings))
			}
		}

		now := s.Now()
		if err := tx.Accounts().UpdateAccountStatus(ctx, accountID, status, adminID, now); err != nil {
			return err
		}
		acc.Status = status
		acc.Touch(adminID, now)
		result = acc
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to change account status", slog.String("account_id", accountID), slog.String("status", string(status)))
		return nil, fmt.Errorf("failed to change account status: %w", err)
	}
	return &result, nil
}
