package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
	"github.com/SscSPs/simbank_ledger/internal/utils"
)

// maxQuantityScale is the number of fractional digits a quantity may carry.
const maxQuantityScale = 8

type tradeService struct {
	BaseService
	uow    portsrepo.UnitOfWork
	ledger portssvc.BalanceMutator
	oracle portssvc.PriceOracle
	fees   FeePolicy
}

// NewTradeService creates the trade execution engine.
func NewTradeService(uow portsrepo.UnitOfWork, ledger portssvc.BalanceMutator, oracle portssvc.PriceOracle, fees FeePolicy, opts ...Option) portssvc.TradeSvc {
	return &tradeService{
		BaseService: newBaseService(opts...),
		uow:         uow,
		ledger:      ledger,
		oracle:      oracle,
		fees:        fees,
	}
}

var _ portssvc.TradeSvc = (*tradeService)(nil)

func checkTradable(acc *domain.Account, userID string) error {
	if !acc.OwnedBy(userID) {
		return fmt.Errorf("%w: account %s is not owned by the caller", apperrors.ErrForbidden, acc.AccountID)
	}
	if acc.Kind != domain.KindInvestment {
		return fmt.Errorf("%w: account %s is not an investment account", apperrors.ErrValidation, acc.AccountID)
	}
	if !acc.IsOpen() {
		return apperrors.ErrAccountNotActive
	}
	return nil
}

// ExecuteOrder implements portssvc.TradeSvc.
// The oracle is queried once; the holding update, the cash posting and the order record
// then commit together or not at all.
func (s *tradeService) ExecuteOrder(ctx context.Context, req dto.ExecuteOrderRequest, userID string) (*dto.OrderResult, error) {
	if !req.Side.Valid() {
		return nil, fmt.Errorf("%w: unknown side %q", apperrors.ErrValidation, req.Side)
	}
	qty := req.Quantity
	if !qty.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidAmount)
	}
	if !qty.Equal(qty.Truncate(maxQuantityScale)) {
		return nil, fmt.Errorf("%w: quantity supports at most %d decimal places", apperrors.ErrInvalidAmount, maxQuantityScale)
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", apperrors.ErrValidation)
	}

	acc, err := s.uow.Accounts().FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if err := checkTradable(acc, userID); err != nil {
		return nil, err
	}

	placedAt := s.Now()
	price, err := s.oracle.Quote(ctx, symbol)
	if err != nil {
		s.LogFailure(ctx, err, "Price oracle failed", slog.String("symbol", symbol))
		return nil, fmt.Errorf("failed to quote %s: %w", symbol, err)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: oracle returned non-positive price %d for %s", apperrors.ErrInternal, price, symbol)
	}

	notional, err := Notional(price, qty)
	if err != nil {
		return nil, err
	}
	if notional <= 0 {
		return nil, fmt.Errorf("%w: order value rounds to zero", apperrors.ErrInvalidAmount)
	}
	fee, err := s.fees.Fee(notional)
	if err != nil {
		return nil, err
	}

	var (
		posting *portssvc.Posting
		holding *domain.Holding
		order   domain.InvestOrder
	)
	err = s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, []string{acc.AccountID})
		if err != nil {
			return err
		}
		locked, ok := accounts[acc.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, acc.AccountID)
		}
		if err := checkTradable(&locked, userID); err != nil {
			return err
		}

		security, err := s.ensureSecurity(ctx, tx, symbol, locked.CurrencyCode, userID)
		if err != nil {
			return err
		}
		if security.CurrencyCode != locked.CurrencyCode {
			return fmt.Errorf("%w: %s trades in %s, account is %s", apperrors.ErrInvalidAmount, symbol, security.CurrencyCode, locked.CurrencyCode)
		}

		current, err := tx.Holdings().FindHolding(ctx, locked.AccountID, security.SecurityID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		now := s.Now()

		var total, delta int64
		switch req.Side {
		case domain.SideBuy:
			total, err = addMinor(notional, fee)
			if err != nil {
				return err
			}
			if locked.Balance < total {
				return fmt.Errorf("%w: account %s has %d, order needs %d", apperrors.ErrInsufficientFunds, locked.AccountID, locked.Balance, total)
			}
			if current == nil {
				current = &domain.Holding{
					HoldingID:   uuid.NewString(),
					AccountID:   locked.AccountID,
					SecurityID:  security.SecurityID,
					Symbol:      symbol,
					AuditFields: domain.NewAuditFields(userID, now),
				}
			}
			current.Buy(qty, price)
			current.Touch(userID, now)
			if err := tx.Holdings().SaveHolding(ctx, *current); err != nil {
				return err
			}
			holding = current
			delta = -total

		case domain.SideSell:
			if current == nil {
				return fmt.Errorf("%w: no position in %s", apperrors.ErrInsufficientPosition, symbol)
			}
			empty, err := current.Sell(qty)
			if err != nil {
				return fmt.Errorf("%w: holding %s, requested %s", apperrors.ErrInsufficientPosition, current.Quantity, qty)
			}
			total = notional - fee
			if total <= 0 {
				return fmt.Errorf("%w: fee %d exceeds proceeds %d", apperrors.ErrInvalidAmount, fee, notional)
			}
			current.Touch(userID, now)
			if empty {
				if err := tx.Holdings().DeleteHolding(ctx, current.HoldingID); err != nil {
					return err
				}
			} else {
				if err := tx.Holdings().SaveHolding(ctx, *current); err != nil {
					return err
				}
				holding = current
			}
			delta = total
		}

		posting, err = s.ledger.ApplyInTx(ctx, tx, portssvc.PostingRequest{
			AccountID:   locked.AccountID,
			Delta:       delta,
			Description: tradeDescription(req.Side, symbol, qty, price, fee, locked.CurrencyCode),
			Actor:       userID,
		})
		if err != nil {
			return err
		}

		order = domain.InvestOrder{
			OrderID:       uuid.NewString(),
			AccountID:     locked.AccountID,
			SecurityID:    security.SecurityID,
			Symbol:        symbol,
			Side:          req.Side,
			Quantity:      qty,
			UnitPrice:     price,
			Notional:      notional,
			Fee:           fee,
			Total:         total,
			Status:        domain.OrderFilled,
			TransactionID: posting.Transaction.TransactionID,
			PlacedAt:      placedAt,
			FilledAt:      now,
			CreatedBy:     userID,
		}
		return tx.Orders().SaveOrder(ctx, order)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Order rejected",
			slog.String("account_id", req.AccountID),
			slog.String("symbol", symbol),
			slog.String("side", string(req.Side)),
			slog.String("quantity", qty.String()))
		return nil, fmt.Errorf("order failed: %w", err)
	}

	s.ledger.Publish(ctx, *posting)
	s.LogInfo(ctx, "Order filled",
		slog.String("order_id", order.OrderID),
		slog.String("symbol", symbol),
		slog.Int64("unit_price", price),
		slog.Int64("total", order.Total))
	return &dto.OrderResult{Order: order, Holding: holding, NewBalance: posting.NewBalance}, nil
}

// ensureSecurity returns the security for symbol, creating it on first reference inside
// the order's unit so a rejected order leaves nothing behind.
func (s *tradeService) ensureSecurity(ctx context.Context, tx portsrepo.Repositories, symbol, currency, actor string) (*domain.Security, error) {
	sec, err := tx.Securities().FindSecurityBySymbol(ctx, symbol)
	if err == nil {
		return sec, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	candidate := domain.Security{
		SecurityID:   uuid.NewString(),
		Symbol:       symbol,
		Name:         symbol,
		CurrencyCode: currency,
		Kind:         domain.SecurityEquity,
		AuditFields:  domain.NewAuditFields(actor, s.Now()),
	}
	sec, err = tx.Securities().EnsureSecurity(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to create security %s: %w", symbol, err)
	}
	if sec.SecurityID == candidate.SecurityID {
		s.LogInfo(ctx, "Security created on first reference", slog.String("symbol", symbol))
	}
	return sec, nil
}

// tradeDescription renders e.g. "BUY 100 ABC @ £50.00 (fee £5.00)".
func tradeDescription(side domain.OrderSide, symbol string, qty decimal.Decimal, price, fee int64, currency string) string {
	return fmt.Sprintf("%s %s %s @ %s (fee %s)", side, qty.String(), symbol,
		utils.FormatMinor(price, currency), utils.FormatMinor(fee, currency))
}

// ListOrders implements portssvc.TradeSvc
func (s *tradeService) ListOrders(ctx context.Context, accountID string, userID string, limit int, offset int) ([]domain.InvestOrder, error) {
	if _, err := ownedAccount(ctx, s.uow.Accounts(), accountID, userID); err != nil {
		return nil, err
	}
	return s.uow.Orders().ListOrdersByAccount(ctx, accountID, clampLimit(limit), offset)
}
