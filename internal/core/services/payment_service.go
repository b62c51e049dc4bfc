package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
	"github.com/SscSPs/simbank_ledger/internal/utils"
)

// Failure reasons recorded on FAILED and CANCELLED payments.
const (
	reasonOTPExpired        = "passcode expired"
	reasonTooManyAttempts   = "too many incorrect passcodes"
	reasonInsufficientFunds = "insufficient funds at confirmation"
	reasonAccountInactive   = "source account is not active"
	reasonUserCancelled     = "cancelled by user"
	reasonOperatorCancelled = "cancelled by operator"
)

type paymentService struct {
	BaseService
	uow    portsrepo.UnitOfWork
	ledger portssvc.BalanceMutator
	otp    OTPPolicy
}

// NewPaymentService creates the external payment lifecycle.
func NewPaymentService(uow portsrepo.UnitOfWork, ledger portssvc.BalanceMutator, otp OTPPolicy, opts ...Option) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: newBaseService(opts...),
		uow:         uow,
		ledger:      ledger,
		otp:         otp,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// InitiatePayment implements portssvc.PaymentWriterSvc. It never touches the balance mutator.
func (s *paymentService) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, userID string) (*dto.InitiatePaymentResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrInvalidAmount)
	}
	destinations := 0
	if req.PayeeID != "" {
		destinations++
	}
	if req.NewPayee != nil {
		destinations++
	}
	vendor := strings.TrimSpace(req.VendorHandle)
	if vendor != "" {
		destinations++
	}
	if destinations != 1 {
		return nil, fmt.Errorf("%w: exactly one of payeeID, newPayee or vendorHandle is required", apperrors.ErrValidation)
	}

	src, err := ownedAccount(ctx, s.uow.Accounts(), req.SourceAccountID, userID)
	if err != nil {
		return nil, err
	}
	if !src.IsOpen() {
		return nil, apperrors.ErrAccountNotActive
	}
	// funds are checked under lock at confirmation

	now := s.Now()
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		UserID:          userID,
		SourceAccountID: src.AccountID,
		Amount:          req.Amount,
		CurrencyCode:    src.CurrencyCode,
		Description:     strings.TrimSpace(req.Description),
		IsExternal:      true,
		Status:          domain.PaymentPendingOTP,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	var newPayee *domain.Payee
	switch {
	case req.PayeeID != "":
		payee, err := s.uow.Payees().FindPayeeByID(ctx, req.PayeeID)
		if err != nil {
			return nil, err
		}
		if payee.UserID != userID {
			return nil, fmt.Errorf("%w: payee %s is not owned by the caller", apperrors.ErrForbidden, req.PayeeID)
		}
		payment.Method = domain.MethodBank
		payment.PayeeID = payee.PayeeID
	case req.NewPayee != nil:
		newPayee = &domain.Payee{
			PayeeID:       uuid.NewString(),
			UserID:        userID,
			Name:          strings.TrimSpace(req.NewPayee.Name),
			RoutingCode:   req.NewPayee.RoutingCode,
			AccountNumber: req.NewPayee.AccountNumber,
			Reference:     req.NewPayee.Reference,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		if newPayee.Name == "" || newPayee.RoutingCode == "" || newPayee.AccountNumber == "" {
			return nil, fmt.Errorf("%w: payee name, routing code and account number are required", apperrors.ErrValidation)
		}
		payment.Method = domain.MethodBank
		payment.PayeeID = newPayee.PayeeID
	default:
		payment.Method = domain.MethodVendor
		payment.VendorHandle = vendor
	}

	code, err := s.otp.issue(now)
	if err != nil {
		return nil, err
	}
	payment.OTPHash = code.Hash
	payment.OTPExpiresAt = &code.ExpiresAt

	err = s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		if newPayee != nil {
			if err := tx.Payees().SavePayee(ctx, *newPayee); err != nil {
				return err
			}
		}
		return tx.Payments().SavePayment(ctx, payment)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to initiate payment", slog.String("account_id", src.AccountID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.LogInfo(ctx, "Payment awaiting passcode",
		slog.String("payment_id", payment.PaymentID),
		slog.String("method", string(payment.Method)),
		slog.Int64("amount", payment.Amount))
	return &dto.InitiatePaymentResult{Payment: payment, OTP: code.Code}, nil
}

// lockPending loads and locks a payment that must still be PENDING_OTP. An empty userID
// skips the ownership check; a payment owned by someone else is reported as absent.
func lockPending(ctx context.Context, tx portsrepo.Repositories, paymentID, userID string) (*domain.Payment, error) {
	p, err := tx.Payments().FindPaymentByIDForUpdate(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if userID != "" && p.UserID != userID {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	if p.Status.Terminal() {
		return nil, fmt.Errorf("%w: payment %s is %s", apperrors.ErrAlreadyProcessed, paymentID, p.Status)
	}
	return p, nil
}

// resolvePayment applies a terminal status, reporting an illegal move as already processed.
func resolvePayment(p *domain.Payment, status domain.PaymentStatus, reason, actor string, now time.Time) error {
	if err := p.Resolve(status, reason, actor, now); err != nil {
		return fmt.Errorf("%w: payment %s: %w", apperrors.ErrAlreadyProcessed, p.PaymentID, err)
	}
	return nil
}

// ConfirmPayment implements portssvc.PaymentWriterSvc.
// The status check, the debit and the COMPLETED transition share one atomic unit, so
// concurrent confirmations produce exactly one debit.
func (s *paymentService) ConfirmPayment(ctx context.Context, paymentID string, otp string, userID string) (*domain.Payment, error) {
	var (
		result  domain.Payment
		posting *portssvc.Posting
		outcome error // business failure recorded on the payment and committed
	)

	err := s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		p, err := lockPending(ctx, tx, paymentID, userID)
		if err != nil {
			return err
		}
		now := s.Now()

		fail := func(reason string, cause error) error {
			if err := resolvePayment(p, domain.PaymentFailed, reason, userID, now); err != nil {
				return err
			}
			outcome = cause
			result = *p
			return tx.Payments().UpdatePayment(ctx, *p)
		}

		if p.OTPExpiresAt != nil && now.After(*p.OTPExpiresAt) {
			return fail(reasonOTPExpired, fmt.Errorf("%w: passcode expired", apperrors.ErrInvalidOTP))
		}
		if !utils.CheckOTPHash(otp, p.OTPHash) {
			p.OTPAttempts++
			if p.OTPAttempts >= s.otp.MaxAttempts {
				return fail(reasonTooManyAttempts, fmt.Errorf("%w: attempts exhausted", apperrors.ErrInvalidOTP))
			}
			p.Touch(userID, now)
			outcome = apperrors.ErrInvalidOTP
			result = *p
			return tx.Payments().UpdatePayment(ctx, *p)
		}

		accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, []string{p.SourceAccountID})
		if err != nil {
			return err
		}
		src, ok := accounts[p.SourceAccountID]
		if !ok || !src.IsOpen() {
			return fail(reasonAccountInactive, apperrors.ErrAccountNotActive)
		}
		if src.Balance < p.Amount {
			return fail(reasonInsufficientFunds, fmt.Errorf("%w: account %s has %d, payment needs %d",
				apperrors.ErrInsufficientFunds, src.AccountID, src.Balance, p.Amount))
		}

		label, err := s.destinationLabel(ctx, tx, p)
		if err != nil {
			return err
		}
		posting, err = s.ledger.ApplyInTx(ctx, tx, portssvc.PostingRequest{
			AccountID:   src.AccountID,
			Delta:       -p.Amount,
			Description: describe("Payment to "+label, p.Description),
			Actor:       userID,
		})
		if err != nil {
			return err
		}

		p.DebitTransactionID = posting.Transaction.TransactionID
		if err := resolvePayment(p, domain.PaymentCompleted, "", userID, now); err != nil {
			return err
		}
		result = *p
		return tx.Payments().UpdatePayment(ctx, *p)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Payment confirmation rejected", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}
	if outcome != nil {
		s.LogFailure(ctx, outcome, "Payment confirmation failed",
			slog.String("payment_id", paymentID), slog.String("status", string(result.Status)))
		return nil, outcome
	}

	s.ledger.Publish(ctx, *posting)
	return &result, nil
}

func (s *paymentService) destinationLabel(ctx context.Context, tx portsrepo.Repositories, p *domain.Payment) (string, error) {
	if p.Method == domain.MethodVendor {
		return p.VendorHandle, nil
	}
	payee, err := tx.Payees().FindPayeeByID(ctx, p.PayeeID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "payee " + p.PayeeID, nil
	}
	if err != nil {
		return "", err
	}
	return payee.Name, nil
}

// CancelPayment implements portssvc.PaymentWriterSvc
func (s *paymentService) CancelPayment(ctx context.Context, paymentID string, userID string) (*domain.Payment, error) {
	return s.cancel(ctx, paymentID, userID, userID, reasonUserCancelled)
}

// ForceCancelPayment implements portssvc.PaymentOperatorSvc
func (s *paymentService) ForceCancelPayment(ctx context.Context, paymentID string, adminID string) (*domain.Payment, error) {
	return s.cancel(ctx, paymentID, "", adminID, reasonOperatorCancelled)
}

func (s *paymentService) cancel(ctx context.Context, paymentID, ownerID, actor, reason string) (*domain.Payment, error) {
	var result domain.Payment
	err := s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		p, err := lockPending(ctx, tx, paymentID, ownerID)
		if err != nil {
			return err
		}
		if err := resolvePayment(p, domain.PaymentCancelled, reason, actor, s.Now()); err != nil {
			return err
		}
		result = *p
		return tx.Payments().UpdatePayment(ctx, *p)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to cancel payment", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to cancel payment: %w", err)
	}
	s.LogInfo(ctx, "Payment cancelled", slog.String("payment_id", paymentID), slog.String("reason", reason))
	return &result, nil
}

// RegenerateOTP implements portssvc.PaymentOperatorSvc
func (s *paymentService) RegenerateOTP(ctx context.Context, paymentID string, adminID string) (*dto.InitiatePaymentResult, error) {
	var result dto.InitiatePaymentResult
	err := s.uow.WithinTx(ctx, func(tx portsrepo.Repositories) error {
		p, err := lockPending(ctx, tx, paymentID, "")
		if err != nil {
			return err
		}
		now := s.Now()
		code, err := s.otp.issue(now)
		if err != nil {
			return err
		}
		p.OTPHash = code.Hash
		p.OTPExpiresAt = &code.ExpiresAt
		p.OTPAttempts = 0
		p.Touch(adminID, now)
		result = dto.InitiatePaymentResult{Payment: *p, OTP: code.Code}
		return tx.Payments().UpdatePayment(ctx, *p)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to regenerate passcode", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to regenerate passcode: %w", err)
	}
	s.LogInfo(ctx, "Passcode regenerated", slog.String("payment_id", paymentID))
	return &result, nil
}

// GetPayment implements portssvc.PaymentReaderSvc
func (s *paymentService) GetPayment(ctx context.Context, paymentID string, userID string) (*domain.Payment, error) {
	p, err := s.uow.Payments().FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	return p, nil
}

// ListPayments implements portssvc.PaymentReaderSvc
func (s *paymentService) ListPayments(ctx context.Context, userID string, limit int, offset int) ([]domain.Payment, error) {
	return s.uow.Payments().ListPaymentsByUser(ctx, userID, clampLimit(limit), offset)
}

// ListPayees implements portssvc.PaymentReaderSvc
func (s *paymentService) ListPayees(ctx context.Context, userID string) ([]domain.Payee, error) {
	return s.uow.Payees().ListPayeesByUser(ctx, userID)
}
