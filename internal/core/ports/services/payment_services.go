package services

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

// PaymentWriterSvc defines the user-facing payment lifecycle.
type PaymentWriterSvc interface {
	// InitiatePayment persists a PENDING_OTP payment and returns its one-time passcode. No funds move.
	InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, userID string) (*dto.InitiatePaymentResult, error)

	// ConfirmPayment checks the passcode and, on match, debits the source account.
	ConfirmPayment(ctx context.Context, paymentID string, otp string, userID string) (*domain.Payment, error)

	// CancelPayment aborts a PENDING_OTP payment owned by userID.
	CancelPayment(ctx context.Context, paymentID string, userID string) (*domain.Payment, error)
}

// PaymentReaderSvc defines owner-scoped payment reads.
type PaymentReaderSvc interface {
	GetPayment(ctx context.Context, paymentID string, userID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID string, limit int, offset int) ([]domain.Payment, error)
	ListPayees(ctx context.Context, userID string) ([]domain.Payee, error)
}

// PaymentOperatorSvc defines payment operations reserved to administrators.
type PaymentOperatorSvc interface {
	// RegenerateOTP replaces the passcode of a PENDING_OTP payment; the old code stops working.
	RegenerateOTP(ctx context.Context, paymentID string, adminID string) (*dto.InitiatePaymentResult, error)

	// ForceCancelPayment cancels any PENDING_OTP payment regardless of owner.
	ForceCancelPayment(ctx context.Context, paymentID string, adminID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentWriterSvc
	PaymentReaderSvc
	PaymentOperatorSvc
}
