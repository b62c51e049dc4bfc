package repositories

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
)

// PaymentRepository defines persistence for payments.
type PaymentRepository interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment overwrites the mutable lifecycle fields of a payment.
	UpdatePayment(ctx context.Context, payment domain.Payment) error

	// FindPaymentByID retrieves a payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentByIDForUpdate retrieves and locks a payment.
	FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByUser retrieves a user's payments, newest first.
	ListPaymentsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Payment, error)

	// ListPayments retrieves a page of all payments, oldest first.
	ListPayments(ctx context.Context, limit int, offset int) ([]domain.Payment, error)
}

// PayeeRepository defines persistence for saved payees.
type PayeeRepository interface {
	SavePayee(ctx context.Context, payee domain.Payee) error
	FindPayeeByID(ctx context.Context, payeeID string) (*domain.Payee, error)
	ListPayeesByUser(ctx context.Context, userID string) ([]domain.Payee, error)
	ListPayees(ctx context.Context, limit int, offset int) ([]domain.Payee, error)
	DeletePayee(ctx context.Context, payeeID string) error
}
