package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
)

type paymentRepository struct {
	sc *scope
}

var _ portsrepo.PaymentRepository = (*paymentRepository)(nil)

func (r *paymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	if _, exists := r.sc.payments.get(payment.PaymentID); exists {
		return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, payment.PaymentID)
	}
	r.sc.payments.put(payment.PaymentID, payment)
	return nil
}

func (r *paymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	if _, exists := r.sc.payments.get(payment.PaymentID); !exists {
		return notFound("payment", payment.PaymentID)
	}
	r.sc.payments.put(payment.PaymentID, payment)
	return nil
}

func (r *paymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	p, ok := r.sc.payments.get(paymentID)
	if !ok {
		return nil, notFound("payment", paymentID)
	}
	return &p, nil
}

func (r *paymentRepository) FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if err := r.sc.lock(ctx, "payment:"+paymentID); err != nil {
		return nil, err
	}
	return r.FindPaymentByID(ctx, paymentID)
}

func (r *paymentRepository) ListPaymentsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.sc.payments.all() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].PaymentID > out[j].PaymentID
	})
	return page(out, limit, offset), nil
}

func (r *paymentRepository) ListPayments(ctx context.Context, limit int, offset int) ([]domain.Payment, error) {
	all := r.sc.payments.all()
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].PaymentID < all[j].PaymentID
	})
	return page(all, limit, offset), nil
}

type payeeRepository struct {
	sc *scope
}

var _ portsrepo.PayeeRepository = (*payeeRepository)(nil)

func (r *payeeRepository) SavePayee(ctx context.Context, payee domain.Payee) error {
	if _, exists := r.sc.payees.get(payee.PayeeID); exists {
		return fmt.Errorf("%w: payee %s", apperrors.ErrDuplicate, payee.PayeeID)
	}
	r.sc.payees.put(payee.PayeeID, payee)
	return nil
}

func (r *payeeRepository) FindPayeeByID(ctx context.Context, payeeID string) (*domain.Payee, error) {
	p, ok := r.sc.payees.get(payeeID)
	if !ok {
		return nil, notFound("payee", payeeID)
	}
	return &p, nil
}

func (r *payeeRepository) ListPayeesByUser(ctx context.Context, userID string) ([]domain.Payee, error) {
	var out []domain.Payee
	for _, p := range r.sc.payees.all() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *payeeRepository) ListPayees(ctx context.Context, limit int, offset int) ([]domain.Payee, error) {
	all := r.sc.payees.all()
	sort.Slice(all, func(i, j int) bool { return all[i].PayeeID < all[j].PayeeID })
	return page(all, limit, offset), nil
}

func (r *payeeRepository) DeletePayee(ctx context.Context, payeeID string) error {
	if _, ok := r.sc.payees.get(payeeID); !ok {
		return notFound("payee", payeeID)
	}
	r.sc.payees.del(payeeID)
	return nil
}
