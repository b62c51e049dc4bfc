package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
)

// studioRepository adapts one typed repository to the admin studio view.
type studioRepository[T any] struct {
	kind domain.EntityKind
	find func(ctx context.Context, id string) (*T, error)
	list func(ctx context.Context, limit, offset int) ([]T, error)
	del  func(ctx context.Context, id string) error // nil for ledger entities
}

func (r *studioRepository[T]) Kind() domain.EntityKind { return r.kind }

func (r *studioRepository[T]) Find(ctx context.Context, id string) (any, error) {
	v, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *studioRepository[T]) List(ctx context.Context, limit int, offset int) ([]any, error) {
	rows, err := r.list(ctx, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(rows))
	for i := range rows {
		out[i] = rows[i]
	}
	return out, nil
}

func (r *studioRepository[T]) Delete(ctx context.Context, id string) error {
	if r.kind.Ledger() || r.del == nil {
		return fmt.Errorf("%w: %s records carry money semantics and cannot be deleted", apperrors.ErrForbidden, r.kind)
	}
	return r.del(ctx, id)
}

func newStudios(repos portsrepo.Repositories) map[domain.EntityKind]portssvc.StudioRepository {
	return map[domain.EntityKind]portssvc.StudioRepository{
		domain.EntityAccount: &studioRepository[domain.Account]{
			kind: domain.EntityAccount,
			find: repos.Accounts().FindAccountByID,
			list: repos.Accounts().ListAccounts,
		},
		domain.EntityTransaction: &studioRepository[domain.Transaction]{
			kind: domain.EntityTransaction,
			find: repos.Transactions().FindTransactionByID,
			list: repos.Transactions().ListTransactions,
		},
		domain.EntityPayment: &studioRepository[domain.Payment]{
			kind: domain.EntityPayment,
			find: repos.Payments().FindPaymentByID,
			list: repos.Payments().ListPayments,
		},
		domain.EntityPayee: &studioRepository[domain.Payee]{
			kind: domain.EntityPayee,
			find: repos.Payees().FindPayeeByID,
			list: repos.Payees().ListPayees,
			del:  repos.Payees().DeletePayee,
		},
		domain.EntityHolding: &studioRepository[domain.Holding]{
			kind: domain.EntityHolding,
			find: repos.Holdings().FindHoldingByID,
			list: repos.Holdings().ListHoldings,
		},
		domain.EntityInvestOrder: &studioRepository[domain.InvestOrder]{
			kind: domain.EntityInvestOrder,
			find: repos.Orders().FindOrderByID,
			list: repos.Orders().ListOrders,
		},
		domain.EntitySecurity: &studioRepository[domain.Security]{
			kind: domain.EntitySecurity,
			find: repos.Securities().FindSecurityByID,
			list: repos.Securities().ListSecurities,
			del:  repos.Securities().DeleteSecurity,
		},
	}
}
