package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
)

type holdingRepository struct {
	sc *scope
}

var _ portsrepo.HoldingRepository = (*holdingRepository)(nil)

func (r *holdingRepository) FindHolding(ctx context.Context, accountID, securityID string) (*domain.Holding, error) {
	for _, h := range r.sc.holdings.all() {
		if h.AccountID == accountID && h.SecurityID == securityID {
			return &h, nil
		}
	}
	return nil, notFound("holding", accountID+"/"+securityID)
}

func (r *holdingRepository) FindHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error) {
	h, ok := r.sc.holdings.get(holdingID)
	if !ok {
		return nil, notFound("holding", holdingID)
	}
	return &h, nil
}

func (r *holdingRepository) SaveHolding(ctx context.Context, holding domain.Holding) error {
	return r.sc.holdings.putIf(holding.HoldingID, holding, func(rows []domain.Holding) error {
		for _, h := range rows {
			if h.HoldingID != holding.HoldingID && h.AccountID == holding.AccountID && h.SecurityID == holding.SecurityID {
				return fmt.Errorf("%w: holding for %s/%s", apperrors.ErrDuplicate, holding.AccountID, holding.SecurityID)
			}
		}
		return nil
	})
}

func (r *holdingRepository) DeleteHolding(ctx context.Context, holdingID string) error {
	if _, ok := r.sc.holdings.get(holdingID); !ok {
		return notFound("holding", holdingID)
	}
	r.sc.holdings.del(holdingID)
	return nil
}

func (r *holdingRepository) ListHoldingsByAccount(ctx context.Context, accountID string) ([]domain.Holding, error) {
	var out []domain.Holding
	for _, h := range r.sc.holdings.all() {
		if h.AccountID == accountID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (r *holdingRepository) ListHoldings(ctx context.Context, limit int, offset int) ([]domain.Holding, error) {
	all := r.sc.holdings.all()
	sort.Slice(all, func(i, j int) bool { return all[i].HoldingID < all[j].HoldingID })
	return page(all, limit, offset), nil
}

type securityRepository struct {
	sc *scope
}

var _ portsrepo.SecurityRepository = (*securityRepository)(nil)

func (r *securityRepository) FindSecurityBySymbol(ctx context.Context, symbol string) (*domain.Security, error) {
	for _, s := range r.sc.securities.all() {
		if s.Symbol == symbol {
			return &s, nil
		}
	}
	return nil, notFound("security", symbol)
}

func (r *securityRepository) FindSecurityByID(ctx context.Context, securityID string) (*domain.Security, error) {
	s, ok := r.sc.securities.get(securityID)
	if !ok {
		return nil, notFound("security", securityID)
	}
	return &s, nil
}

func (r *securityRepository) SaveSecurity(ctx context.Context, security domain.Security) error {
	return r.sc.securities.putIf(security.SecurityID, security, func(rows []domain.Security) error {
		for _, s := range rows {
			if s.SecurityID == security.SecurityID || s.Symbol == security.Symbol {
				return fmt.Errorf("%w: security %s", apperrors.ErrDuplicate, security.Symbol)
			}
		}
		return nil
	})
}

func (r *securityRepository) EnsureSecurity(ctx context.Context, security domain.Security) (*domain.Security, error) {
	var existing *domain.Security
	err := r.sc.securities.putIf(security.SecurityID, security, func(rows []domain.Security) error {
		for _, s := range rows {
			if s.Symbol == security.Symbol {
				found := s
				existing = &found
				return apperrors.ErrDuplicate
			}
		}
		return nil
	})
	if existing != nil {
		return existing, nil
	}
	if err != nil {
		return nil, err
	}
	return &security, nil
}

func (r *securityRepository) ListSecurities(ctx context.Context, limit int, offset int) ([]domain.Security, error) {
	all := r.sc.securities.all()
	sort.Slice(all, func(i, j int) bool { return all[i].Symbol < all[j].Symbol })
	return page(all, limit, offset), nil
}

func (r *securityRepository) DeleteSecurity(ctx context.Context, securityID string) error {
	if !r.sc.tx {
		return r.sc.s.deleteSecurity(securityID)
	}
	if _, ok := r.sc.securities.get(securityID); !ok {
		return notFound("security", securityID)
	}
	for _, h := range r.sc.holdings.all() {
		if h.SecurityID == securityID {
			return fmt.Errorf("%w: security %s is still held", apperrors.ErrValidation, securityID)
		}
	}
	r.sc.securities.del(securityID)
	return nil
}

type orderRepository struct {
	sc *scope
}

var _ portsrepo.InvestOrderRepository = (*orderRepository)(nil)

func (r *orderRepository) SaveOrder(ctx context.Context, order domain.InvestOrder) error {
	if _, exists := r.sc.orders.get(order.OrderID); exists {
		return fmt.Errorf("%w: order %s", apperrors.ErrDuplicate, order.OrderID)
	}
	r.sc.orders.put(order.OrderID, order)
	return nil
}

func (r *orderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.InvestOrder, error) {
	o, ok := r.sc.orders.get(orderID)
	if !ok {
		return nil, notFound("order", orderID)
	}
	return &o, nil
}

func sortOrdersNewestFirst(orders []domain.InvestOrder) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].PlacedAt.Equal(orders[j].PlacedAt) {
			return orders[i].PlacedAt.After(orders[j].PlacedAt)
		}
		return orders[i].OrderID > orders[j].OrderID
	})
}

func (r *orderRepository) ListOrdersByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.InvestOrder, error) {
	var out []domain.InvestOrder
	for _, o := range r.sc.orders.all() {
		if o.AccountID == accountID {
			out = append(out, o)
		}
	}
	sortOrdersNewestFirst(out)
	return page(out, limit, offset), nil
}

func (r *orderRepository) ListOrders(ctx context.Context, limit int, offset int) ([]domain.InvestOrder, error) {
	all := r.sc.orders.all()
	sortOrdersNewestFirst(all)
	return page(all, limit, offset), nil
}
