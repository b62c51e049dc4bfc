package mapping

import (
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/models"
)

// ToModelSecurity converts a domain Security to a model Security
func ToModelSecurity(d domain.Security) models.Security {
	return models.Security{
		SecurityID:   d.SecurityID,
		Symbol:       d.Symbol,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		Kind:         string(d.Kind),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSecurity converts a model Security to a domain Security
func ToDomainSecurity(m models.Security) domain.Security {
	return domain.Security{
		SecurityID:   m.SecurityID,
		Symbol:       m.Symbol,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		Kind:         domain.SecurityKind(m.Kind),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainSecuritySlice(ms []models.Security) []domain.Security {
	ds := make([]domain.Security, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSecurity(m)
	}
	return ds
}

// ToModelHolding converts a domain Holding to a model Holding
func ToModelHolding(d domain.Holding) models.Holding {
	return models.Holding{
		HoldingID:   d.HoldingID,
		AccountID:   d.AccountID,
		SecurityID:  d.SecurityID,
		Symbol:      d.Symbol,
		Quantity:    d.Quantity,
		AvgCostP:    d.AvgCostP,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHolding converts a model Holding to a domain Holding
func ToDomainHolding(m models.Holding) domain.Holding {
	return domain.Holding{
		HoldingID:   m.HoldingID,
		AccountID:   m.AccountID,
		SecurityID:  m.SecurityID,
		Symbol:      m.Symbol,
		Quantity:    m.Quantity,
		AvgCostP:    m.AvgCostP,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainHoldingSlice(ms []models.Holding) []domain.Holding {
	ds := make([]domain.Holding, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHolding(m)
	}
	return ds
}

// ToModelInvestOrder converts a domain InvestOrder to a model InvestOrder
func ToModelInvestOrder(d domain.InvestOrder) models.InvestOrder {
	return models.InvestOrder{
		OrderID:       d.OrderID,
		AccountID:     d.AccountID,
		SecurityID:    d.SecurityID,
		Symbol:        d.Symbol,
		Side:          string(d.Side),
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		Notional:      d.Notional,
		Fee:           d.Fee,
		Total:         d.Total,
		Status:        string(d.Status),
		TransactionID: d.TransactionID,
		PlacedAt:      d.PlacedAt,
		FilledAt:      d.FilledAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainInvestOrder converts a model InvestOrder to a domain InvestOrder
func ToDomainInvestOrder(m models.InvestOrder) domain.InvestOrder {
	return domain.InvestOrder{
		OrderID:       m.OrderID,
		AccountID:     m.AccountID,
		SecurityID:    m.SecurityID,
		Symbol:        m.Symbol,
		Side:          domain.OrderSide(m.Side),
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Notional:      m.Notional,
		Fee:           m.Fee,
		Total:         m.Total,
		Status:        domain.OrderStatus(m.Status),
		TransactionID: m.TransactionID,
		PlacedAt:      m.PlacedAt,
		FilledAt:      m.FilledAt,
		CreatedBy:     m.CreatedBy,
	}
}

func ToDomainInvestOrderSlice(ms []models.InvestOrder) []domain.InvestOrder {
	ds := make([]domain.InvestOrder, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvestOrder(m)
	}
	return ds
}
