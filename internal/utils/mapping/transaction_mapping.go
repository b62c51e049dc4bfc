package mapping

import (
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Sequence:      d.Sequence,
		AccountID:     d.AccountID,
		PostedAt:      d.PostedAt,
		Description:   d.Description,
		Amount:        d.Amount,
		BalanceAfter:  d.BalanceAfter,
		Status:        string(d.Status),
		AdminMessage:  d.AdminMessage,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Sequence:      m.Sequence,
		AccountID:     m.AccountID,
		PostedAt:      m.PostedAt,
		Description:   m.Description,
		Amount:        m.Amount,
		BalanceAfter:  m.BalanceAfter,
		Status:        domain.TransactionStatus(m.Status),
		AdminMessage:  m.AdminMessage,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
