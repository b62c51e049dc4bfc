package mapping

import (
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:            d.PaymentID,
		UserID:               d.UserID,
		SourceAccountID:      d.SourceAccountID,
		DestinationAccountID: nullable(d.DestinationAccountID),
		PayeeID:              nullable(d.PayeeID),
		VendorHandle:         d.VendorHandle,
		Amount:               d.Amount,
		CurrencyCode:         d.CurrencyCode,
		Description:          d.Description,
		IsExternal:           d.IsExternal,
		Method:               string(d.Method),
		Status:               string(d.Status),
		OTPHash:              d.OTPHash,
		OTPExpiresAt:         d.OTPExpiresAt,
		OTPAttempts:          d.OTPAttempts,
		DebitTransactionID:   nullable(d.DebitTransactionID),
		CreditTransactionID:  nullable(d.CreditTransactionID),
		FailureReason:        d.FailureReason,
		ResolvedAt:           d.ResolvedAt,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:            m.PaymentID,
		UserID:               m.UserID,
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: deref(m.DestinationAccountID),
		PayeeID:              deref(m.PayeeID),
		VendorHandle:         m.VendorHandle,
		Amount:               m.Amount,
		CurrencyCode:         m.CurrencyCode,
		Description:          m.Description,
		IsExternal:           m.IsExternal,
		Method:               domain.PaymentMethod(m.Method),
		Status:               domain.PaymentStatus(m.Status),
		OTPHash:              m.OTPHash,
		OTPExpiresAt:         m.OTPExpiresAt,
		OTPAttempts:          m.OTPAttempts,
		DebitTransactionID:   deref(m.DebitTransactionID),
		CreditTransactionID:  deref(m.CreditTransactionID),
		FailureReason:        m.FailureReason,
		ResolvedAt:           m.ResolvedAt,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToModelPayee converts a domain Payee to a model Payee
func ToModelPayee(d domain.Payee) models.Payee {
	return models.Payee{
		PayeeID:       d.PayeeID,
		UserID:        d.UserID,
		Name:          d.Name,
		RoutingCode:   d.RoutingCode,
		AccountNumber: d.AccountNumber,
		Reference:     d.Reference,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayee converts a model Payee to a domain Payee
func ToDomainPayee(m models.Payee) domain.Payee {
	return domain.Payee{
		PayeeID:       m.PayeeID,
		UserID:        m.UserID,
		Name:          m.Name,
		RoutingCode:   m.RoutingCode,
		AccountNumber: m.AccountNumber,
		Reference:     m.Reference,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPayeeSlice(ms []models.Payee) []domain.Payee {
	ds := make([]domain.Payee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayee(m)
	}
	return ds
}
