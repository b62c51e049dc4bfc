package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
)

func TestPaymentMapping_NullableReferences(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	vendor := domain.Payment{
		PaymentID:       "p1",
		SourceAccountID: "a",
		VendorHandle:    "@acme",
		Method:          domain.MethodVendor,
		Status:          domain.PaymentPendingOTP,
		AuditFields:     domain.NewAuditFields("u1", now),
	}

	m := ToModelPayment(vendor)
	assert.Nil(t, m.PayeeID)
	assert.Nil(t, m.DestinationAccountID)
	assert.Nil(t, m.DebitTransactionID)
	assert.Equal(t, "VENDOR", m.Method)
	assert.Equal(t, vendor, ToDomainPayment(m))

	vendor.DebitTransactionID = "t1"
	m = ToModelPayment(vendor)
	if assert.NotNil(t, m.DebitTransactionID) {
		assert.Equal(t, "t1", *m.DebitTransactionID)
	}
}
