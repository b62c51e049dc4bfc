package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumApplied(t *testing.T) {
	tests := []struct {
		name string
		txns []domain.Transaction
		want int64
	}{
		{
			name: "empty ledger",
			txns: nil,
			want: 0,
		},
		{
			name: "only posted entries count",
			txns: []domain.Transaction{
				{Amount: 100000, Status: domain.TxnPosted},
				{Amount: -150000, Status: domain.TxnError},
				{Amount: -2500, Status: domain.TxnPosted},
				{Amount: 700, Status: domain.TxnPending},
				{Amount: 300, Status: domain.TxnReversed},
			},
			want: 97500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SumApplied(tt.txns))
		})
	}
}

func TestPaymentStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.PaymentStatus
		want     bool
	}{
		{domain.PaymentPendingOTP, domain.PaymentCompleted, true},
		{domain.PaymentPendingOTP, domain.PaymentFailed, true},
		{domain.PaymentPendingOTP, domain.PaymentCancelled, true},
		{domain.PaymentPendingOTP, domain.PaymentPendingOTP, false},
		{domain.PaymentCompleted, domain.PaymentCancelled, false},
		{domain.PaymentFailed, domain.PaymentCompleted, false},
		{domain.PaymentCancelled, domain.PaymentPendingOTP, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestParseEntityKind(t *testing.T) {
	k, ok := domain.ParseEntityKind("invest-order")
	assert.True(t, ok)
	assert.Equal(t, domain.EntityInvestOrder, k)

	_, ok = domain.ParseEntityKind("users")
	assert.False(t, ok)

	assert.True(t, domain.EntityTransaction.Ledger())
	assert.False(t, domain.EntityPayee.Ledger())
}

func TestPayment_ResolveRejectsIllegalMove(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := domain.Payment{PaymentID: "p1", Status: domain.PaymentPendingOTP, OTPHash: "hash"}

	require.NoError(t, p.Resolve(domain.PaymentCompleted, "", "u1", now))
	assert.Equal(t, domain.PaymentCompleted, p.Status)
	assert.Empty(t, p.OTPHash)
	require.NotNil(t, p.ResolvedAt)

	err := p.Resolve(domain.PaymentCancelled, "too late", "u1", now.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Equal(t, domain.PaymentCompleted, p.Status)
	assert.Empty(t, p.FailureReason)
	assert.Equal(t, now, *p.ResolvedAt)

	pending := domain.Payment{Status: domain.PaymentPendingOTP}
	assert.ErrorIs(t, pending.Resolve(domain.PaymentPendingOTP, "", "u1", now), domain.ErrIllegalTransition)
}
