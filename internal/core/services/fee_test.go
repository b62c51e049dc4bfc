package services_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/services"
)

func TestFeePolicy_Fee(t *testing.T) {
	p := services.DefaultFeePolicy
	tests := []struct {
		notional int64
		want     int64
	}{
		{notional: 500000, want: 500}, // 0.1%
		{notional: 1000, want: 100},   // minimum applies
		{notional: 100000, want: 100}, // exactly the minimum
		{notional: 100500, want: 101}, // 100.5 rounds half up
		{notional: 100499, want: 100},
	}
	for _, tt := range tests {
		fee, err := p.Fee(tt.notional)
		require.NoError(t, err)
		assert.Equal(t, tt.want, fee, "notional %d", tt.notional)
	}

	flat := services.FeePolicy{MinMinor: 250}
	fee, err := flat.Fee(10_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(250), fee)
}

func TestFeePolicy_FeeOutOfRange(t *testing.T) {
	steep := services.FeePolicy{MinMinor: 100, RateBps: 20000}

	_, err := steep.Fee(math.MaxInt64)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	fee, err := services.DefaultFeePolicy.Fee(math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854776), fee)
}

func TestNotional(t *testing.T) {
	tests := []struct {
		price int64
		qty   string
		want  int64
	}{
		{price: 5000, qty: "100", want: 500000},
		{price: 5000, qty: "0.5", want: 2500},
		{price: 333, qty: "0.0015", want: 0}, // 0.4995 rounds down
		{price: 1001, qty: "0.5", want: 501},  // 500.5 rounds half up
		{price: 1, qty: "9223372036854775807", want: math.MaxInt64},
	}
	for _, tt := range tests {
		got, err := services.Notional(tt.price, decimal.RequireFromString(tt.qty))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d x %s", tt.price, tt.qty)
	}
}

func TestNotionalOutOfRange(t *testing.T) {
	// 5000 x q = 2^64 + 500000; truncating to int64 would leave 500000
	_, err := services.Notional(5000, decimal.RequireFromString("3689348814742010.3232"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = services.Notional(1, decimal.RequireFromString("9223372036854775807.5"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}
