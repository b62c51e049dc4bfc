package services

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
)

// FeePolicy prices a trade: the larger of a flat minimum and a basis-point share of the notional.
type FeePolicy struct {
	MinMinor int64
	RateBps  int64
}

// DefaultFeePolicy charges 0.1% with a floor of 100 minor units.
var DefaultFeePolicy = FeePolicy{MinMinor: 100, RateBps: 10}

var (
	bpsDivisor = decimal.NewFromInt(10000)
	maxMinor   = decimal.NewFromInt(math.MaxInt64)
)

// toMinor converts an already rounded amount to int64 minor units.
func toMinor(d decimal.Decimal) (int64, error) {
	if d.GreaterThan(maxMinor) {
		return 0, fmt.Errorf("%w: amount %s exceeds the supported range", apperrors.ErrInvalidAmount, d.String())
	}
	return d.IntPart(), nil
}

// Fee returns the fee owed on a trade of the given notional.
func (p FeePolicy) Fee(notional int64) (int64, error) {
	proportional, err := toMinor(decimal.NewFromInt(notional).Mul(decimal.NewFromInt(p.RateBps)).Div(bpsDivisor).Round(0))
	if err != nil {
		return 0, err
	}
	if proportional < p.MinMinor {
		return p.MinMinor, nil
	}
	return proportional, nil
}

// Notional prices quantity at unitPrice and rounds half-up to whole minor units.
func Notional(unitPrice int64, quantity decimal.Decimal) (int64, error) {
	return toMinor(decimal.NewFromInt(unitPrice).Mul(quantity).Round(0))
}

// addMinor sums two non-negative minor amounts, rejecting a result past int64.
func addMinor(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("%w: amount %d + %d exceeds the supported range", apperrors.ErrInvalidAmount, a, b)
	}
	return a + b, nil
}
