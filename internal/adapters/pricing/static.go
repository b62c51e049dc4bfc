package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
)

// StaticOracle quotes fixed prices.
type StaticOracle struct {
	mu     sync.RWMutex
	prices map[string]int64
}

var _ portssvc.PriceOracle = (*StaticOracle)(nil)

func NewStaticOracle(prices map[string]int64) *StaticOracle {
	o := &StaticOracle{prices: make(map[string]int64, len(prices))}
	for symbol, price := range prices {
		o.prices[normalize(symbol)] = price
	}
	return o
}

func (o *StaticOracle) Quote(ctx context.Context, symbol string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	price, ok := o.prices[normalize(symbol)]
	if !ok {
		return 0, fmt.Errorf("%w: no price for symbol %s", apperrors.ErrNotFound, symbol)
	}
	return price, nil
}

// Set replaces the price of symbol.
func (o *StaticOracle) Set(symbol string, price int64) {
	o.mu.Lock()
	o.prices[normalize(symbol)] = price
	o.mu.Unlock()
}
