package pricing

import (
	"context"
	"hash/fnv"
	"log/slog"
	"math/rand/v2"
	"sync"

	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
)

const (
	minSimulatedPrice = 100
	maxSimulatedPrice = 100000
)

// SimulatedOracle walks every price randomly by at most JitterBps per quote.
// Symbols missing from the catalogue get a stable opening price derived from their name.
type SimulatedOracle struct {
	mu        sync.Mutex
	prices    map[string]int64
	jitterBps int64
	rng       *rand.Rand
	logger    *slog.Logger
}

var _ portssvc.PriceOracle = (*SimulatedOracle)(nil)

// NewSimulatedOracle seeds the oracle from cat. seed makes the walk reproducible.
func NewSimulatedOracle(cat Catalogue, jitterBps int64, seed uint64, logger *slog.Logger) *SimulatedOracle {
	if jitterBps < 0 {
		jitterBps = 0
	}
	return &SimulatedOracle{
		prices:    cat.Prices(),
		jitterBps: jitterBps,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger:    logger,
	}
}

func (o *SimulatedOracle) Quote(ctx context.Context, symbol string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	symbol = normalize(symbol)

	o.mu.Lock()
	defer o.mu.Unlock()
	price, ok := o.prices[symbol]
	if !ok {
		price = openingPrice(symbol)
		o.logger.Debug("Simulated price listed on first quote", slog.String("symbol", symbol), slog.Int64("price", price))
	}
	price = o.step(price)
	o.prices[symbol] = price
	return price, nil
}

// step moves price by a uniform amount in [-jitterBps, +jitterBps] basis points, never below 1.
func (o *SimulatedOracle) step(price int64) int64 {
	if o.jitterBps == 0 {
		return price
	}
	bps := o.rng.Int64N(2*o.jitterBps+1) - o.jitterBps
	next := price + price*bps/10000
	if next < 1 {
		return 1
	}
	return next
}

func openingPrice(symbol string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return minSimulatedPrice + int64(h.Sum64()%uint64(maxSimulatedPrice-minSimulatedPrice))
}
