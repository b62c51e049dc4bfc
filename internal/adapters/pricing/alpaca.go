package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
)

// latestTrader is the slice of the Alpaca market-data client the oracle needs.
type latestTrader interface {
	GetLatestTrade(symbol string, req marketdata.GetLatestTradeRequest) (*marketdata.Trade, error)
}

// AlpacaOracle quotes the last trade price reported by Alpaca market data.
// Prices are USD and converted to cents.
type AlpacaOracle struct {
	client latestTrader
	logger *slog.Logger
}

var _ portssvc.PriceOracle = (*AlpacaOracle)(nil)

var centsPerDollar = decimal.NewFromInt(100)

// NewAlpacaOracle creates an oracle backed by the Alpaca market-data API.
func NewAlpacaOracle(apiKey, apiSecret, dataURL string, logger *slog.Logger) *AlpacaOracle {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaOracle{client: marketdata.NewClient(opts), logger: logger.With("oracle", "alpaca")}
}

func newAlpacaOracleWithClient(client latestTrader, logger *slog.Logger) *AlpacaOracle {
	return &AlpacaOracle{client: client, logger: logger}
}

func (o *AlpacaOracle) Quote(ctx context.Context, symbol string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	symbol = normalize(symbol)

	trade, err := o.client.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{})
	if err != nil {
		o.logger.Error("Latest trade lookup failed", slog.String("symbol", symbol), slog.String("error", err.Error()))
		return 0, apperrors.NewAppError(http.StatusBadGateway, "price oracle unavailable", err)
	}
	if trade == nil {
		return 0, fmt.Errorf("%w: no trades for %s", apperrors.ErrNotFound, symbol)
	}

	cents := decimal.NewFromFloat(trade.Price).Mul(centsPerDollar).Round(0).IntPart()
	if cents <= 0 {
		return 0, fmt.Errorf("%w: non-positive last trade for %s", apperrors.ErrNotFound, symbol)
	}
	return cents, nil
}
