package pricing

import (
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/platform/config"
)

// New builds the price oracle selected by cfg.PriceSource.
func New(cfg *config.Config, logger *slog.Logger) (portssvc.PriceOracle, error) {
	cat := DefaultCatalogue
	if cfg.PriceSeedFile != "" {
		loaded, err := LoadCatalogue(cfg.PriceSeedFile)
		if err != nil {
			return nil, err
		}
		cat = *loaded
	}

	switch cfg.PriceSource {
	case config.PriceStatic:
		logger.Info("Using static price oracle", slog.Int("symbols", len(cat.Securities)))
		return NewStaticOracle(cat.Prices()), nil
	case config.PriceSimulated:
		logger.Info("Using simulated price oracle",
			slog.Int("symbols", len(cat.Securities)),
			slog.Int64("jitter_bps", cfg.PriceJitterBps))
		return NewSimulatedOracle(cat, cfg.PriceJitterBps, uint64(time.Now().UnixNano()), logger), nil
	case config.PriceAlpaca:
		logger.Info("Using Alpaca market data price oracle")
		return NewAlpacaOracle(cfg.AlpacaAPIKey, cfg.AlpacaAPISecret, cfg.AlpacaDataURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown price source %q", cfg.PriceSource)
	}
}
