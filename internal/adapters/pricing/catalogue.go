package pricing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalogue is the seed price list of the simulated and static oracles.
type Catalogue struct {
	Securities []SeedPrice `yaml:"securities"`
}

// SeedPrice is one listed symbol and its opening unit price in minor units.
type SeedPrice struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
	Price  int64  `yaml:"price"`
}

// DefaultCatalogue is used when no seed file is configured.
var DefaultCatalogue = Catalogue{Securities: []SeedPrice{
	{Symbol: "ABC", Name: "ABC Holdings", Price: 5000},
	{Symbol: "SIMB", Name: "Simbank Group", Price: 1250},
	{Symbol: "WIDG", Name: "Widget Works", Price: 18320},
	{Symbol: "GLDX", Name: "Gold Tracker ETF", Price: 7415},
	{Symbol: "WRLD", Name: "World Index Fund", Price: 30010},
}}

// LoadCatalogue reads a YAML catalogue from path.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading price catalogue %q: %w", path, err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue decodes and validates a YAML catalogue.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var cat Catalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing price catalogue: %w", err)
	}
	seen := make(map[string]bool, len(cat.Securities))
	for i, s := range cat.Securities {
		symbol := normalize(s.Symbol)
		if symbol == "" {
			return nil, fmt.Errorf("price catalogue entry %d has no symbol", i)
		}
		if s.Price <= 0 {
			return nil, fmt.Errorf("price catalogue entry %s has non-positive price %d", symbol, s.Price)
		}
		if seen[symbol] {
			return nil, fmt.Errorf("price catalogue lists %s twice", symbol)
		}
		seen[symbol] = true
		cat.Securities[i].Symbol = symbol
	}
	return &cat, nil
}

// Prices returns the catalogue as a symbol to price map.
func (c Catalogue) Prices() map[string]int64 {
	out := make(map[string]int64, len(c.Securities))
	for _, s := range c.Securities {
		out[normalize(s.Symbol)] = s.Price
	}
	return out
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
