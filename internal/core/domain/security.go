package domain

// SecurityKind classifies a tradable instrument.
type SecurityKind string

const (
	SecurityEquity SecurityKind = "EQUITY"
	SecurityETF    SecurityKind = "ETF"
	SecurityFund   SecurityKind = "FUND"
)

// Security is instrument reference data, created on first reference.
type Security struct {
	SecurityID   string       `json:"securityID"`
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	CurrencyCode string       `json:"currencyCode"`
	Kind         SecurityKind `json:"kind"`
	AuditFields
}
