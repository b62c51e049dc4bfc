package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMinor renders an amount in minor units with its currency symbol and precision,
// e.g. 150075 GBP -> "£1,500.75". Unknown currency codes fall back to "<amount> <code>".
func FormatMinor(amount int64, currencyCode string) string {
	code := strings.ToUpper(currencyCode)
	if money.GetCurrency(code) == nil {
		return decimal.New(amount, -2).StringFixed(2) + " " + code
	}
	return money.New(amount, code).Display()
}

// KnownCurrency reports whether code is an ISO 4217 currency known to the formatter.
func KnownCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}
