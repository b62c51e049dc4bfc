package domain

import "strings"

// EntityKind enumerates the repositories reachable from the admin studio.
type EntityKind string

const (
	EntityAccount     EntityKind = "ACCOUNT"
	EntityTransaction EntityKind = "TRANSACTION"
	EntityPayment     EntityKind = "PAYMENT"
	EntityPayee       EntityKind = "PAYEE"
	EntityHolding     EntityKind = "HOLDING"
	EntityInvestOrder EntityKind = "INVEST_ORDER"
	EntitySecurity    EntityKind = "SECURITY"
)

// EntityKinds lists every studio entity in display order.
var EntityKinds = []EntityKind{
	EntityAccount, EntityTransaction, EntityPayment, EntityPayee,
	EntityHolding, EntityInvestOrder, EntitySecurity,
}

// ParseEntityKind maps a case-insensitive name onto the closed set of kinds.
func ParseEntityKind(s string) (EntityKind, bool) {
	k := EntityKind(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
	for _, known := range EntityKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Ledger reports whether the kind carries money semantics and therefore cannot be deleted.
func (k EntityKind) Ledger() bool {
	switch k {
	case EntityPayee, EntitySecurity:
		return false
	}
	return true
}
