package domain

// AccountKind classifies what an account is used for.
type AccountKind string

const (
	KindCurrent    AccountKind = "CURRENT"
	KindSavings    AccountKind = "SAVINGS"
	KindInvestment AccountKind = "INVESTMENT"
)

// Valid reports whether k is one of the known kinds.
func (k AccountKind) Valid() bool {
	switch k {
	case KindCurrent, KindSavings, KindInvestment:
		return true
	}
	return false
}

// AccountStatus is the lifecycle state of an account. Closure is a status, never a deletion.
type AccountStatus string

const (
	AccountPending AccountStatus = "PENDING"
	AccountOpen    AccountStatus = "OPEN"
	AccountFrozen  AccountStatus = "FROZEN"
	AccountClosed  AccountStatus = "CLOSED"
)

// Valid reports whether s is one of the known statuses.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountPending, AccountOpen, AccountFrozen, AccountClosed:
		return true
	}
	return false
}

// Account is a user-owned balance holder.
// Balance is in minor currency units and only ever changes through the ledger service.
type Account struct {
	AccountID    string        `json:"accountID"`
	UserID       string        `json:"userID"` // owning user
	Name         string        `json:"name"`
	Kind         AccountKind   `json:"kind"`
	CurrencyCode string        `json:"currencyCode"`
	Balance      int64         `json:"balance"`
	Status       AccountStatus `json:"status"`
	AuditFields
}

// IsOpen reports whether user-initiated money movement is allowed on the account.
func (a Account) IsOpen() bool { return a.Status == AccountOpen }

// OwnedBy reports whether userID owns the account.
func (a Account) OwnedBy(userID string) bool { return a.UserID == userID }
