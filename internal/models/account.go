package models

// Account is a row of the accounts table.
type Account struct {
	AccountID    string `db:"account_id"`
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Kind         string `db:"kind"`
	CurrencyCode string `db:"currency_code"`
	Balance      int64  `db:"balance"` // minor units
	Status       string `db:"status"`
	AuditFields
}
