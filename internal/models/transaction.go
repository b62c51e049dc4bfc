package models

import "time"

// Transaction is a row of the transactions table. Sequence is assigned by the database.
type Transaction struct {
	TransactionID string    `db:"transaction_id"`
	Sequence      int64     `db:"sequence"`
	AccountID     string    `db:"account_id"`
	PostedAt      time.Time `db:"posted_at"`
	Description   string    `db:"description"`
	Amount        int64     `db:"amount"`
	BalanceAfter  int64     `db:"balance_after"`
	Status        string    `db:"status"`
	AdminMessage  string    `db:"admin_message"`
	AuditFields
}
