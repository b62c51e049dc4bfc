package domain

import "time"

// AuditRecord describes one completed money movement for the notification/audit sink.
type AuditRecord struct {
	AccountID     string    `json:"accountID"`
	TransactionID string    `json:"transactionID"`
	Delta         int64     `json:"delta"`
	BalanceAfter  int64     `json:"balanceAfter"`
	Description   string    `json:"description"`
	Actor         string    `json:"actor"`
	OccurredAt    time.Time `json:"occurredAt"`
}
