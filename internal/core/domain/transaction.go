package domain

import "time"

// TransactionStatus tags a ledger entry.
type TransactionStatus string

const (
	TxnPosted   TransactionStatus = "POSTED"
	TxnPending  TransactionStatus = "PENDING"
	TxnError    TransactionStatus = "ERROR"
	TxnReversed TransactionStatus = "REVERSED"
)

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TxnPosted, TxnPending, TxnError, TxnReversed:
		return true
	}
	return false
}

// Applied reports whether entries with this status count towards the account balance.
func (s TransactionStatus) Applied() bool { return s == TxnPosted }

// Transaction is an immutable ledger entry belonging to one account.
// Amount is signed minor units: positive credits, negative debits.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	AccountID     string            `json:"accountID"`
	PostedAt      time.Time         `json:"postedAt"`
	Sequence      int64             `json:"sequence"` // per-store posting order, breaks PostedAt ties
	Description   string            `json:"description"`
	Amount        int64             `json:"amount"`
	BalanceAfter  int64             `json:"balanceAfter"`
	Status        TransactionStatus `json:"status"`
	AdminMessage  string            `json:"adminMessage,omitempty"`
	AuditFields
}

// SumApplied returns the total of the applied amounts in txns.
func SumApplied(txns []Transaction) int64 {
	var total int64
	for _, t := range txns {
		if t.Status.Applied() {
			total += t.Amount
		}
	}
	return total
}
