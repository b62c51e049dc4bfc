package models

import "time"

// Payment is a row of the payments table. Nullable references use pointers.
type Payment struct {
	PaymentID            string     `db:"payment_id"`
	UserID               string     `db:"user_id"`
	SourceAccountID      string     `db:"source_account_id"`
	DestinationAccountID *string    `db:"destination_account_id"`
	PayeeID              *string    `db:"payee_id"`
	VendorHandle         string     `db:"vendor_handle"`
	Amount               int64      `db:"amount"`
	CurrencyCode         string     `db:"currency_code"`
	Description          string     `db:"description"`
	IsExternal           bool       `db:"is_external"`
	Method               string     `db:"method"`
	Status               string     `db:"status"`
	OTPHash              string     `db:"otp_hash"`
	OTPExpiresAt         *time.Time `db:"otp_expires_at"`
	OTPAttempts          int        `db:"otp_attempts"`
	DebitTransactionID   *string    `db:"debit_transaction_id"`
	CreditTransactionID  *string    `db:"credit_transaction_id"`
	FailureReason        string     `db:"failure_reason"`
	ResolvedAt           *time.Time `db:"resolved_at"`
	AuditFields
}

// Payee is a row of the payees table.
type Payee struct {
	PayeeID       string `db:"payee_id"`
	UserID        string `db:"user_id"`
	Name          string `db:"name"`
	RoutingCode   string `db:"routing_code"`
	AccountNumber string `db:"account_number"`
	Reference     string `db:"reference"`
	AuditFields
}
