package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrIllegalTransition is returned by Payment.Resolve for a move CanTransition forbids.
var ErrIllegalTransition = errors.New("illegal payment status transition")

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPendingOTP PaymentStatus = "PENDING_OTP"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentCancelled  PaymentStatus = "CANCELLED"
)

// Terminal reports whether no further transition is allowed.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed || s == PaymentCancelled
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
// Only PENDING_OTP may move, and only to a terminal state.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	return s == PaymentPendingOTP && next.Terminal()
}

// PaymentMethod tells how the funds leave the source account.
type PaymentMethod string

const (
	MethodBank     PaymentMethod = "BANK"
	MethodVendor   PaymentMethod = "VENDOR"
	MethodInternal PaymentMethod = "INTERNAL"
)

// Payment is a request to move funds. Money only moves when it reaches COMPLETED.
type Payment struct {
	PaymentID            string        `json:"paymentID"`
	UserID               string        `json:"userID"`
	SourceAccountID      string        `json:"sourceAccountID"`
	DestinationAccountID string        `json:"destinationAccountID,omitempty"` // INTERNAL only
	PayeeID              string        `json:"payeeID,omitempty"`              // BANK only
	VendorHandle         string        `json:"vendorHandle,omitempty"`         // VENDOR only
	Amount               int64         `json:"amount"`
	CurrencyCode         string        `json:"currencyCode"`
	Description          string        `json:"description"`
	IsExternal           bool          `json:"isExternal"`
	Method               PaymentMethod `json:"method"`
	Status               PaymentStatus `json:"status"`
	OTPHash              string        `json:"-"`
	OTPExpiresAt         *time.Time    `json:"otpExpiresAt,omitempty"`
	OTPAttempts          int           `json:"otpAttempts"`
	DebitTransactionID   string        `json:"debitTransactionID,omitempty"`
	CreditTransactionID  string        `json:"creditTransactionID,omitempty"`
	FailureReason        string        `json:"failureReason,omitempty"`
	ResolvedAt           *time.Time    `json:"resolvedAt,omitempty"`
	AuditFields
}

// Resolve moves the payment to a terminal status and clears the one-time passcode.
// The payment is left untouched when the move is not a legal lifecycle step.
func (p *Payment) Resolve(status PaymentStatus, reason, actor string, now time.Time) error {
	if !p.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s to %s", ErrIllegalTransition, p.Status, status)
	}
	p.Status = status
	p.FailureReason = reason
	p.ClearOTP()
	p.ResolvedAt = &now
	p.Touch(actor, now)
	return nil
}

// ClearOTP removes the passcode so it can never be replayed. OTPAttempts is kept as history.
func (p *Payment) ClearOTP() {
	p.OTPHash = ""
	p.OTPExpiresAt = nil
}
