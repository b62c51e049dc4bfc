package dto

import (
	"time"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
)

// NewPayeeRequest describes a payee to save while initiating a payment.
type NewPayeeRequest struct {
	Name          string `json:"name" binding:"required,max=120"`
	RoutingCode   string `json:"routingCode" binding:"required,numeric,len=6"`
	AccountNumber string `json:"accountNumber" binding:"required,numeric,min=6,max=12"`
	Reference     string `json:"reference" binding:"max=18"`
}

// InitiatePaymentRequest starts an external payment. Exactly one destination must be given.
type InitiatePaymentRequest struct {
	SourceAccountID string           `json:"sourceAccountID" binding:"required"`
	Amount          int64            `json:"amount" binding:"required,gt=0"`
	Description     string           `json:"description" binding:"max=255"`
	PayeeID         string           `json:"payeeID"`
	NewPayee        *NewPayeeRequest `json:"newPayee"`
	VendorHandle    string           `json:"vendorHandle" binding:"omitempty,vendorhandle"`
}

// ConfirmPaymentRequest carries the submitted one-time passcode.
type ConfirmPaymentRequest struct {
	OTP string `json:"otp" binding:"required"`
}

// PaymentResponse defines the data returned for a payment. The passcode is never included.
type PaymentResponse struct {
	PaymentID            string               `json:"paymentID"`
	SourceAccountID      string               `json:"sourceAccountID"`
	DestinationAccountID string               `json:"destinationAccountID,omitempty"`
	PayeeID              string               `json:"payeeID,omitempty"`
	VendorHandle         string               `json:"vendorHandle,omitempty"`
	Amount               int64                `json:"amount"`
	CurrencyCode         string               `json:"currencyCode"`
	Description          string               `json:"description"`
	IsExternal           bool                 `json:"isExternal"`
	Method               domain.PaymentMethod `json:"method"`
	Status               domain.PaymentStatus `json:"status"`
	OTPExpiresAt         *time.Time           `json:"otpExpiresAt,omitempty"`
	DebitTransactionID   string               `json:"debitTransactionID,omitempty"`
	FailureReason        string               `json:"failureReason,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	ResolvedAt           *time.Time           `json:"resolvedAt,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:            p.PaymentID,
		SourceAccountID:      p.SourceAccountID,
		DestinationAccountID: p.DestinationAccountID,
		PayeeID:              p.PayeeID,
		VendorHandle:         p.VendorHandle,
		Amount:               p.Amount,
		CurrencyCode:         p.CurrencyCode,
		Description:          p.Description,
		IsExternal:           p.IsExternal,
		Method:               p.Method,
		Status:               p.Status,
		OTPExpiresAt:         p.OTPExpiresAt,
		DebitTransactionID:   p.DebitTransactionID,
		FailureReason:        p.FailureReason,
		CreatedAt:            p.CreatedAt,
		ResolvedAt:           p.ResolvedAt,
	}
}

// InitiatePaymentResult carries the pending payment and the plaintext passcode, shown once.
type InitiatePaymentResult struct {
	Payment domain.Payment
	OTP     string
}

// InitiatePaymentResponse is returned when a payment enters PENDING_OTP.
// OTP is only populated outside production, where it stands in for SMS delivery.
type InitiatePaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	OTP     string          `json:"otp,omitempty"`
}
