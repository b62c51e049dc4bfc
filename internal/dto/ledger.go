package dto

import (
	"time"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
)

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	AccountID     string                   `json:"accountID"`
	PostedAt      time.Time                `json:"postedAt"`
	Description   string                   `json:"description"`
	Amount        int64                    `json:"amount"`
	BalanceAfter  int64                    `json:"balanceAfter"`
	Status        domain.TransactionStatus `json:"status"`
	AdminMessage  string                   `json:"adminMessage,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		PostedAt:      txn.PostedAt,
		Description:   txn.Description,
		Amount:        txn.Amount,
		BalanceAfter:  txn.BalanceAfter,
		Status:        txn.Status,
		AdminMessage:  txn.AdminMessage,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing an account's ledger.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// AdjustBalanceRequest is an operator credit (positive) or debit (negative).
type AdjustBalanceRequest struct {
	AccountID   string `json:"accountID" binding:"required"`
	Delta       int64  `json:"delta" binding:"required,ne=0"`
	Description string `json:"description" binding:"required,max=255"`
}

// SetTransactionStatusRequest re-tags a ledger entry.
type SetTransactionStatusRequest struct {
	Status       domain.TransactionStatus `json:"status" binding:"required,oneof=POSTED PENDING ERROR REVERSED"`
	AdminMessage string                   `json:"adminMessage" binding:"max=500"`
}

// PostingResponse reports the outcome of a balance mutation.
type PostingResponse struct {
	TransactionID string `json:"transactionID"`
	NewBalance    int64  `json:"newBalance"`
}

// ReconciliationReport compares an account's stored balance with its ledger.
type ReconciliationReport struct {
	AccountID          string `json:"accountID"`
	Balance            int64  `json:"balance"`
	ReconstructedTotal int64  `json:"reconstructedTotal"`
	PostedEntries      int    `json:"postedEntries"`
	TotalEntries       int    `json:"totalEntries"`
	Drift              int64  `json:"drift"` // Balance - ReconstructedTotal
}

// Consistent reports whether the balance matches the ledger.
func (r ReconciliationReport) Consistent() bool { return r.Drift == 0 }
