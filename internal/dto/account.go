package dto

import (
	"time"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
)

// OpenAccountRequest defines the data needed to open a new account.
type OpenAccountRequest struct {
	UserID       string             `json:"userID" binding:"required"`
	Name         string             `json:"name" binding:"required"`
	Kind         domain.AccountKind `json:"kind" binding:"required,oneof=CURRENT SAVINGS INVESTMENT"`
	CurrencyCode string             `json:"currencyCode" binding:"required,iso4217"`
}

// SetAccountStatusRequest changes an account's lifecycle status.
type SetAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=PENDING OPEN FROZEN CLOSED"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	UserID        string               `json:"userID"`
	Name          string               `json:"name"`
	Kind          domain.AccountKind   `json:"kind"`
	CurrencyCode  string               `json:"currencyCode"`
	Balance       int64                `json:"balance"`
	Status        domain.AccountStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		UserID:        acc.UserID,
		Name:          acc.Name,
		Kind:          acc.Kind,
		CurrencyCode:  acc.CurrencyCode,
		Balance:       acc.Balance,
		Status:        acc.Status,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
