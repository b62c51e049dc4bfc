package dto

// TransferRequest moves funds between two accounts of the same user.
type TransferRequest struct {
	FromAccountID string `json:"fromAccountID" binding:"required"`
	ToAccountID   string `json:"toAccountID" binding:"required,nefield=FromAccountID"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Description   string `json:"description" binding:"max=255"`
}

// TransferResult identifies both legs of a completed transfer.
type TransferResult struct {
	PaymentID           string `json:"paymentID"`
	DebitTransactionID  string `json:"debitTransactionID"`
	CreditTransactionID string `json:"creditTransactionID"`
	FromBalance         int64  `json:"fromBalance"`
	ToBalance           int64  `json:"toBalance"`
}
