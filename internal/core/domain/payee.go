package domain

// Payee is a saved external destination. It carries no balance.
type Payee struct {
	PayeeID       string `json:"payeeID"`
	UserID        string `json:"userID"`
	Name          string `json:"name"`
	RoutingCode   string `json:"routingCode"` // sort code or equivalent
	AccountNumber string `json:"accountNumber"`
	Reference     string `json:"reference,omitempty"`
	AuditFields
}
