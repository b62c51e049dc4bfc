package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// It satisfies Repositories so store adapters can hand it out for either scope.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	PaymentRepo     PaymentRepository
	PayeeRepo       PayeeRepository
	HoldingRepo     HoldingRepository
	SecurityRepo    SecurityRepository
	OrderRepo       InvestOrderRepository
}

var _ Repositories = RepositoryProvider{}

func (p RepositoryProvider) Accounts() AccountRepositoryFacade         { return p.AccountRepo }
func (p RepositoryProvider) Transactions() TransactionRepositoryFacade { return p.TransactionRepo }
func (p RepositoryProvider) Payments() PaymentRepository               { return p.PaymentRepo }
func (p RepositoryProvider) Payees() PayeeRepository                   { return p.PayeeRepo }
func (p RepositoryProvider) Holdings() HoldingRepository               { return p.HoldingRepo }
func (p RepositoryProvider) Securities() SecurityRepository            { return p.SecurityRepo }
func (p RepositoryProvider) Orders() InvestOrderRepository             { return p.OrderRepo }
