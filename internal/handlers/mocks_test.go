package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListTransactions(ctx context.Context, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockAccountService) ListHoldings(ctx context.Context, accountID string, userID string) ([]domain.Holding, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}
func (m *MockAccountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, adminID string) (*domain.Account, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, adminID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, status, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Apply(ctx context.Context, req portssvc.PostingRequest) (*portssvc.Posting, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.Posting), args.Error(1)
}
func (m *MockLedgerService) ApplyInTx(ctx context.Context, tx portsrepo.Repositories, req portssvc.PostingRequest) (*portssvc.Posting, error) {
	args := m.Called(ctx, tx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.Posting), args.Error(1)
}
func (m *MockLedgerService) Publish(ctx context.Context, postings ...portssvc.Posting) {
	m.Called(ctx, postings)
}
func (m *MockLedgerService) ReclassifyInTx(ctx context.Context, tx portsrepo.Repositories, req portssvc.ReclassifyRequest) (*portssvc.Reclassification, error) {
	args := m.Called(ctx, tx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.Reclassification), args.Error(1)
}
func (m *MockLedgerService) PublishReclassification(ctx context.Context, r portssvc.Reclassification) {
	m.Called(ctx, r)
}
func (m *MockLedgerService) Reconcile(ctx context.Context, accountID string) (*dto.ReconciliationReport, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReconciliationReport), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*dto.TransferResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransferResult), args.Error(1)
}

var _ portssvc.TransferSvc = (*MockTransferService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest, userID string) (*dto.InitiatePaymentResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InitiatePaymentResult), args.Error(1)
}
func (m *MockPaymentService) ConfirmPayment(ctx context.Context, paymentID string, otp string, userID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, otp, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) CancelPayment(ctx context.Context, paymentID string, userID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) GetPayment(ctx context.Context, paymentID string, userID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, userID string, limit int, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListPayees(ctx context.Context, userID string) ([]domain.Payee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payee), args.Error(1)
}
func (m *MockPaymentService) RegenerateOTP(ctx context.Context, paymentID string, adminID string) (*dto.InitiatePaymentResult, error) {
	args := m.Called(ctx, paymentID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InitiatePaymentResult), args.Error(1)
}
func (m *MockPaymentService) ForceCancelPayment(ctx context.Context, paymentID string, adminID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock TradeService ---
type MockTradeService struct {
	mock.Mock
}

func (m *MockTradeService) ExecuteOrder(ctx context.Context, req dto.ExecuteOrderRequest, userID string) (*dto.OrderResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OrderResult), args.Error(1)
}
func (m *MockTradeService) ListOrders(ctx context.Context, accountID string, userID string, limit int, offset int) ([]domain.InvestOrder, error) {
	args := m.Called(ctx, accountID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvestOrder), args.Error(1)
}

var _ portssvc.TradeSvc = (*MockTradeService)(nil)

// --- Mock AdminService ---
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) AdminAdjust(ctx context.Context, req dto.AdjustBalanceRequest, adminID string) (*portssvc.Posting, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.Posting), args.Error(1)
}
func (m *MockAdminService) SetTransactionStatus(ctx context.Context, transactionID string, req dto.SetTransactionStatusRequest, adminID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockAdminService) Studio(kind domain.EntityKind) (portssvc.StudioRepository, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portssvc.StudioRepository), args.Error(1)
}

var _ portssvc.AdminSvcFacade = (*MockAdminService)(nil)

// --- Mock StudioRepository ---
type MockStudio struct {
	mock.Mock
	kind domain.EntityKind
}

func (m *MockStudio) Kind() domain.EntityKind { return m.kind }
func (m *MockStudio) Find(ctx context.Context, id string) (any, error) {
	args := m.Called(ctx, id)
	return args.Get(0), args.Error(1)
}
func (m *MockStudio) List(ctx context.Context, limit int, offset int) ([]any, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}
func (m *MockStudio) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ portssvc.StudioRepository = (*MockStudio)(nil)
