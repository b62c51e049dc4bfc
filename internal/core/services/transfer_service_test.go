package services_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

type TransferServiceTestSuite struct {
	ledgerSuite
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}

func (s *TransferServiceTestSuite) TestTransfer_Success() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)
	s.seedAccount("b", "u1", domain.KindSavings, 0)

	res, err := s.svc.Transfer.Transfer(s.ctx, dto.TransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: 400, Description: "rainy day"}, "u1")
	s.Require().NoError(err)
	s.Equal(int64(600), res.FromBalance)
	s.Equal(int64(400), res.ToBalance)
	s.Equal(int64(600), s.balance("a"))
	s.Equal(int64(400), s.balance("b"))

	payment, err := s.store.Payments().FindPaymentByID(s.ctx, res.PaymentID)
	s.Require().NoError(err)
	s.Equal(domain.PaymentCompleted, payment.Status)
	s.Equal(domain.MethodInternal, payment.Method)
	s.False(payment.IsExternal)
	s.Equal(res.DebitTransactionID, payment.DebitTransactionID)
	s.Equal(res.CreditTransactionID, payment.CreditTransactionID)

	debit, err := s.store.Transactions().FindTransactionByID(s.ctx, res.DebitTransactionID)
	s.Require().NoError(err)
	s.Equal("Transfer to b: rainy day", debit.Description)
	s.assertReconciles("a", "b")
}

func (s *TransferServiceTestSuite) TestTransfer_InsufficientFundsIsAtomic() {
	s.seedAccount("a", "u1", domain.KindCurrent, 100)
	s.seedAccount("b", "u1", domain.KindCurrent, 50)

	_, err := s.svc.Transfer.Transfer(s.ctx, dto.TransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: 500}, "u1")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	s.Equal(int64(100), s.balance("a"))
	s.Equal(int64(50), s.balance("b"))
	s.Len(s.ledger("a"), 1)
	s.Len(s.ledger("b"), 1)
	payments, err := s.store.Payments().ListPayments(s.ctx, 10, 0)
	s.Require().NoError(err)
	s.Empty(payments)
}

func (s *TransferServiceTestSuite) TestTransfer_Preconditions() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)
	s.seedAccount("b", "u1", domain.KindCurrent, 0)
	s.seedAccount("other", "u2", domain.KindCurrent, 0)

	tests := []struct {
		name string
		req  dto.TransferRequest
		want error
	}{
		{"zero amount", dto.TransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: 0}, apperrors.ErrInvalidAmount},
		{"negative amount", dto.TransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: -5}, apperrors.ErrInvalidAmount},
		{"same account", dto.TransferRequest{FromAccountID: "a", ToAccountID: "a", Amount: 5}, apperrors.ErrValidation},
		{"missing source", dto.TransferRequest{FromAccountID: "nope", ToAccountID: "b", Amount: 5}, apperrors.ErrNotFound},
		{"missing destination", dto.TransferRequest{FromAccountID: "a", ToAccountID: "nope", Amount: 5}, apperrors.ErrNotFound},
		{"foreign destination", dto.TransferRequest{FromAccountID: "a", ToAccountID: "other", Amount: 5}, apperrors.ErrForbidden},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Transfer.Transfer(s.ctx, tt.req, "u1")
			s.ErrorIs(err, tt.want)
		})
	}
	s.Equal(int64(1000), s.balance("a"))
}

func (s *TransferServiceTestSuite) TestTransfer_CurrencyMismatch() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)
	usd := domain.Account{AccountID: "usd", UserID: "u1", Kind: domain.KindCurrent, CurrencyCode: "USD", Status: domain.AccountOpen}
	s.Require().NoError(s.store.Accounts().SaveAccount(s.ctx, usd))

	_, err := s.svc.Transfer.Transfer(s.ctx, dto.TransferRequest{FromAccountID: "a", ToAccountID: "usd", Amount: 5}, "u1")
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.Equal(int64(1000), s.balance("a"))
}

func (s *TransferServiceTestSuite) TestTransfer_FrozenAccount() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)
	s.seedAccount("b", "u1", domain.KindCurrent, 0)
	s.Require().NoError(s.store.Accounts().UpdateAccountStatus(s.ctx, "b", domain.AccountFrozen, "admin", s.clock.Now()))

	_, err := s.svc.Transfer.Transfer(s.ctx, dto.TransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: 5}, "u1")
	s.ErrorIs(err, apperrors.ErrAccountNotActive)
}
