package services_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

type AdminServiceTestSuite struct {
	ledgerSuite
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}

func (s *AdminServiceTestSuite) TestAdminAdjust() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)

	posting, err := s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: 250, Description: "goodwill"}, "ops")
	s.Require().NoError(err)
	s.Equal(int64(1250), posting.NewBalance)
	s.Equal("admin adjustment", posting.Transaction.AdminMessage)
	s.Equal("ops", posting.Transaction.CreatedBy)

	_, err = s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: -1251, Description: "clawback"}, "ops")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Equal(int64(1250), s.balance("a"))

	_, err = s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: 0, Description: "noop"}, "ops")
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	_, err = s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: 1, Description: "  "}, "ops")
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "missing", Delta: 1, Description: "x"}, "ops")
	s.ErrorIs(err, apperrors.ErrNotFound)

	// opening balance and the one applied adjustment
	s.Len(s.sink.Records(), 2)
	s.assertReconciles("a")
}

func (s *AdminServiceTestSuite) TestAdminAdjust_FrozenAllowedClosedRejected() {
	s.seedAccount("a", "u1", domain.KindCurrent, 0)
	_, err := s.svc.Account.SetAccountStatus(s.ctx, "a", domain.AccountFrozen, "ops")
	s.Require().NoError(err)

	_, err = s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: 10, Description: "correction"}, "ops")
	s.Require().NoError(err)

	_, err = s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: -10, Description: "undo"}, "ops")
	s.Require().NoError(err)
	_, err = s.svc.Account.SetAccountStatus(s.ctx, "a", domain.AccountClosed, "ops")
	s.Require().NoError(err)

	_, err = s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: 10, Description: "late"}, "ops")
	s.ErrorIs(err, apperrors.ErrAccountNotActive)
}

func (s *AdminServiceTestSuite) TestSetTransactionStatus_ReconcilesAcrossPostedBoundary() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)
	posting, err := s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: 300, Description: "bonus"}, "ops")
	s.Require().NoError(err)
	id := posting.Transaction.TransactionID

	txn, err := s.svc.Admin.SetTransactionStatus(s.ctx, id, dto.SetTransactionStatusRequest{Status: domain.TxnReversed, AdminMessage: "sent in error"}, "ops")
	s.Require().NoError(err)
	s.Equal(domain.TxnReversed, txn.Status)
	s.Equal("sent in error", txn.AdminMessage)
	s.Equal(int64(300), txn.Amount)
	s.Equal(int64(1300), txn.BalanceAfter)
	s.Equal(int64(1000), s.balance("a"))
	s.assertReconciles("a")

	records := s.sink.Records()
	last := records[len(records)-1]
	s.Equal(id, last.TransactionID)
	s.Equal(int64(-300), last.Delta)
	s.Equal(int64(1000), last.BalanceAfter)

	// moving between non-applied statuses leaves the balance alone
	_, err = s.svc.Admin.SetTransactionStatus(s.ctx, id, dto.SetTransactionStatusRequest{Status: domain.TxnError, AdminMessage: "investigating"}, "ops")
	s.Require().NoError(err)
	s.Equal(int64(1000), s.balance("a"))

	_, err = s.svc.Admin.SetTransactionStatus(s.ctx, id, dto.SetTransactionStatusRequest{Status: domain.TxnPosted, AdminMessage: "confirmed"}, "ops")
	s.Require().NoError(err)
	s.Equal(int64(1300), s.balance("a"))
	s.assertReconciles("a")
}

func (s *AdminServiceTestSuite) TestSetTransactionStatus_RepeatedEditIsNoop() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)
	entries := s.ledger("a")
	s.Require().Len(entries, 1)
	id := entries[0].TransactionID
	req := dto.SetTransactionStatusRequest{Status: domain.TxnPending, AdminMessage: "hold"}

	_, err := s.svc.Admin.SetTransactionStatus(s.ctx, id, req, "ops")
	s.Require().NoError(err)
	emitted := len(s.sink.Records())

	txn, err := s.svc.Admin.SetTransactionStatus(s.ctx, id, req, "ops")
	s.Require().NoError(err)
	s.Equal(domain.TxnPending, txn.Status)
	s.Zero(s.balance("a"))
	s.Len(s.sink.Records(), emitted)
}

func (s *AdminServiceTestSuite) TestSetTransactionStatus_FloorOnReclassify() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)
	_, err := s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "a", Delta: -900, Description: "fee"}, "ops")
	s.Require().NoError(err)
	opening := s.ledger("a")[0].TransactionID

	_, err = s.svc.Admin.SetTransactionStatus(s.ctx, opening, dto.SetTransactionStatusRequest{Status: domain.TxnReversed}, "ops")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	txn, err := s.store.Transactions().FindTransactionByID(s.ctx, opening)
	s.Require().NoError(err)
	s.Equal(domain.TxnPosted, txn.Status)
	s.Equal(int64(100), s.balance("a"))
}

func (s *AdminServiceTestSuite) TestSetTransactionStatus_Rejections() {
	_, err := s.svc.Admin.SetTransactionStatus(s.ctx, "nope", dto.SetTransactionStatusRequest{Status: domain.TxnReversed}, "ops")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Admin.SetTransactionStatus(s.ctx, "nope", dto.SetTransactionStatusRequest{Status: "VOID"}, "ops")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AdminServiceTestSuite) TestStudio() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)

	studio, err := s.svc.Admin.Studio(domain.EntityAccount)
	s.Require().NoError(err)
	rows, err := studio.List(s.ctx, 10, 0)
	s.Require().NoError(err)
	s.Len(rows, 1)
	row, err := studio.Find(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal("a", row.(*domain.Account).AccountID)
	s.ErrorIs(studio.Delete(s.ctx, "a"), apperrors.ErrForbidden)

	for _, kind := range []domain.EntityKind{domain.EntityTransaction, domain.EntityPayment, domain.EntityHolding, domain.EntityInvestOrder} {
		studio, err := s.svc.Admin.Studio(kind)
		s.Require().NoError(err)
		s.ErrorIs(studio.Delete(s.ctx, "any"), apperrors.ErrForbidden, kind)
	}

	_, err = s.svc.Admin.Studio("WIDGET")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AdminServiceTestSuite) TestStudio_DeletePayee() {
	s.seedAccount("a", "u1", domain.KindCurrent, 1000)
	res, err := s.svc.Payment.InitiatePayment(s.ctx, dto.InitiatePaymentRequest{
		SourceAccountID: "a",
		Amount:          10,
		Description:     "rent",
		NewPayee:        &dto.NewPayeeRequest{Name: "Landlord", RoutingCode: "123456", AccountNumber: "12345678"},
	}, "u1")
	s.Require().NoError(err)

	studio, err := s.svc.Admin.Studio(domain.EntityPayee)
	s.Require().NoError(err)
	s.Require().NoError(studio.Delete(s.ctx, res.Payment.PayeeID))

	_, err = studio.Find(s.ctx, res.Payment.PayeeID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
