package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

type PaymentServiceTestSuite struct {
	ledgerSuite
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) initiateVendor(amount int64) *dto.InitiatePaymentResult {
	res, err := s.svc.Payment.InitiatePayment(s.ctx, dto.InitiatePaymentRequest{
		SourceAccountID: "src",
		Amount:          amount,
		Description:     "invoice 42",
		VendorHandle:    "@acme",
	}, "u1")
	s.Require().NoError(err)
	return res
}

func (s *PaymentServiceTestSuite) wrongCode(code string) string {
	if code == "000000" {
		return "000001"
	}
	return "000000"
}

func (s *PaymentServiceTestSuite) stored(paymentID string) *domain.Payment {
	p, err := s.store.Payments().FindPaymentByID(s.ctx, paymentID)
	s.Require().NoError(err)
	return p
}

func (s *PaymentServiceTestSuite) TestInitiate_NeverMovesMoney() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)

	res := s.initiateVendor(9000)
	s.Len(res.OTP, 6)
	s.Equal(domain.PaymentPendingOTP, res.Payment.Status)
	s.Equal(domain.MethodVendor, res.Payment.Method)
	s.True(res.Payment.IsExternal)

	s.Equal(int64(10000), s.balance("src"))
	s.Len(s.ledger("src"), 1)

	p := s.stored(res.Payment.PaymentID)
	s.NotEmpty(p.OTPHash)
	s.NotEqual(res.OTP, p.OTPHash)
	s.Require().NotNil(p.OTPExpiresAt)
	s.Equal(s.clock.Now().Add(10*time.Minute), *p.OTPExpiresAt)
}

func (s *PaymentServiceTestSuite) TestInitiate_NewPayeeIsSaved() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)

	res, err := s.svc.Payment.InitiatePayment(s.ctx, dto.InitiatePaymentRequest{
		SourceAccountID: "src",
		Amount:          100,
		NewPayee:        &dto.NewPayeeRequest{Name: "Landlord", RoutingCode: "123456", AccountNumber: "12345678"},
	}, "u1")
	s.Require().NoError(err)
	s.Equal(domain.MethodBank, res.Payment.Method)

	payee, err := s.store.Payees().FindPayeeByID(s.ctx, res.Payment.PayeeID)
	s.Require().NoError(err)
	s.Equal("Landlord", payee.Name)
	s.Equal("u1", payee.UserID)
}

func (s *PaymentServiceTestSuite) TestInitiate_Rejections() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	s.seedAccount("theirs", "u2", domain.KindCurrent, 10000)
	s.Require().NoError(s.store.Payees().SavePayee(s.ctx, domain.Payee{PayeeID: "p2", UserID: "u2", Name: "x"}))

	tests := []struct {
		name string
		req  dto.InitiatePaymentRequest
		want error
	}{
		{"zero amount", dto.InitiatePaymentRequest{SourceAccountID: "src", VendorHandle: "@a"}, apperrors.ErrInvalidAmount},
		{"no destination", dto.InitiatePaymentRequest{SourceAccountID: "src", Amount: 1}, apperrors.ErrValidation},
		{"two destinations", dto.InitiatePaymentRequest{SourceAccountID: "src", Amount: 1, VendorHandle: "@a", PayeeID: "p2"}, apperrors.ErrValidation},
		{"foreign account", dto.InitiatePaymentRequest{SourceAccountID: "theirs", Amount: 1, VendorHandle: "@a"}, apperrors.ErrForbidden},
		{"missing account", dto.InitiatePaymentRequest{SourceAccountID: "nope", Amount: 1, VendorHandle: "@a"}, apperrors.ErrNotFound},
		{"foreign payee", dto.InitiatePaymentRequest{SourceAccountID: "src", Amount: 1, PayeeID: "p2"}, apperrors.ErrForbidden},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Payment.InitiatePayment(s.ctx, tt.req, "u1")
			s.ErrorIs(err, tt.want)
		})
	}
	payments, err := s.store.Payments().ListPayments(s.ctx, 10, 0)
	s.Require().NoError(err)
	s.Empty(payments)
}

func (s *PaymentServiceTestSuite) TestConfirm_DebitsOnceAndClearsCode() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(2500)

	p, err := s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
	s.Require().NoError(err)
	s.Equal(domain.PaymentCompleted, p.Status)
	s.NotEmpty(p.DebitTransactionID)
	s.Equal(int64(7500), s.balance("src"))

	stored := s.stored(p.PaymentID)
	s.Empty(stored.OTPHash)
	s.Nil(stored.OTPExpiresAt)
	s.NotNil(stored.ResolvedAt)

	debit, err := s.store.Transactions().FindTransactionByID(s.ctx, p.DebitTransactionID)
	s.Require().NoError(err)
	s.Equal(int64(-2500), debit.Amount)
	s.Equal("Payment to @acme: invoice 42", debit.Description)

	// replaying the same code is rejected
	_, err = s.svc.Payment.ConfirmPayment(s.ctx, p.PaymentID, res.OTP, "u1")
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	s.Equal(int64(7500), s.balance("src"))
	s.assertReconciles("src")
}

func (s *PaymentServiceTestSuite) TestConfirm_ConcurrentConfirmsDebitExactlyOnce() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(1000)

	var g errgroup.Group
	errs := make([]error, 8)
	for i := range errs {
		g.Go(func() error {
			_, errs[i] = s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	ok, already := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperrors.ErrAlreadyProcessed):
			already++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, ok)
	s.Equal(7, already)
	s.Equal(int64(9000), s.balance("src"))
	s.Len(s.ledger("src"), 2)
}

func (s *PaymentServiceTestSuite) TestConfirm_WrongCodeThenRight() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(1000)

	_, err := s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, s.wrongCode(res.OTP), "u1")
	s.ErrorIs(err, apperrors.ErrInvalidOTP)
	p := s.stored(res.Payment.PaymentID)
	s.Equal(domain.PaymentPendingOTP, p.Status)
	s.Equal(1, p.OTPAttempts)
	s.Equal(int64(10000), s.balance("src"))

	// no normalization of the submitted code
	_, err = s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, " "+res.OTP, "u1")
	s.ErrorIs(err, apperrors.ErrInvalidOTP)

	_, err = s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
	s.NoError(err)
}

func (s *PaymentServiceTestSuite) TestConfirm_AttemptLimitFailsPayment() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(1000)
	bad := s.wrongCode(res.OTP)

	for i := 0; i < 5; i++ {
		_, err := s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, bad, "u1")
		s.ErrorIs(err, apperrors.ErrInvalidOTP)
	}
	p := s.stored(res.Payment.PaymentID)
	s.Equal(domain.PaymentFailed, p.Status)
	s.Empty(p.OTPHash)

	_, err := s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	s.Equal(int64(10000), s.balance("src"))
}

func (s *PaymentServiceTestSuite) TestConfirm_ExpiredCodeFailsPayment() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(1000)

	s.clock.Advance(11 * time.Minute)
	_, err := s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
	s.ErrorIs(err, apperrors.ErrInvalidOTP)

	p := s.stored(res.Payment.PaymentID)
	s.Equal(domain.PaymentFailed, p.Status)
	s.Empty(p.OTPHash)
	s.Equal(int64(10000), s.balance("src"))
}

func (s *PaymentServiceTestSuite) TestInitiate_AboveBalanceIsAcceptedAndFailsAtConfirmation() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)

	res := s.initiateVendor(10001)
	s.Equal(domain.PaymentPendingOTP, res.Payment.Status)
	s.Equal(int64(10000), s.balance("src"))

	_, err := s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Equal(domain.PaymentFailed, s.stored(res.Payment.PaymentID).Status)
	s.Equal(int64(10000), s.balance("src"))
	s.assertReconciles("src")
}

func (s *PaymentServiceTestSuite) TestConfirm_InsufficientFundsAtConfirmationFails() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(8000)

	// balance drops between initiation and confirmation
	_, err := s.svc.Admin.AdminAdjust(s.ctx, dto.AdjustBalanceRequest{AccountID: "src", Delta: -5000, Description: "chargeback"}, "admin")
	s.Require().NoError(err)

	_, err = s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	p := s.stored(res.Payment.PaymentID)
	s.Equal(domain.PaymentFailed, p.Status)
	s.Empty(p.OTPHash)
	s.NotEmpty(p.FailureReason)
	s.Equal(int64(5000), s.balance("src"))
	s.assertReconciles("src")
}

func (s *PaymentServiceTestSuite) TestConfirm_OtherUsersPaymentIsNotFound() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(1000)

	_, err := s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u2")
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.svc.Payment.GetPayment(s.ctx, res.Payment.PaymentID, "u2")
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.svc.Payment.ConfirmPayment(s.ctx, "nope", res.OTP, "u1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PaymentServiceTestSuite) TestCancel() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(1000)

	p, err := s.svc.Payment.CancelPayment(s.ctx, res.Payment.PaymentID, "u1")
	s.Require().NoError(err)
	s.Equal(domain.PaymentCancelled, p.Status)
	s.Empty(s.stored(p.PaymentID).OTPHash)

	_, err = s.svc.Payment.CancelPayment(s.ctx, res.Payment.PaymentID, "u1")
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	_, err = s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	s.Equal(int64(10000), s.balance("src"))
}

func (s *PaymentServiceTestSuite) TestForceCancelIgnoresOwner() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(1000)

	p, err := s.svc.Payment.ForceCancelPayment(s.ctx, res.Payment.PaymentID, "admin")
	s.Require().NoError(err)
	s.Equal(domain.PaymentCancelled, p.Status)
	s.Equal("admin", p.LastUpdatedBy)
}

func (s *PaymentServiceTestSuite) TestRegenerate_InvalidatesOldCode() {
	s.seedAccount("src", "u1", domain.KindCurrent, 10000)
	res := s.initiateVendor(1000)
	_, err := s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, s.wrongCode(res.OTP), "u1")
	s.Require().ErrorIs(err, apperrors.ErrInvalidOTP)

	regen, err := s.svc.Payment.RegenerateOTP(s.ctx, res.Payment.PaymentID, "admin")
	s.Require().NoError(err)
	s.Len(regen.OTP, 6)
	s.Zero(s.stored(res.Payment.PaymentID).OTPAttempts)

	if regen.OTP != res.OTP {
		_, err = s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, res.OTP, "u1")
		s.ErrorIs(err, apperrors.ErrInvalidOTP)
	}
	_, err = s.svc.Payment.ConfirmPayment(s.ctx, res.Payment.PaymentID, regen.OTP, "u1")
	s.NoError(err)

	_, err = s.svc.Payment.RegenerateOTP(s.ctx, res.Payment.PaymentID, "admin")
	s.ErrorIs(err, apperrors.ErrAlreadyProcessed)
}
