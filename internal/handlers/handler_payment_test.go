package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

func (s *HandlerTestSuite) pendingPayment() *dto.InitiatePaymentResult {
	return &dto.InitiatePaymentResult{
		Payment: domain.Payment{
			PaymentID: "p1", SourceAccountID: "a1", VendorHandle: "@acme", Amount: 2500,
			CurrencyCode: "GBP", IsExternal: true, Method: domain.MethodVendor, Status: domain.PaymentPendingOTP,
			OTPHash: "$2a$10$secret",
		},
		OTP: "123456",
	}
}

func (s *HandlerTestSuite) TestInitiatePayment_ExposesOTPOutsideProduction() {
	s.payments.On("InitiatePayment", mock.Anything,
		mock.MatchedBy(func(r dto.InitiatePaymentRequest) bool { return r.VendorHandle == "@acme" && r.Amount == 2500 }),
		s.userID,
	).Return(s.pendingPayment(), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/payments", `{"sourceAccountID":"a1","amount":2500,"vendorHandle":"@acme"}`, "")

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.InitiatePaymentResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("123456", resp.OTP)
	s.Equal(domain.PaymentPendingOTP, resp.Payment.Status)
	s.NotContains(w.Body.String(), "secret", "the passcode hash never leaves the service")
}

func (s *HandlerTestSuite) TestInitiatePayment_HidesOTPInProduction() {
	s.production = true
	s.buildRouter()
	s.payments.On("InitiatePayment", mock.Anything, mock.Anything, s.userID).Return(s.pendingPayment(), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/payments", `{"sourceAccountID":"a1","amount":2500,"vendorHandle":"@acme"}`, "")

	s.Equal(http.StatusCreated, w.Code)
	s.NotContains(w.Body.String(), "123456")
}

func (s *HandlerTestSuite) TestInitiatePayment_BindingRejections() {
	for name, body := range map[string]string{
		"bad vendor handle": `{"sourceAccountID":"a1","amount":100,"vendorHandle":"acme"}`,
		"bad routing code":  `{"sourceAccountID":"a1","amount":100,"newPayee":{"name":"Bob","routingCode":"12-34","accountNumber":"12345678"}}`,
		"zero amount":       `{"sourceAccountID":"a1","amount":0,"payeeID":"x"}`,
	} {
		s.Run(name, func() {
			s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/payments", body, "").Code)
		})
	}
	s.payments.AssertNotCalled(s.T(), "InitiatePayment")
}

func (s *HandlerTestSuite) TestConfirmPayment() {
	done := s.pendingPayment().Payment
	done.Status = domain.PaymentCompleted
	done.DebitTransactionID = "t9"
	s.payments.On("ConfirmPayment", mock.Anything, "p1", "123456", s.userID).Return(&done, nil).Once()
	s.payments.On("ConfirmPayment", mock.Anything, "p1", "000000", s.userID).
		Return(nil, fmt.Errorf("%w: 4 attempts left", apperrors.ErrInvalidOTP)).Once()
	s.payments.On("ConfirmPayment", mock.Anything, "p2", "123456", s.userID).
		Return(nil, fmt.Errorf("%w: payment p2 is COMPLETED", apperrors.ErrAlreadyProcessed)).Once()

	w := s.do(http.MethodPost, "/api/v1/payments/p1/confirm", dto.ConfirmPaymentRequest{OTP: "123456"}, "")
	s.Equal(http.StatusOK, w.Code)
	var resp dto.PaymentResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.PaymentCompleted, resp.Status)
	s.Equal("t9", resp.DebitTransactionID)

	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/payments/p1/confirm", dto.ConfirmPaymentRequest{OTP: "000000"}, "").Code)
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/v1/payments/p2/confirm", dto.ConfirmPaymentRequest{OTP: "123456"}, "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/payments/p1/confirm", `{}`, "").Code)
}

func (s *HandlerTestSuite) TestPaymentReads() {
	cancelled := s.pendingPayment().Payment
	cancelled.Status = domain.PaymentCancelled
	s.payments.On("CancelPayment", mock.Anything, "p1", s.userID).Return(&cancelled, nil).Once()
	s.payments.On("GetPayment", mock.Anything, "p1", s.userID).Return(&cancelled, nil).Once()
	s.payments.On("ListPayments", mock.Anything, s.userID, 20, 0).Return([]domain.Payment{cancelled}, nil).Once()
	s.payments.On("ListPayees", mock.Anything, s.userID).Return([]domain.Payee{{PayeeID: "py1", UserID: s.userID, Name: "Bob"}}, nil).Once()

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/payments/p1/cancel", nil, "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/payments/p1", nil, "").Code)

	w := s.do(http.MethodGet, "/api/v1/payments", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"CANCELLED"`)

	w = s.do(http.MethodGet, "/api/v1/payees", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "py1")
}
