package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
)

func (s *HandlerTestSuite) TestAdminRoutes_RequireAdminRole() {
	w := s.do(http.MethodPost, "/api/v1/admin/adjustments", dto.AdjustBalanceRequest{AccountID: "a1", Delta: 100, Description: "bonus"}, "")
	s.Equal(http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/v1/admin/studio/account", nil, "user")
	s.Equal(http.StatusForbidden, w.Code)
	s.admin.AssertNotCalled(s.T(), "AdminAdjust")
	s.admin.AssertNotCalled(s.T(), "Studio")
}

func (s *HandlerTestSuite) TestAdminAdjust() {
	req := dto.AdjustBalanceRequest{AccountID: "a1", Delta: -250, Description: "chargeback"}
	s.admin.On("AdminAdjust", mock.Anything, req, s.userID).Return(&portssvc.Posting{
		Transaction: domain.Transaction{TransactionID: "t1", AccountID: "a1", Amount: -250},
		NewBalance:  750,
	}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/adjustments", req, middleware.RoleAdmin)
	s.Equal(http.StatusCreated, w.Code)
	var resp dto.PostingResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(dto.PostingResponse{TransactionID: "t1", NewBalance: 750}, resp)

	zero := `{"accountID":"a1","delta":0,"description":"noop"}`
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/admin/adjustments", zero, middleware.RoleAdmin).Code)
}

func (s *HandlerTestSuite) TestAdminAccountLifecycle() {
	open := dto.OpenAccountRequest{UserID: "u9", Name: "Main", Kind: domain.KindCurrent, CurrencyCode: "GBP"}
	s.accounts.On("OpenAccount", mock.Anything, open, s.userID).
		Return(&domain.Account{AccountID: "new", UserID: "u9", Name: "Main", Kind: domain.KindCurrent, CurrencyCode: "GBP", Status: domain.AccountOpen}, nil).Once()
	s.accounts.On("SetAccountStatus", mock.Anything, "new", domain.AccountClosed, s.userID).
		Return(nil, fmt.Errorf("%w: account new still holds 100", apperrors.ErrValidation)).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/accounts", open, middleware.RoleAdmin)
	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"accountID":"new"`)

	w = s.do(http.MethodPut, "/api/v1/admin/accounts/new/status", dto.SetAccountStatusRequest{Status: domain.AccountClosed}, middleware.RoleAdmin)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w), "still holds")

	bad := `{"userID":"u9","name":"Main","kind":"CURRENT","currencyCode":"XXQ"}`
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/admin/accounts", bad, middleware.RoleAdmin).Code)
}

func (s *HandlerTestSuite) TestAdminSetTransactionStatus() {
	req := dto.SetTransactionStatusRequest{Status: domain.TxnReversed, AdminMessage: "duplicate"}
	s.admin.On("SetTransactionStatus", mock.Anything, "t1", req, s.userID).
		Return(&domain.Transaction{TransactionID: "t1", Status: domain.TxnReversed, AdminMessage: "duplicate", Amount: 100}, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/admin/transactions/t1/status", req, middleware.RoleAdmin)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.TxnReversed, resp.Status)
	s.Equal(int64(100), resp.Amount)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/v1/admin/transactions/t1/status", `{"status":"VOID"}`, middleware.RoleAdmin).Code)
}

func (s *HandlerTestSuite) TestAdminPaymentOperations() {
	res := s.pendingPayment()
	res.OTP = "654321"
	s.payments.On("RegenerateOTP", mock.Anything, "p1", s.userID).Return(res, nil).Once()
	cancelled := res.Payment
	cancelled.Status = domain.PaymentCancelled
	s.payments.On("ForceCancelPayment", mock.Anything, "p1", s.userID).Return(&cancelled, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/payments/p1/otp", nil, middleware.RoleAdmin)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "654321")

	w = s.do(http.MethodPost, "/api/v1/admin/payments/p1/cancel", nil, middleware.RoleAdmin)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"CANCELLED"`)
}

func (s *HandlerTestSuite) TestAdminReconcile() {
	s.ledger.On("Reconcile", mock.Anything, "a1").Return(&dto.ReconciliationReport{
		AccountID: "a1", Balance: 900, ReconstructedTotal: 900, PostedEntries: 3, TotalEntries: 4,
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/admin/accounts/a1/reconcile", nil, middleware.RoleAdmin)
	s.Equal(http.StatusOK, w.Code)
	var report dto.ReconciliationReport
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))
	s.True(report.Consistent())
	s.Equal(3, report.PostedEntries)
}

func (s *HandlerTestSuite) TestAdminStudio() {
	payees := &MockStudio{kind: domain.EntityPayee}
	txns := &MockStudio{kind: domain.EntityTransaction}
	s.admin.On("Studio", domain.EntityPayee).Return(payees, nil)
	s.admin.On("Studio", domain.EntityTransaction).Return(txns, nil)

	payees.On("List", mock.Anything, 50, 0).Return([]any{domain.Payee{PayeeID: "py1"}}, nil).Once()
	payees.On("Find", mock.Anything, "py1").Return(&domain.Payee{PayeeID: "py1", Name: "Bob"}, nil).Once()
	payees.On("Delete", mock.Anything, "py1").Return(nil).Once()
	txns.On("Delete", mock.Anything, "t1").
		Return(fmt.Errorf("%w: TRANSACTION records carry money semantics", apperrors.ErrForbidden)).Once()

	w := s.do(http.MethodGet, "/api/v1/admin/studio/payee", nil, middleware.RoleAdmin)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"kind":"PAYEE"`)

	w = s.do(http.MethodGet, "/api/v1/admin/studio/PAYEE/py1", nil, middleware.RoleAdmin)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Bob")

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/admin/studio/payee/py1", nil, middleware.RoleAdmin).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/api/v1/admin/studio/transaction/t1", nil, middleware.RoleAdmin).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/admin/studio/widget", nil, middleware.RoleAdmin).Code)

	payees.AssertExpectations(s.T())
	txns.AssertExpectations(s.T())
}
