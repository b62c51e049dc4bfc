package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
)

// AdminServices bundles the operator-only capabilities the admin console reaches.
type AdminServices struct {
	Accounts   portssvc.AccountLifecycleSvc
	Admin      portssvc.AdminSvcFacade
	Payments   portssvc.PaymentOperatorSvc
	Reconciler portssvc.LedgerReconcilerSvc
}

type adminHandler struct {
	svc       AdminServices
	exposeOTP bool
}

// RegisterAdminRoutes registers the admin console. The group must already enforce the admin role.
func RegisterAdminRoutes(rg *gin.RouterGroup, svc AdminServices, exposeOTP bool) {
	h := &adminHandler{svc: svc, exposeOTP: exposeOTP}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.PUT("/:accountID/status", h.setAccountStatus)
		accounts.GET("/:accountID/reconcile", h.reconcile)
	}
	rg.POST("/adjustments", h.adjust)
	rg.PUT("/transactions/:transactionID/status", h.setTransactionStatus)

	payments := rg.Group("/payments")
	{
		payments.POST("/:paymentID/otp", h.regenerateOTP)
		payments.POST("/:paymentID/cancel", h.forceCancel)
	}

	studio := rg.Group("/studio/:kind")
	{
		studio.GET("", h.studioList)
		studio.GET("/:id", h.studioFind)
		studio.DELETE("/:id", h.studioDelete)
	}
}

func (h *adminHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	adminID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	account, err := h.svc.Accounts.OpenAccount(c.Request.Context(), req, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to open account")
		return
	}

	logger.Info("Account opened", slog.String("account_id", account.AccountID), slog.String("owner_id", account.UserID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *adminHandler) setAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetAccountStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	adminID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("target_account_id", accountID))

	account, err := h.svc.Accounts.SetAccountStatus(c.Request.Context(), accountID, req.Status, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to change account status")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// reconcile compares the stored balance with the sum of POSTED entries.
func (h *adminHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	report, err := h.svc.Reconciler.Reconcile(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger.With(slog.String("target_account_id", accountID)), err, "Failed to reconcile account")
		return
	}
	if !report.Consistent() {
		logger.Error("Ledger drift detected", slog.String("account_id", accountID), slog.Int64("drift", report.Drift))
	}
	c.JSON(http.StatusOK, report)
}

func (h *adminHandler) adjust(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdminAdjust", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	adminID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("target_account_id", req.AccountID))

	posting, err := h.svc.Admin.AdminAdjust(c.Request.Context(), req, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to adjust balance")
		return
	}

	logger.Info("Balance adjusted", slog.Int64("delta", req.Delta), slog.Int64("new_balance", posting.NewBalance))
	c.JSON(http.StatusCreated, dto.PostingResponse{
		TransactionID: posting.Transaction.TransactionID,
		NewBalance:    posting.NewBalance,
	})
}

func (h *adminHandler) setTransactionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetTransactionStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	adminID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	transactionID := c.Param("transactionID")
	logger = logger.With(slog.String("transaction_id", transactionID))

	txn, err := h.svc.Admin.SetTransactionStatus(c.Request.Context(), transactionID, req, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to change transaction status")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *adminHandler) regenerateOTP(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")
	logger = logger.With(slog.String("payment_id", paymentID))

	res, err := h.svc.Payments.RegenerateOTP(c.Request.Context(), paymentID, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to regenerate passcode")
		return
	}
	resp := dto.InitiatePaymentResponse{Payment: dto.ToPaymentResponse(&res.Payment)}
	if h.exposeOTP {
		resp.OTP = res.OTP
	}
	c.JSON(http.StatusOK, resp)
}

func (h *adminHandler) forceCancel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")

	payment, err := h.svc.Payments.ForceCancelPayment(c.Request.Context(), paymentID, adminID)
	if err != nil {
		respondError(c, logger.With(slog.String("payment_id", paymentID)), err, "Failed to cancel payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// studioFor resolves the :kind path parameter, answering 400 for unknown kinds.
func (h *adminHandler) studioFor(c *gin.Context, logger *slog.Logger) (portssvc.StudioRepository, bool) {
	kind, ok := domain.ParseEntityKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity kind: " + c.Param("kind")})
		return nil, false
	}
	studio, err := h.svc.Admin.Studio(kind)
	if err != nil {
		respondError(c, logger, err, "Failed to open studio")
		return nil, false
	}
	return studio, true
}

func (h *adminHandler) studioList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studio, ok := h.studioFor(c, logger)
	if !ok {
		return
	}
	limit, offset, err := pageParams(c, 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := studio.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list records")
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": studio.Kind(), "items": rows})
}

func (h *adminHandler) studioFind(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studio, ok := h.studioFor(c, logger)
	if !ok {
		return
	}

	row, err := studio.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve record")
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *adminHandler) studioDelete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studio, ok := h.studioFor(c, logger)
	if !ok {
		return
	}
	id := c.Param("id")

	if err := studio.Delete(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete record")
		return
	}
	logger.Info("Studio record deleted", slog.String("kind", string(studio.Kind())), slog.String("id", id))
	c.Status(http.StatusNoContent)
}
