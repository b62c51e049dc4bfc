package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
)

// paymentHandler handles the external payment lifecycle.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	// exposeOTP echoes the passcode in the response; outside production it stands in for SMS.
	exposeOTP bool
}

// RegisterPaymentRoutes registers payment and payee routes.
func RegisterPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade, exposeOTP bool) {
	h := &paymentHandler{paymentService: ps, exposeOTP: exposeOTP}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.initiatePayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/confirm", h.confirmPayment)
		payments.POST("/:paymentID/cancel", h.cancelPayment)
	}
	rg.GET("/payees", h.listPayees)
}

func (h *paymentHandler) initiateResponse(res *dto.InitiatePaymentResult) dto.InitiatePaymentResponse {
	resp := dto.InitiatePaymentResponse{Payment: dto.ToPaymentResponse(&res.Payment)}
	if h.exposeOTP {
		resp.OTP = res.OTP
	}
	return resp
}

// initiatePayment records a PENDING_OTP payment. No funds move until it is confirmed.
func (h *paymentHandler) initiatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InitiatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("source_account_id", req.SourceAccountID))
	res, err := h.paymentService.InitiatePayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to initiate payment")
		return
	}

	logger.Info("Payment awaiting passcode", slog.String("payment_id", res.Payment.PaymentID))
	c.JSON(http.StatusCreated, h.initiateResponse(res))
}

func (h *paymentHandler) confirmPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")
	logger = logger.With(slog.String("payment_id", paymentID))

	payment, err := h.paymentService.ConfirmPayment(c.Request.Context(), paymentID, req.OTP, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to confirm payment")
		return
	}

	logger.Info("Payment confirmed", slog.String("status", string(payment.Status)))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) cancelPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.CancelPayment(c.Request.Context(), paymentID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("payment_id", paymentID)), err, "Failed to cancel payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetPayment(c.Request.Context(), paymentID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("payment_id", paymentID)), err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	limit, offset, err := pageParams(c, 20)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}
	res := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		res[i] = dto.ToPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, gin.H{"payments": res})
}

func (h *paymentHandler) listPayees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	payees, err := h.paymentService.ListPayees(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list payees")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payees": payees})
}
