package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
)

type transferHandler struct {
	transferService portssvc.TransferSvc
}

// RegisterTransferRoutes registers the internal transfer route.
func RegisterTransferRoutes(rg *gin.RouterGroup, ts portssvc.TransferSvc) {
	h := &transferHandler{transferService: ts}
	rg.POST("/transfers", h.createTransfer)
}

// createTransfer moves funds between two accounts owned by the caller.
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("from_account_id", req.FromAccountID), slog.String("to_account_id", req.ToAccountID))
	logger.Info("Received request to transfer", slog.Int64("amount", req.Amount))

	res, err := h.transferService.Transfer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to transfer funds")
		return
	}

	logger.Info("Transfer completed", slog.String("payment_id", res.PaymentID))
	c.JSON(http.StatusCreated, res)
}
