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

type tradeHandler struct {
	tradeService portssvc.TradeSvc
}

// RegisterTradeRoutes registers the order execution route.
func RegisterTradeRoutes(rg *gin.RouterGroup, ts portssvc.TradeSvc) {
	h := &tradeHandler{tradeService: ts}
	rg.POST("/trades", h.executeOrder)
}

// executeOrder fills a market order at the current oracle price.
func (h *tradeHandler) executeOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExecuteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecuteOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID), slog.String("symbol", req.Symbol))
	logger.Info("Received order", slog.String("side", string(req.Side)), slog.String("quantity", req.Quantity.String()))

	res, err := h.tradeService.ExecuteOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to execute order")
		return
	}

	resp := dto.TradeResponse{Order: dto.ToOrderResponse(&res.Order), NewBalance: res.NewBalance}
	if res.Holding != nil {
		hs := dto.ToHoldingResponses([]domain.Holding{*res.Holding})
		resp.Holding = &hs[0]
	}
	logger.Info("Order filled", slog.String("order_id", res.Order.OrderID), slog.Int64("total", res.Order.Total))
	c.JSON(http.StatusCreated, resp)
}
