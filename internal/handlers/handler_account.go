package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/dto"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
)

// accountHandler handles owner-scoped account reads.
type accountHandler struct {
	accountService portssvc.AccountReaderSvc
	tradeService   portssvc.TradeSvc
}

func newAccountHandler(as portssvc.AccountReaderSvc, ts portssvc.TradeSvc) *accountHandler {
	return &accountHandler{accountService: as, tradeService: ts}
}

// RegisterAccountRoutes registers routes related to the caller's accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountReaderSvc, ts portssvc.TradeSvc) {
	h := newAccountHandler(as, ts)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/transactions", h.listTransactions)
		accounts.GET("/:accountID/holdings", h.listHoldings)
		accounts.GET("/:accountID/orders", h.listOrders)
	}
}

// listAccounts returns every account owned by the caller.
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("target_account_id", accountID))

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions returns a page of the account's ledger, newest first. Pass the
// returned nextToken back to fetch the following page.
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("target_account_id", accountID))
	logger.Info("Received request to list transactions", slog.Int("limit", params.Limit))

	resp, err := h.accountService.ListTransactions(c.Request.Context(), accountID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *accountHandler) listHoldings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	holdings, err := h.accountService.ListHoldings(c.Request.Context(), accountID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("target_account_id", accountID)), err, "Failed to list holdings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"holdings": dto.ToHoldingResponses(holdings)})
}

func (h *accountHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	accountID := c.Param("accountID")
	limit, offset, err := pageParams(c, 20)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	orders, err := h.tradeService.ListOrders(c.Request.Context(), accountID, userID, limit, offset)
	if err != nil {
		respondError(c, logger.With(slog.String("target_account_id", accountID)), err, "Failed to list orders")
		return
	}
	res := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		res[i] = dto.ToOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, gin.H{"orders": res})
}
