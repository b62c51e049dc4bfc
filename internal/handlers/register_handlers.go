package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
	"github.com/SscSPs/simbank_ledger/internal/platform/config"
)

// RegisterRoutes sets up all application routes. Extra middleware (rate limiting,
// product analytics) runs on the authenticated groups after the JWT check.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, apiMiddleware)
}

// setupAPIV1Routes configures the /api/v1 group and its admin sub-group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware []gin.HandlerFunc,
) {
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}, apiMiddleware...)
	v1 := r.Group("/api/v1", chain...)

	exposeOTP := !cfg.IsProduction
	RegisterAccountRoutes(v1, services.Account, services.Trade)
	RegisterTransferRoutes(v1, services.Transfer)
	RegisterPaymentRoutes(v1, services.Payment, exposeOTP)
	RegisterTradeRoutes(v1, services.Trade)

	admin := v1.Group("/admin", middleware.RequireRole(middleware.RoleAdmin))
	RegisterAdminRoutes(admin, AdminServices{
		Accounts:   services.Account,
		Admin:      services.Admin,
		Payments:   services.Payment,
		Reconciler: services.Ledger,
	}, exposeOTP)
}
