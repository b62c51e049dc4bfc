package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/simbank_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware records one product event per successful state-changing API call.
// Reads are not tracked; money movements are reported separately by the audit sink.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/payments/:paymentID/confirm" -> "api_v1_payments_paymentID_confirm"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.NewReplacer("/", "_", ":", "").Replace(eventName)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if role, ok := GetRoleFromContext(c); ok && role != "" {
			props["role"] = role
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}
