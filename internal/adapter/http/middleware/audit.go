package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
// It maps route patterns to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		resourceID := c.GetString(CtxResourceID)
		if resourceID == "" {
			resourceID = c.Param("id")
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			RequestID:    c.GetString(CtxRequestID),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Details:      string(details),
			IPAddress:    c.ClientIP(),
			StatusCode:   status,
			CreatedAt:    time.Now(),
		})
	}
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	switch method {
	case http.MethodPost:
		switch route {
		case "/api/v1/wallets/topup":
			return domain.AuditActionTopup, "wallet"
		case "/api/v1/transfers":
			return domain.AuditActionTransfer, "transaction"
		case "/api/v1/conversions":
			return domain.AuditActionConversion, "transaction"
		case "/api/v1/cards/:id/freeze":
			return domain.AuditActionCardFreeze, "card"
		case "/api/v1/cards/:id/unfreeze":
			return domain.AuditActionCardUnfreeze, "card"
		case "/api/v1/cards/:id/toggle":
			return domain.AuditActionCardToggle, "card"
		case "/api/v1/assistant/messages":
			return domain.AuditActionAssistantQuery, "assistant"
		}
	case http.MethodPut:
		switch route {
		case "/api/v1/cards/:id/limit":
			return domain.AuditActionCardLimit, "card"
		case "/api/v1/profile/business-mode":
			return domain.AuditActionBusinessMode, "profile"
		}
	}
	return "", ""
}
