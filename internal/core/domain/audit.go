package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionTopup          AuditAction = "TOPUP"
	AuditActionTransfer       AuditAction = "TRANSFER"
	AuditActionConversion     AuditAction = "CONVERSION"
	AuditActionCardFreeze     AuditAction = "CARD_FREEZE"
	AuditActionCardUnfreeze   AuditAction = "CARD_UNFREEZE"
	AuditActionCardToggle     AuditAction = "CARD_TOGGLE"
	AuditActionCardLimit      AuditAction = "CARD_LIMIT"
	AuditActionBusinessMode   AuditAction = "BUSINESS_MODE"
	AuditActionAssistantQuery AuditAction = "ASSISTANT_QUERY"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	RequestID    string      `json:"request_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	StatusCode   int         `json:"status_code"`
	CreatedAt    time.Time   `json:"created_at"`
}
