package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// ListAuditLogsParams defines query parameters for the audit trail.
type ListAuditLogsParams struct {
	Module     string `form:"module"`
	ResourceID string `form:"resourceID"`
	Limit      int    `form:"limit,default=50" binding:"min=1,max=500"`
}

// AuditLogResponse defines the data returned for an audit log row.
type AuditLogResponse struct {
	AuditID    int64           `json:"auditID"`
	UserID     string          `json:"userID"`
	Action     string          `json:"action"`
	Module     string          `json:"module"`
	ResourceID string          `json:"resourceID"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToAuditLogResponses converts domain audit rows to DTOs.
func ToAuditLogResponses(logs []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		res[i] = AuditLogResponse{
			AuditID:    l.AuditID,
			UserID:     l.UserID,
			Action:     string(l.Action),
			Module:     l.Module,
			ResourceID: l.ResourceID,
			Before:     l.Before,
			After:      l.After,
			CreatedAt:  l.CreatedAt,
		}
	}
	return res
}
