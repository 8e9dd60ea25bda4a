package mapping

import (
	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditID:    d.AuditID,
		UserID:     d.UserID,
		Action:     string(d.Action),
		Module:     d.Module,
		ResourceID: d.ResourceID,
		Before:     d.Before,
		After:      d.After,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditID:    m.AuditID,
		UserID:     m.UserID,
		Action:     domain.AuditAction(m.Action),
		Module:     m.Module,
		ResourceID: m.ResourceID,
		Before:     m.Before,
		After:      m.After,
		CreatedAt:  m.CreatedAt,
	}
}
