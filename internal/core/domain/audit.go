package domain

import (
	"encoding/json"
	"time"
)

// AuditAction names the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditCreate   AuditAction = "CREATE"
	AuditUpdate   AuditAction = "UPDATE"
	AuditDelete   AuditAction = "DELETE"
	AuditPost     AuditAction = "POST"
	AuditReverse  AuditAction = "REVERSE"
	AuditActivate AuditAction = "ACTIVATE"
	AuditLock     AuditAction = "LOCK"
	AuditSetBase  AuditAction = "SET_BASE"
	AuditSeed     AuditAction = "SEED"
)

// AuditLog is a persisted before/after snapshot of one mutation.
type AuditLog struct {
	AuditID    int64           `json:"auditID"`
	UserID     string          `json:"userID"`
	Action     AuditAction     `json:"action"`
	Module     string          `json:"module"`
	ResourceID string          `json:"resourceID"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	Module     string
	ResourceID string
	Limit      int
}
