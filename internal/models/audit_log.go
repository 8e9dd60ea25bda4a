package models

import "time"

// AuditLog is the audit_logs table row. Before and After hold JSON snapshots.
type AuditLog struct {
	AuditID    int64     `db:"audit_id"`
	UserID     string    `db:"user_id"`
	Action     string    `db:"action"`
	Module     string    `db:"module"`
	ResourceID string    `db:"resource_id"`
	Before     []byte    `db:"before_data"` // Nullable
	After      []byte    `db:"after_data"`  // Nullable
	CreatedAt  time.Time `db:"created_at"`
}
