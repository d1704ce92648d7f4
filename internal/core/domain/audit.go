package domain

import "time"

// AuditAction classifies state-changing actions in the audit trail.
type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditUpdate  AuditAction = "UPDATE"
	AuditDelete  AuditAction = "DELETE"
	AuditSubmit  AuditAction = "SUBMIT"
	AuditApprove AuditAction = "APPROVE"
	AuditReject  AuditAction = "REJECT"
)

// AuditLog is an immutable, append-only record of one state-changing action.
// Entries are never updated or deleted after creation; the canonical read
// order is timestamp ascending.
type AuditLog struct {
	AuditLogID string         `json:"auditLogID"` // Primary Key (UUID)
	ActorID    string         `json:"actorID"`    // FK -> User; who performed the action
	Action     AuditAction    `json:"action"`
	EntityType string         `json:"entityType"` // e.g., "Expense", "Budget"
	EntityID   string         `json:"entityID"`
	Changes    map[string]any `json:"changes,omitempty"` // Payload snapshot
	Timestamp  time.Time      `json:"timestamp"`
}
