package models

import "time"

// AuditLog is the persistence model for the append-only audit trail. Rows are
// inserted once and never updated or deleted.
type AuditLog struct {
	AuditLogID string    `db:"audit_log_id"`
	ActorID    string    `db:"actor_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Changes    []byte    `db:"changes"` // JSONB payload snapshot
	Timestamp  time.Time `db:"timestamp"`
}
