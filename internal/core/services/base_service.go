package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// newAuditEntry builds an audit log entry for repository methods that insert
// the entry inside the same transaction as the state change.
func newAuditEntry(actorID string, action domain.AuditAction, entityType, entityID string, changes map[string]any) domain.AuditLog {
	return domain.AuditLog{
		AuditLogID: uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		Timestamp:  time.Now(),
	}
}
