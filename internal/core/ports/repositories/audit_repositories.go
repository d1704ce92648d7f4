package repositories

import (
	"context"
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// AuditLogFilter narrows audit trail reads.
type AuditLogFilter struct {
	ActorID    string
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
}

// AuditLogReader defines read operations over the audit trail.
type AuditLogReader interface {
	// ListAuditLogs retrieves entries matching the filter in timestamp
	// ascending order (the canonical read order) with keyset pagination.
	ListAuditLogs(ctx context.Context, filter AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLog, *string, error)
}

// AuditLogWriter appends to the audit trail. There are no update or delete
// operations: entries are immutable once written.
type AuditLogWriter interface {
	// SaveAuditLog appends one entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditLogRepositoryFacade combines all audit-log repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
