package services

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
)

// AuditRecorderSvc appends to the audit trail.
type AuditRecorderSvc interface {
	// Record appends one immutable entry. Failures are fatal for the caller:
	// an action is not considered complete when it cannot be audited.
	Record(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID string, changes map[string]any) (*domain.AuditLog, error)
}

// AuditReaderSvc reads the audit trail.
type AuditReaderSvc interface {
	// ListAuditLogs retrieves entries matching the filter, timestamp
	// ascending. Restricted to auditors and finance admins.
	ListAuditLogs(ctx context.Context, filter portsrepo.AuditLogFilter, requestingUserID string, limit int, nextToken *string) ([]domain.AuditLog, *string, error)
}

// AuditSvcFacade combines all audit-related service interfaces
type AuditSvcFacade interface {
	AuditRecorderSvc
	AuditReaderSvc
}
