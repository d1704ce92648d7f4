package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/middleware"
)

// auditService provides the append-only audit trail. Entries are written
// exactly once and never updated; reads are restricted to auditors and
// finance admins.
type auditService struct {
	auditRepo portsrepo.AuditLogRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo: auditRepo,
		userRepo:  userRepo,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record appends one audit entry. A failure here is returned to the caller:
// an action that cannot be audited is treated as not having happened.
func (s *auditService) Record(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID string, changes map[string]any) (*domain.AuditLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		Timestamp:  time.Now(),
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		logger.Error("Failed to append audit log",
			slog.String("action", string(action)),
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to append audit log: %w", err)
	}

	return &entry, nil
}

func (s *auditService) ListAuditLogs(ctx context.Context, filter portsrepo.AuditLogFilter, requestingUserID string, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find requesting user: %w", err)
	}
	if !requester.CanReadAuditLog() {
		return nil, nil, fmt.Errorf("%w: only auditors and finance admins may browse the audit trail", apperrors.ErrForbidden)
	}

	if limit <= 0 {
		limit = 50
	}

	entries, next, err := s.auditRepo.ListAuditLogs(ctx, filter, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	if entries == nil {
		entries = []domain.AuditLog{}
	}
	return entries, next, nil
}
