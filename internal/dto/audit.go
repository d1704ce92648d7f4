package dto

import (
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// AuditLogResponse defines the data returned for one audit trail entry.
type AuditLogResponse struct {
	AuditLogID string         `json:"auditLogID"`
	ActorID    string         `json:"actorID"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Changes    map[string]any `json:"changes,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// ListAuditLogsResponse wraps a page of audit entries with its pagination token.
type ListAuditLogsResponse struct {
	Entries   []AuditLogResponse `json:"entries"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToAuditLogResponse converts a domain.AuditLog to AuditLogResponse DTO
func ToAuditLogResponse(e *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditLogID: e.AuditLogID,
		ActorID:    e.ActorID,
		Action:     string(e.Action),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Changes:    e.Changes,
		Timestamp:  e.Timestamp,
	}
}

// ToListAuditLogResponse converts domain AuditLogs to DTOs
func ToListAuditLogResponse(es []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(es))
	for i := range es {
		res[i] = ToAuditLogResponse(&es[i])
	}
	return res
}
