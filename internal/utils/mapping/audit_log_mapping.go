package mapping

import (
	"encoding/json"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog, serializing
// the changes snapshot to JSON.
func ToModelAuditLog(d domain.AuditLog) (models.AuditLog, error) {
	var changes []byte
	if d.Changes != nil {
		var err error
		changes, err = json.Marshal(d.Changes)
		if err != nil {
			return models.AuditLog{}, err
		}
	}
	return models.AuditLog{
		AuditLogID: d.AuditLogID,
		ActorID:    d.ActorID,
		Action:     string(d.Action),
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Changes:    changes,
		Timestamp:  d.Timestamp,
	}, nil
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog. A corrupt
// changes payload is surfaced as an empty snapshot rather than an error so
// reads of the trail never fail on one bad row.
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	var changes map[string]any
	if len(m.Changes) > 0 {
		_ = json.Unmarshal(m.Changes, &changes)
	}
	return domain.AuditLog{
		AuditLogID: m.AuditLogID,
		ActorID:    m.ActorID,
		Action:     domain.AuditAction(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Changes:    changes,
		Timestamp:  m.Timestamp,
	}
}

// ToDomainAuditLogSlice converts model AuditLogs to domain AuditLogs
func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLog {
	ds := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLog(m)
	}
	return ds
}
