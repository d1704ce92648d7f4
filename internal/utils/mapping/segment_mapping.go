package mapping

import (
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
)

// ToModelSegment converts a domain Segment to a model Segment
func ToModelSegment(d domain.Segment) models.Segment {
	return models.Segment{
		SegmentID:   d.SegmentID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSegment converts a model Segment to a domain Segment
func ToDomainSegment(m models.Segment) domain.Segment {
	return domain.Segment{
		SegmentID:   m.SegmentID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSegmentSlice converts model Segments to domain Segments
func ToDomainSegmentSlice(ms []models.Segment) []domain.Segment {
	ds := make([]domain.Segment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSegment(m)
	}
	return ds
}
