package services

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
)

// SegmentReaderSvc defines read operations for segment data
type SegmentReaderSvc interface {
	// GetSegmentByID retrieves a segment by ID.
	GetSegmentByID(ctx context.Context, segmentID string) (*domain.Segment, error)

	// ListSegments retrieves segments, active-only when requested.
	ListSegments(ctx context.Context, activeOnly bool) ([]domain.Segment, error)

	// GetSegmentUsage reports how many allocations reference the segment.
	GetSegmentUsage(ctx context.Context, segmentID string) (*dto.SegmentUsageResponse, error)
}

// SegmentWriterSvc defines write operations for segment data
type SegmentWriterSvc interface {
	// CreateSegment persists a new segment.
	CreateSegment(ctx context.Context, req dto.CreateSegmentRequest, creatorUserID string) (*domain.Segment, error)

	// UpdateSegment updates an existing segment. Deactivation is refused
	// while the segment is referenced by allocations.
	UpdateSegment(ctx context.Context, segmentID string, req dto.UpdateSegmentRequest, requestingUserID string) (*domain.Segment, error)
}

// SegmentSvcFacade combines all segment-related service interfaces
type SegmentSvcFacade interface {
	SegmentReaderSvc
	SegmentWriterSvc
}
