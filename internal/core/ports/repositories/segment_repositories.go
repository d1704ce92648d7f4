package repositories

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// SegmentReader defines read operations for segment data
type SegmentReader interface {
	// FindSegmentByID retrieves a segment by ID.
	FindSegmentByID(ctx context.Context, segmentID string) (*domain.Segment, error)

	// FindSegmentsByIDs retrieves multiple segments keyed by ID.
	FindSegmentsByIDs(ctx context.Context, segmentIDs []string) (map[string]domain.Segment, error)

	// ListSegments retrieves all segments, active-only when requested.
	ListSegments(ctx context.Context, activeOnly bool) ([]domain.Segment, error)

	// CountAllocationsForSegment returns how many expense allocations
	// reference the segment.
	CountAllocationsForSegment(ctx context.Context, segmentID string) (int, error)
}

// SegmentWriter defines write operations for segment data
type SegmentWriter interface {
	// SaveSegment persists a new segment.
	SaveSegment(ctx context.Context, segment domain.Segment) error

	// UpdateSegment updates an existing segment.
	UpdateSegment(ctx context.Context, segment domain.Segment) error
}

// SegmentRepositoryFacade combines all segment-related repository interfaces
type SegmentRepositoryFacade interface {
	SegmentReader
	SegmentWriter
}
