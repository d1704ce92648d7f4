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
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/aakritisaxena/ExpenseManagement/internal/middleware"
)

// segmentService provides segment (expense category) management.
type segmentService struct {
	segmentRepo portsrepo.SegmentRepositoryFacade
}

// NewSegmentService creates a new segment service.
func NewSegmentService(segmentRepo portsrepo.SegmentRepositoryFacade) portssvc.SegmentSvcFacade {
	return &segmentService{segmentRepo: segmentRepo}
}

var _ portssvc.SegmentSvcFacade = (*segmentService)(nil)

func (s *segmentService) GetSegmentByID(ctx context.Context, segmentID string) (*domain.Segment, error) {
	segment, err := s.segmentRepo.FindSegmentByID(ctx, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get segment: %w", err)
	}
	return segment, nil
}

func (s *segmentService) ListSegments(ctx context.Context, activeOnly bool) ([]domain.Segment, error) {
	segments, err := s.segmentRepo.ListSegments(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	if segments == nil {
		segments = []domain.Segment{}
	}
	return segments, nil
}

func (s *segmentService) GetSegmentUsage(ctx context.Context, segmentID string) (*dto.SegmentUsageResponse, error) {
	if _, err := s.segmentRepo.FindSegmentByID(ctx, segmentID); err != nil {
		return nil, fmt.Errorf("failed to find segment: %w", err)
	}

	count, err := s.segmentRepo.CountAllocationsForSegment(ctx, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count segment usage: %w", err)
	}

	return &dto.SegmentUsageResponse{
		SegmentID:  segmentID,
		InUse:      count > 0,
		UsageCount: count,
	}, nil
}

func (s *segmentService) CreateSegment(ctx context.Context, req dto.CreateSegmentRequest, creatorUserID string) (*domain.Segment, error) {
	now := time.Now()
	segment := domain.Segment{
		SegmentID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.segmentRepo.SaveSegment(ctx, segment); err != nil {
		return nil, fmt.Errorf("failed to create segment: %w", err)
	}

	return &segment, nil
}

func (s *segmentService) UpdateSegment(ctx context.Context, segmentID string, req dto.UpdateSegmentRequest, requestingUserID string) (*domain.Segment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	segment, err := s.segmentRepo.FindSegmentByID(ctx, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find segment for update: %w", err)
	}

	// Deactivation is refused while allocations still reference the segment,
	// so historical splits stay resolvable.
	if req.IsActive != nil && !*req.IsActive && segment.IsActive {
		count, err := s.segmentRepo.CountAllocationsForSegment(ctx, segmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check segment usage: %w", err)
		}
		if count > 0 {
			logger.Warn("Refused to deactivate segment in use", slog.String("segment_id", segmentID), slog.Int("usage_count", count))
			return nil, fmt.Errorf("%w: segment is referenced by %d allocations", apperrors.ErrValidation, count)
		}
	}

	if req.Name != nil {
		segment.Name = *req.Name
	}
	if req.Description != nil {
		segment.Description = *req.Description
	}
	if req.IsActive != nil {
		segment.IsActive = *req.IsActive
	}
	segment.LastUpdatedAt = time.Now()
	segment.LastUpdatedBy = requestingUserID

	if err := s.segmentRepo.UpdateSegment(ctx, *segment); err != nil {
		return nil, fmt.Errorf("failed to update segment: %w", err)
	}

	return segment, nil
}
