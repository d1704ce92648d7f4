package dto

import (
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// CreateSegmentRequest defines the data needed to create a segment.
type CreateSegmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateSegmentRequest defines the mutable fields of a segment.
type UpdateSegmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// SegmentResponse defines the data returned for a segment.
type SegmentResponse struct {
	SegmentID   string    `json:"segmentID"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SegmentUsageResponse reports how widely a segment is referenced.
type SegmentUsageResponse struct {
	SegmentID  string `json:"segmentID"`
	InUse      bool   `json:"inUse"`
	UsageCount int    `json:"usageCount"`
}

// ToSegmentResponse converts a domain.Segment to SegmentResponse DTO
func ToSegmentResponse(s *domain.Segment) SegmentResponse {
	return SegmentResponse{
		SegmentID:   s.SegmentID,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

// ToListSegmentResponse converts domain Segments to DTOs
func ToListSegmentResponse(ss []domain.Segment) []SegmentResponse {
	res := make([]SegmentResponse, len(ss))
	for i := range ss {
		res[i] = ToSegmentResponse(&ss[i])
	}
	return res
}
