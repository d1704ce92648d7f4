package domain

// Segment is an expense category (e.g., Travel, Marketing) used for budget scoping.
// Segments have an independent lifecycle and are referenced, not owned, by allocations.
type Segment struct {
	SegmentID   string `json:"segmentID"` // Primary Key (UUID)
	Name        string `json:"name"`      // Unique
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
