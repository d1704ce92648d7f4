package models

// Segment is the persistence model for expense categories.
type Segment struct {
	SegmentID   string `db:"segment_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
