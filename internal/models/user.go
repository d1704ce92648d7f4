package models

// User is the persistence model for application users.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	Email        string  `db:"email"`
	FullName     string  `db:"full_name"`
	PasswordHash string  `db:"password_hash"`
	Role         string  `db:"role"`
	DepartmentID *string `db:"department_id"` // NULL when unassigned
	IsActive     bool    `db:"is_active"`
	// RefreshTokenHash stores a SHA256 hash of the active refresh token.
	RefreshTokenHash *string `db:"refresh_token_hash"`
	AuditFields
}
