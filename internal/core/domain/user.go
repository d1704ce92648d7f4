package domain

// UserRole determines what a user may do across the expense workflow.
type UserRole string

const (
	RoleEmployee     UserRole = "EMPLOYEE"
	RoleManager      UserRole = "MANAGER"
	RoleFinanceAdmin UserRole = "FINANCE_ADMIN"
	RoleAuditor      UserRole = "AUDITOR"
)

// User represents an application user.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FullName     string   `json:"fullName"`
	PasswordHash string   `json:"-"` // Never serialized
	Role         UserRole `json:"role"`
	DepartmentID string   `json:"departmentID"` // FK -> Department, empty when unassigned
	IsActive     bool     `json:"isActive"`
	AuditFields
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsFinanceAdmin reports whether the user holds the finance admin role.
func (u *User) IsFinanceAdmin() bool {
	return u.Role == RoleFinanceAdmin
}

// CanReadAuditLog reports whether the user may browse the audit trail.
func (u *User) CanReadAuditLog() bool {
	return u.Role == RoleAuditor || u.Role == RoleFinanceAdmin
}

// GoogleUserInfo is the profile returned by Google during OAuth sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
