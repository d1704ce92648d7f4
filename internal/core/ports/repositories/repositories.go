package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	DepartmentRepo   DepartmentRepositoryFacade
	SegmentRepo      SegmentRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExpenseRepo      ExpenseRepositoryFacade
	ApprovalRepo     ApprovalRepositoryFacade
	BudgetRepo       BudgetRepositoryFacade
	AuditLogRepo     AuditLogRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	CommentRepo      CommentRepositoryFacade
}
