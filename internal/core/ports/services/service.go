package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User               UserSvcFacade
	Department         DepartmentSvcFacade
	Segment            SegmentSvcFacade
	Currency           CurrencySvcFacade
	Expense            ExpenseSvcFacade
	Approval           ApprovalSvcFacade
	Budget             BudgetSvcFacade
	Audit              AuditSvcFacade
	Notification       NotificationSvcFacade
	Comment            CommentSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
