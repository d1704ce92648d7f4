package services

import (
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Leaf services first: everything downstream depends on audit and
	// notification delivery.
	container.Audit = NewAuditService(repos.AuditLogRepo, repos.UserRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Department = NewDepartmentService(repos.DepartmentRepo, repos.UserRepo)
	container.Segment = NewSegmentService(repos.SegmentRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	container.Budget = NewBudgetService(
		repos.BudgetRepo,
		repos.SegmentRepo,
		repos.DepartmentRepo,
		repos.UserRepo,
		container.Audit,
		container.Notification,
	)

	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		repos.UserRepo,
		repos.SegmentRepo,
		repos.DepartmentRepo,
		container.Currency,
		container.Audit,
		container.Notification,
	)

	container.Approval = NewApprovalService(
		repos.ApprovalRepo,
		repos.ExpenseRepo,
		container.Notification,
		container.Budget,
	)

	container.Comment = NewCommentService(repos.CommentRepo, repos.ExpenseRepo, container.Notification)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
