package pgsql

import (
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	departmentRepo := newPgxDepartmentRepository(dbPool)
	segmentRepo := newPgxSegmentRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	approvalRepo := newPgxApprovalRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	auditLogRepo := newPgxAuditLogRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)
	commentRepo := newPgxCommentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		DepartmentRepo:   departmentRepo,
		SegmentRepo:      segmentRepo,
		CurrencyRepo:     currencyRepo,
		ExpenseRepo:      expenseRepo,
		ApprovalRepo:     approvalRepo,
		BudgetRepo:       budgetRepo,
		AuditLogRepo:     auditLogRepo,
		NotificationRepo: notificationRepo,
		CommentRepo:      commentRepo,
	}
}
