package mongodb

import (
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// NewRepositoryProvider creates and returns a new RepositoryProvider.
// The audit repository lives in PostgreSQL and may be nil when that store is not configured.
func NewRepositoryProvider(db *mongo.Database, auditRepo portsrepo.ApprovalAuditRepository) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TimesheetRepo:     NewTimesheetRepository(db),
		RejectionNoteRepo: NewRejectionNoteRepository(db),
		RoleRepo:          NewRoleRepository(db),
		PermissionRepo:    NewPermissionRepository(db),
		UserRepo:          NewUserRepository(db),
		ProjectRepo:       NewProjectRepository(db),
		ProjectTeamRepo:   NewProjectTeamRepository(db),
		StatusReportRepo:  NewStatusReportRepository(db),
		CategoryRepo:      NewCategoryRepository(db),
		SubscriptionRepo:  NewSubscriptionRepository(db),
		NotificationRepo:  NewNotificationRepository(db),
		ReportRepo:        NewReportRepository(db),
		ApprovalAuditRepo: auditRepo,
	}
}
