package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TimesheetRepo     TimesheetRepositoryFacade
	RejectionNoteRepo RejectionNoteRepositoryFacade
	RoleRepo          RoleRepositoryFacade
	PermissionRepo    PermissionRepositoryFacade
	UserRepo          UserRepositoryFacade
	ProjectRepo       ProjectRepositoryFacade
	ProjectTeamRepo   ProjectTeamRepositoryFacade
	StatusReportRepo  ProjectStatusReportRepositoryFacade
	CategoryRepo      CategoryRepositoryFacade
	SubscriptionRepo  SubscriptionRepositoryFacade
	NotificationRepo  NotificationRepositoryFacade
	ReportRepo        ReportRepository
	ApprovalAuditRepo ApprovalAuditRepository
}
