package services

// ServiceContainer holds instances of all the application services.
// It is built once at startup and handed to the handlers.
type ServiceContainer struct {
	Approval     ApprovalSvcFacade
	Timesheet    TimesheetSvcFacade
	Report       ReportSvcFacade
	Role         RoleSvcFacade
	Project      ProjectSvcFacade
	ProjectTeam  ProjectTeamSvcFacade
	StatusReport StatusReportSvcFacade
	Category     CategorySvcFacade
	Subscription SubscriptionSvcFacade
	Notification NotificationSvcFacade
	User         UserSvcFacade
	TokenService TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
}
