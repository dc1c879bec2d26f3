package services

import (
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/config"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/metrics"
)

// Infrastructure holds the optional adapters the services can use.
// A nil field disables the matching feature or selects its in-process fallback.
type Infrastructure struct {
	Locker      portsrepo.LockManager
	ReportCache portssvc.ReportCache
	Dispatcher  portssvc.NotificationDispatcher
	Files       portssvc.FileStore
	Metrics     *metrics.Metrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, infra Infrastructure) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Notifications come first since the approval service sends them
	notificationOpts := []NotificationOption{}
	if infra.Dispatcher != nil {
		notificationOpts = append(notificationOpts, WithNotificationDispatcher(infra.Dispatcher))
	}
	container.Notification = NewNotificationService(repos.NotificationRepo, repos.TimesheetRepo, notificationOpts...)

	approvalOpts := []ApprovalOption{
		WithApprovalMetrics(infra.Metrics),
		WithNotifyOnPlainApproval(cfg.NotifyOnPlainApproval),
	}
	if infra.Locker != nil {
		approvalOpts = append(approvalOpts, WithApprovalLocker(infra.Locker))
	}
	timesheetOpts := []TimesheetOption{}
	reportOpts := []ReportOption{}
	if infra.ReportCache != nil {
		approvalOpts = append(approvalOpts, WithApprovalReportCache(infra.ReportCache))
		timesheetOpts = append(timesheetOpts, WithTimesheetReportCache(infra.ReportCache))
		reportOpts = append(reportOpts, WithReportCache(infra.ReportCache))
	}

	container.Approval = NewApprovalService(repos, container.Notification, approvalOpts...)
	container.Timesheet = NewTimesheetService(repos, timesheetOpts...)
	container.Report = NewReportService(repos.ReportRepo, reportOpts...)
	container.Role = NewRoleService(repos.RoleRepo, repos.PermissionRepo, repos.UserRepo)
	container.Project = NewProjectService(repos.ProjectRepo, repos.UserRepo, infra.Files)
	container.ProjectTeam = NewProjectTeamService(repos.ProjectTeamRepo, repos.ProjectRepo, repos.UserRepo)
	container.StatusReport = NewStatusReportService(repos.StatusReportRepo, repos.ProjectRepo, repos.UserRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.ProjectRepo)
	container.User = NewUserService(repos.UserRepo, repos.RoleRepo)

	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
