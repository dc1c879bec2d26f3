package services_test

import (
	"context"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock TimesheetRepository ---
type MockTimesheetRepository struct {
	mock.Mock
}

var _ portsrepo.TimesheetRepositoryFacade = (*MockTimesheetRepository)(nil)

func (m *MockTimesheetRepository) FindTimesheetByID(ctx context.Context, timesheetID string) (*domain.Timesheet, error) {
	args := m.Called(ctx, timesheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindUserTimesheets(ctx context.Context, userID string) ([]domain.Timesheet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindWeeklyTimesheets(ctx context.Context, userID string, week domain.DateRange) ([]domain.Timesheet, error) {
	args := m.Called(ctx, userID, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindTimesheetsWithEntryBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Timesheet, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindPastDue(ctx context.Context, userID string, before time.Time, statuses []domain.TimesheetStatus) ([]domain.Timesheet, error) {
	args := m.Called(ctx, userID, before, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) SaveTimesheet(ctx context.Context, timesheet domain.Timesheet) (*domain.Timesheet, error) {
	args := m.Called(ctx, timesheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) UpdateTimesheetEntries(ctx context.Context, timesheet domain.Timesheet, expected domain.TimesheetStatus) (*domain.Timesheet, error) {
	args := m.Called(ctx, timesheet, expected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) UpdateTimesheetStatus(ctx context.Context, timesheetID string, from []domain.TimesheetStatus, to domain.TimesheetStatus) (*domain.Timesheet, error) {
	args := m.Called(ctx, timesheetID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) UpdateWeekStatus(ctx context.Context, userID string, week domain.DateRange, from []domain.TimesheetStatus, to domain.TimesheetStatus) (int64, error) {
	args := m.Called(ctx, userID, week, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock RejectionNoteRepository ---
type MockRejectionNoteRepository struct {
	mock.Mock
}

var _ portsrepo.RejectionNoteRepositoryFacade = (*MockRejectionNoteRepository)(nil)

func (m *MockRejectionNoteRepository) FindByWeek(ctx context.Context, userID string, week domain.DateRange) (*domain.RejectionNote, error) {
	args := m.Called(ctx, userID, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RejectionNote), args.Error(1)
}

func (m *MockRejectionNoteRepository) CreateRejectionNote(ctx context.Context, note domain.RejectionNote) (*domain.RejectionNote, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RejectionNote), args.Error(1)
}

func (m *MockRejectionNoteRepository) UpdateRejectionNotes(ctx context.Context, noteID string, notes string) error {
	return m.Called(ctx, noteID, notes).Error(0)
}

func (m *MockRejectionNoteRepository) DeleteRejectionNote(ctx context.Context, noteID string) error {
	return m.Called(ctx, noteID).Error(0)
}

// --- Mock RoleRepository ---
type MockRoleRepository struct {
	mock.Mock
}

var _ portsrepo.RoleRepositoryFacade = (*MockRoleRepository)(nil)

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) FindRoleByUserID(ctx context.Context, userID string) (*domain.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) FindRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func (m *MockRoleRepository) SaveRole(ctx context.Context, role domain.Role) (*domain.Role, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) UpdateRole(ctx context.Context, role domain.Role) (*domain.Role, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) AddUsersToRole(ctx context.Context, roleID string, userIDs []string) (*domain.Role, error) {
	args := m.Called(ctx, roleID, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	return m.Called(ctx, roleID).Error(0)
}

// --- Mock PermissionRepository ---
type MockPermissionRepository struct {
	mock.Mock
}

var _ portsrepo.PermissionRepositoryFacade = (*MockPermissionRepository)(nil)

func (m *MockPermissionRepository) SavePermission(ctx context.Context, permission domain.Permission) (*domain.Permission, error) {
	args := m.Called(ctx, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) UpdatePermissionActions(ctx context.Context, permissionID string, actions []string) error {
	return m.Called(ctx, permissionID, actions).Error(0)
}

func (m *MockPermissionRepository) FindPermissionsByIDs(ctx context.Context, ids []string) ([]domain.Permission, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Permission), args.Error(1)
}

func (m *MockPermissionRepository) DeletePermissions(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) ([]domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectRepositoryFacade = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) FindProjectsByLead(ctx context.Context, leadUserID string) ([]domain.Project, error) {
	args := m.Called(ctx, leadUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) FindProjects(ctx context.Context, filter domain.ProjectFilter, limit, offset int) ([]domain.Project, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) FindProjectNames(ctx context.Context) ([]domain.DropdownItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DropdownItem), args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) (*domain.Project, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) (*domain.Project, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	return m.Called(ctx, projectID).Error(0)
}

// --- Mock ProjectTeamRepository ---
type MockProjectTeamRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectTeamRepositoryFacade = (*MockProjectTeamRepository)(nil)

func (m *MockProjectTeamRepository) SaveProjectTeam(ctx context.Context, team domain.ProjectTeam) (*domain.ProjectTeam, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTeam), args.Error(1)
}

func (m *MockProjectTeamRepository) FindProjectTeamByProjectID(ctx context.Context, projectID string) (*domain.ProjectTeam, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTeam), args.Error(1)
}

func (m *MockProjectTeamRepository) FindExpandedTeamPage(ctx context.Context, projectID string, limit, offset int) ([]domain.TeamMemberView, error) {
	args := m.Called(ctx, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMemberView), args.Error(1)
}

func (m *MockProjectTeamRepository) FindProjectTeams(ctx context.Context, limit, offset int) ([]domain.ProjectTeam, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ProjectTeam), args.Get(1).(int64), args.Error(2)
}

// --- Mock ReportRepository ---
type MockReportRepository struct {
	mock.Mock
}

var _ portsrepo.ReportRepository = (*MockReportRepository)(nil)

func (m *MockReportRepository) UserProjectHours(ctx context.Context, q domain.ReportQuery) ([]domain.ProjectHours, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectHours), args.Error(1)
}

func (m *MockReportRepository) CategoryHours(ctx context.Context, q domain.ReportQuery) ([]domain.CategoryHoursRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryHoursRow), args.Error(1)
}

func (m *MockReportRepository) StatusCounts(ctx context.Context, userID string, r domain.DateRange) ([]domain.StatusCount, error) {
	args := m.Called(ctx, userID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

// --- Mock ApprovalAuditRepository ---
type MockApprovalAuditRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalAuditRepository = (*MockApprovalAuditRepository)(nil)

func (m *MockApprovalAuditRepository) RecordApproval(ctx context.Context, entry domain.ApprovalAuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockApprovalAuditRepository) ListApprovalsForUser(ctx context.Context, userID string, limit int) ([]domain.ApprovalAuditEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalAuditEntry), args.Error(1)
}

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

func (m *MockNotificationService) Notify(ctx context.Context, userID, message string, severity domain.Severity) error {
	return m.Called(ctx, userID, message, severity).Error(0)
}

func (m *MockNotificationService) Persist(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, userID string, page domain.Pagination) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) RemindPastDue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// --- Mock LockManager ---
type MockLocker struct {
	mock.Mock
}

var _ portsrepo.LockManager = (*MockLocker)(nil)

func (m *MockLocker) Acquire(ctx context.Context, key string) (portsrepo.ReleaseFunc, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portsrepo.ReleaseFunc), args.Error(1)
}

// day parses a calendar date in UTC.
func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindUserNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

// --- Mock NotificationDispatcher ---
type MockDispatcher struct {
	mock.Mock
}

var _ portssvc.NotificationDispatcher = (*MockDispatcher)(nil)

func (m *MockDispatcher) DispatchNotification(ctx context.Context, n domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
