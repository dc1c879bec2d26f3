package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// memoryLedger is an in-memory rejection ledger keyed by user and week.
type memoryLedger struct {
	mu    sync.Mutex
	notes map[string]domain.RejectionNote
}

var _ portsrepo.RejectionNoteRepositoryFacade = (*memoryLedger)(nil)

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{notes: make(map[string]domain.RejectionNote)}
}

func ledgerKey(userID string, week domain.DateRange) string {
	return userID + "|" + week.Start.String() + "|" + week.End.String()
}

func (l *memoryLedger) FindByWeek(_ context.Context, userID string, week domain.DateRange) (*domain.RejectionNote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n, ok := l.notes[ledgerKey(userID, week)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &n, nil
}

func (l *memoryLedger) CreateRejectionNote(_ context.Context, note domain.RejectionNote) (*domain.RejectionNote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := ledgerKey(note.UserID, note.Week())
	if _, ok := l.notes[key]; ok {
		return nil, apperrors.ErrDuplicate
	}
	note.ID = bson.NewObjectID().Hex()
	l.notes[key] = note
	return &note, nil
}

func (l *memoryLedger) UpdateRejectionNotes(_ context.Context, noteID string, notes string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, n := range l.notes {
		if n.ID == noteID {
			n.Notes = notes
			l.notes[k] = n
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (l *memoryLedger) DeleteRejectionNote(_ context.Context, noteID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, n := range l.notes {
		if n.ID == noteID {
			delete(l.notes, k)
		}
	}
	return nil
}

func (l *memoryLedger) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.notes)
}

// --- Test Suite Setup ---
type ApprovalServiceTestSuite struct {
	suite.Suite
	mockTimesheetRepo *MockTimesheetRepository
	mockRejectionRepo *MockRejectionNoteRepository
	mockRoleRepo      *MockRoleRepository
	mockUserRepo      *MockUserRepository
	mockProjectRepo   *MockProjectRepository
	mockTeamRepo      *MockProjectTeamRepository
	mockAuditRepo     *MockApprovalAuditRepository
	mockNotifier      *MockNotificationService
	repos             *portsrepo.RepositoryProvider
	service           portssvc.ApprovalSvcFacade

	ctx        context.Context
	reviewerID string
	ownerID    string
	week       domain.DateRange
	timesheet  domain.Timesheet
	reviewer   domain.User
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockTimesheetRepo = new(MockTimesheetRepository)
	suite.mockRejectionRepo = new(MockRejectionNoteRepository)
	suite.mockRoleRepo = new(MockRoleRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockTeamRepo = new(MockProjectTeamRepository)
	suite.mockAuditRepo = new(MockApprovalAuditRepository)
	suite.mockNotifier = new(MockNotificationService)

	suite.repos = &portsrepo.RepositoryProvider{
		TimesheetRepo:     suite.mockTimesheetRepo,
		RejectionNoteRepo: suite.mockRejectionRepo,
		RoleRepo:          suite.mockRoleRepo,
		UserRepo:          suite.mockUserRepo,
		ProjectRepo:       suite.mockProjectRepo,
		ProjectTeamRepo:   suite.mockTeamRepo,
	}
	suite.service = services.NewApprovalService(suite.repos, suite.mockNotifier)

	suite.ctx = context.Background()
	suite.reviewerID = bson.NewObjectID().Hex()
	suite.ownerID = bson.NewObjectID().Hex()
	suite.week = domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-07")}
	suite.timesheet = domain.Timesheet{
		ID:        bson.NewObjectID().Hex(),
		UserID:    suite.ownerID,
		ProjectID: bson.NewObjectID().Hex(),
		StartDate: suite.week.Start,
		EndDate:   suite.week.End,
		Status:    domain.TimesheetSubmitted,
	}
	suite.reviewer = domain.User{UserID: suite.reviewerID, FullName: "asha menon"}
}

func (suite *ApprovalServiceTestSuite) request(status, notes string) dto.ManageAllTimesheetRequest {
	return dto.ManageAllTimesheetRequest{
		TimesheetID: suite.timesheet.ID,
		Status:      status,
		UserID:      suite.ownerID,
		Notes:       notes,
	}
}

// --- GetMembers ---

func (suite *ApprovalServiceTestSuite) TestGetMembers_NoRole() {
	suite.mockRoleRepo.On("FindRoleByUserID", suite.ctx, suite.reviewerID).Return(nil, apperrors.ErrNotFound).Once()

	view, err := suite.service.GetMembers(suite.ctx, suite.reviewerID, domain.NewPagination(1, 10))

	suite.Require().NoError(err)
	suite.Equal(domain.ReviewerNone, view.Kind)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "FindProjectsByLead", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestGetMembers_TeamLeadWithoutProjects() {
	suite.mockRoleRepo.On("FindRoleByUserID", suite.ctx, suite.reviewerID).Return(&domain.Role{Name: domain.RoleNameTeamLead}, nil).Once()
	suite.mockProjectRepo.On("FindProjectsByLead", suite.ctx, suite.reviewerID).Return([]domain.Project{}, nil).Once()

	view, err := suite.service.GetMembers(suite.ctx, suite.reviewerID, domain.NewPagination(1, 10))

	suite.Require().NoError(err)
	suite.Equal(domain.ReviewerTeamLead, view.Kind)
	suite.NotNil(view.Teams)
	suite.Empty(view.Teams)
}

func (suite *ApprovalServiceTestSuite) TestGetMembers_TeamLeadKeepsProjectOrder() {
	projects := []domain.Project{
		{ID: "p1", ProjectName: "Atlas", ClientName: "Acme"},
		{ID: "p2", ProjectName: "Borealis", ClientName: "Globex"},
	}
	page := domain.NewPagination(2, 5)
	suite.mockRoleRepo.On("FindRoleByUserID", suite.ctx, suite.reviewerID).Return(&domain.Role{Name: domain.RoleNameTeamLead}, nil).Once()
	suite.mockProjectRepo.On("FindProjectsByLead", suite.ctx, suite.reviewerID).Return(projects, nil).Once()
	suite.mockTeamRepo.On("FindExpandedTeamPage", mock.Anything, "p1", 5, 5).
		Return([]domain.TeamMemberView{{ID: "u1", FullName: "ravi"}}, nil).Once()
	suite.mockTeamRepo.On("FindExpandedTeamPage", mock.Anything, "p2", 5, 5).
		Return([]domain.TeamMemberView{{ID: "u2", FullName: "meera"}, {ID: "u3", FullName: "joel"}}, nil).Once()

	view, err := suite.service.GetMembers(suite.ctx, suite.reviewerID, page)

	suite.Require().NoError(err)
	suite.Require().Len(view.Teams, 2)
	suite.Equal("Atlas", view.Teams[0].Project.ProjectName)
	suite.Len(view.Teams[0].ProjectTeam, 1)
	suite.Equal("Borealis", view.Teams[1].Project.ProjectName)
	suite.Len(view.Teams[1].ProjectTeam, 2)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestGetMembers_TeamLeadRosterError() {
	suite.mockRoleRepo.On("FindRoleByUserID", suite.ctx, suite.reviewerID).Return(&domain.Role{Name: domain.RoleNameTeamLead}, nil).Once()
	suite.mockProjectRepo.On("FindProjectsByLead", suite.ctx, suite.reviewerID).Return([]domain.Project{{ID: "p1"}}, nil).Once()
	suite.mockTeamRepo.On("FindExpandedTeamPage", mock.Anything, "p1", 10, 0).Return(nil, errors.New("db down")).Once()

	view, err := suite.service.GetMembers(suite.ctx, suite.reviewerID, domain.NewPagination(1, 10))

	suite.Error(err)
	suite.Nil(view)
}

func (suite *ApprovalServiceTestSuite) TestGetMembers_ManagerGetsTeamLeadPage() {
	for _, roleName := range []string{domain.RoleNameProjectManager, domain.RoleNameTechnicalLead, "Technichal Lead"} {
		suite.Run(roleName, func() {
			roleRepo := new(MockRoleRepository)
			userRepo := new(MockUserRepository)
			suite.repos.RoleRepo = roleRepo
			suite.repos.UserRepo = userRepo
			svc := services.NewApprovalService(suite.repos, suite.mockNotifier)

			roleRepo.On("FindRoleByUserID", suite.ctx, suite.reviewerID).Return(&domain.Role{Name: roleName}, nil).Once()
			roleRepo.On("FindRoleByName", suite.ctx, domain.RoleNameTeamLead).
				Return(&domain.Role{Name: domain.RoleNameTeamLead, UserIDs: []string{"l1", "l2", "l3"}}, nil).Once()
			userRepo.On("FindUsersByIDs", suite.ctx, []string{"l3"}).
				Return([]domain.User{{UserID: "l3", FullName: "nila das", Email: "nila@example.com"}}, nil).Once()

			view, err := svc.GetMembers(suite.ctx, suite.reviewerID, domain.NewPagination(2, 2))

			suite.Require().NoError(err)
			suite.Equal(domain.ReviewerManager, view.Kind)
			suite.Require().Len(view.TeamLeads, 1)
			suite.Equal("l3", view.TeamLeads[0].ID)
			userRepo.AssertExpectations(suite.T())
		})
	}
}

func (suite *ApprovalServiceTestSuite) TestGetMembers_ManagerPageBeyondEnd() {
	suite.mockRoleRepo.On("FindRoleByUserID", suite.ctx, suite.reviewerID).Return(&domain.Role{Name: domain.RoleNameProjectManager}, nil).Once()
	suite.mockRoleRepo.On("FindRoleByName", suite.ctx, domain.RoleNameTeamLead).
		Return(&domain.Role{UserIDs: []string{"l1"}}, nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", suite.ctx, []string{}).Return([]domain.User{}, nil).Once()

	view, err := suite.service.GetMembers(suite.ctx, suite.reviewerID, domain.NewPagination(5, 10))

	suite.Require().NoError(err)
	suite.Empty(view.TeamLeads)
}

func (suite *ApprovalServiceTestSuite) TestGetMembers_ManagerHugePage() {
	suite.mockRoleRepo.On("FindRoleByUserID", suite.ctx, suite.reviewerID).Return(&domain.Role{Name: domain.RoleNameProjectManager}, nil).Once()
	suite.mockRoleRepo.On("FindRoleByName", suite.ctx, domain.RoleNameTeamLead).
		Return(&domain.Role{UserIDs: []string{"l1", "l2"}}, nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", suite.ctx, []string{}).Return([]domain.User{}, nil).Once()

	var view *domain.QueueView
	var err error
	suite.NotPanics(func() {
		view, err = suite.service.GetMembers(suite.ctx, suite.reviewerID, domain.NewPagination(1<<60, 10))
	})

	suite.Require().NoError(err)
	suite.Empty(view.TeamLeads)
}

// --- UpdateTimesheetStatus ---

func (suite *ApprovalServiceTestSuite) TestUpdateTimesheetStatus_Success() {
	updated := suite.timesheet
	updated.Status = domain.TimesheetApproved
	suite.mockTimesheetRepo.On("UpdateTimesheetStatus", suite.ctx, suite.timesheet.ID,
		domain.TransitionSources(domain.TimesheetApproved), domain.TimesheetApproved).Return(&updated, nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.reviewerID).Return(&suite.reviewer, nil).Once()
	suite.mockNotifier.On("Notify", suite.ctx, suite.ownerID, "Timesheet has been approved by Asha Menon", domain.SeverityInfo).Return(nil).Once()

	ts, ok, err := suite.service.UpdateTimesheetStatus(suite.ctx, suite.reviewerID, suite.timesheet.ID, "approved")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(domain.TimesheetApproved, ts.Status)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestUpdateTimesheetStatus_MissingTimesheet() {
	suite.mockTimesheetRepo.On("UpdateTimesheetStatus", suite.ctx, "missing", mock.Anything, domain.TimesheetRejected).
		Return(nil, apperrors.ErrNotFound).Once()

	ts, ok, err := suite.service.UpdateTimesheetStatus(suite.ctx, suite.reviewerID, "missing", "rejected")

	suite.NoError(err)
	suite.False(ok)
	suite.Nil(ts)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestUpdateTimesheetStatus_UnknownState() {
	_, ok, err := suite.service.UpdateTimesheetStatus(suite.ctx, suite.reviewerID, suite.timesheet.ID, "archived")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.False(ok)
	suite.mockTimesheetRepo.AssertNotCalled(suite.T(), "UpdateTimesheetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestUpdateTimesheetStatus_IllegalTransition() {
	suite.mockTimesheetRepo.On("UpdateTimesheetStatus", suite.ctx, suite.timesheet.ID, mock.Anything, domain.TimesheetInProgress).
		Return(nil, apperrors.ErrInvalidTransition).Once()

	_, ok, err := suite.service.UpdateTimesheetStatus(suite.ctx, suite.reviewerID, suite.timesheet.ID, "in_progress")

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.False(ok)
}

// --- UpdateAllTimesheetStatus ---

func (suite *ApprovalServiceTestSuite) TestUpdateAllTimesheetStatus() {
	suite.mockTimesheetRepo.On("UpdateWeekStatus", suite.ctx, suite.ownerID, suite.week,
		domain.TransitionSources(domain.TimesheetRejected), domain.TimesheetRejected).Return(int64(3), nil).Once()

	n, err := suite.service.UpdateAllTimesheetStatus(suite.ctx, suite.ownerID, suite.week, domain.TimesheetRejected)

	suite.Require().NoError(err)
	suite.Equal(int64(3), n)
}

func (suite *ApprovalServiceTestSuite) TestUpdateAllTimesheetStatus_InvalidStatus() {
	_, err := suite.service.UpdateAllTimesheetStatus(suite.ctx, suite.ownerID, suite.week, domain.TimesheetStatus("done"))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ManageAllTimesheets ---

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_Validation() {
	cases := map[string]dto.ManageAllTimesheetRequest{
		"reject without notes": suite.request("rejected", ""),
		"non decision status":  suite.request("submitted", ""),
		"bad timesheet id":     {TimesheetID: "abc", Status: "approved", UserID: suite.ownerID},
		"missing user":         {TimesheetID: suite.timesheet.ID, Status: "approved"},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			result, err := suite.service.ManageAllTimesheets(suite.ctx, suite.reviewerID, req)
			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.Nil(result)
		})
	}
	suite.mockTimesheetRepo.AssertNotCalled(suite.T(), "FindTimesheetByID", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_TimesheetNotFound() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("approved", ""))

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_ApproveClearsRejection() {
	note := &domain.RejectionNote{ID: "n1", UserID: suite.ownerID, StartDate: suite.week.Start, EndDate: suite.week.End, Notes: "missing friday"}
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(note, nil).Once()
	suite.mockRejectionRepo.On("DeleteRejectionNote", suite.ctx, "n1").Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.reviewerID).Return(&suite.reviewer, nil).Once()
	suite.mockNotifier.On("Notify", suite.ctx, suite.ownerID, "Timesheet has been approved by Asha Menon", domain.SeverityInfo).Return(nil).Once()

	result, err := suite.service.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("approved", ""))

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeRejectionCleared, result.Outcome)
	suite.True(result.Notified)
	suite.Equal(suite.week, result.Week)
	suite.mockTimesheetRepo.AssertNotCalled(suite.T(), "UpdateWeekStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRejectionRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_PlainApprovalDoesNotNotify() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTimesheetRepo.On("UpdateWeekStatus", suite.ctx, suite.ownerID, suite.week,
		domain.TransitionSources(domain.TimesheetApproved), domain.TimesheetApproved).Return(int64(2), nil).Once()

	result, err := suite.service.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("approved", ""))

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeStatusUpdated, result.Outcome)
	suite.Equal(int64(2), result.Updated)
	suite.False(result.Notified)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_PlainApprovalNotifiesWhenEnabled() {
	svc := services.NewApprovalService(suite.repos, suite.mockNotifier, services.WithNotifyOnPlainApproval(true))
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTimesheetRepo.On("UpdateWeekStatus", suite.ctx, suite.ownerID, suite.week, mock.Anything, domain.TimesheetApproved).Return(int64(1), nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.reviewerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockNotifier.On("Notify", suite.ctx, suite.ownerID, "Timesheet has been approved by your reviewer", domain.SeverityInfo).Return(nil).Once()

	result, err := svc.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("approved", ""))

	suite.Require().NoError(err)
	suite.True(result.Notified)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_FirstRejectionCreatesNote() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTimesheetRepo.On("UpdateWeekStatus", suite.ctx, suite.ownerID, suite.week,
		domain.TransitionSources(domain.TimesheetRejected), domain.TimesheetRejected).Return(int64(4), nil).Once()
	suite.mockRejectionRepo.On("CreateRejectionNote", suite.ctx, mock.MatchedBy(func(n domain.RejectionNote) bool {
		return n.UserID == suite.ownerID && n.Week() == suite.week && n.Notes == "incomplete"
	})).Return(&domain.RejectionNote{ID: "n1"}, nil).Once()

	result, err := suite.service.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("rejected", "incomplete"))

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeRejectionCreated, result.Outcome)
	suite.Equal(int64(4), result.Updated)
	suite.False(result.Notified)
	suite.mockRejectionRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_RepeatedRejectionUpdatesNotes() {
	note := &domain.RejectionNote{ID: "n1", UserID: suite.ownerID, StartDate: suite.week.Start, EndDate: suite.week.End, Notes: "incomplete"}
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(note, nil).Once()
	suite.mockTimesheetRepo.On("UpdateWeekStatus", suite.ctx, suite.ownerID, suite.week, mock.Anything, domain.TimesheetRejected).Return(int64(0), nil).Once()
	suite.mockRejectionRepo.On("UpdateRejectionNotes", suite.ctx, "n1", "still missing friday").Return(nil).Once()

	result, err := suite.service.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("rejected", "still missing friday"))

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeNotesUpdated, result.Outcome)
	suite.mockRejectionRepo.AssertNotCalled(suite.T(), "CreateRejectionNote", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_DuplicateNoteFallsBackToUpdate() {
	existing := &domain.RejectionNote{ID: "n9", UserID: suite.ownerID, StartDate: suite.week.Start, EndDate: suite.week.End}
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTimesheetRepo.On("UpdateWeekStatus", suite.ctx, suite.ownerID, suite.week, mock.Anything, domain.TimesheetRejected).Return(int64(1), nil).Once()
	suite.mockRejectionRepo.On("CreateRejectionNote", suite.ctx, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(existing, nil).Once()
	suite.mockRejectionRepo.On("UpdateRejectionNotes", suite.ctx, "n9", "incomplete").Return(nil).Once()

	result, err := suite.service.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("rejected", "incomplete"))

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeNotesUpdated, result.Outcome)
	suite.mockRejectionRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_LockTimeout() {
	locker := new(MockLocker)
	svc := services.NewApprovalService(suite.repos, suite.mockNotifier, services.WithApprovalLocker(locker))
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	locker.On("Acquire", suite.ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrLockTimeout).Once()

	_, err := svc.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("approved", ""))

	suite.ErrorIs(err, apperrors.ErrLockTimeout)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRejectionRepo.AssertNotCalled(suite.T(), "FindByWeek", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_ReleasesLockOnFailure() {
	locker := new(MockLocker)
	released := false
	release := portsrepo.ReleaseFunc(func(context.Context) error {
		released = true
		return nil
	})
	svc := services.NewApprovalService(suite.repos, suite.mockNotifier, services.WithApprovalLocker(locker))
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	locker.On("Acquire", suite.ctx, mock.AnythingOfType("string")).Return(release, nil).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(nil, errors.New("db down")).Once()

	_, err := svc.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("approved", ""))

	suite.Error(err)
	suite.True(released)
}

func (suite *ApprovalServiceTestSuite) TestManageAllTimesheets_RecordsAudit() {
	suite.repos.ApprovalAuditRepo = suite.mockAuditRepo
	svc := services.NewApprovalService(suite.repos, suite.mockNotifier)
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, suite.timesheet.ID).Return(&suite.timesheet, nil).Once()
	suite.mockRejectionRepo.On("FindByWeek", suite.ctx, suite.ownerID, suite.week).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTimesheetRepo.On("UpdateWeekStatus", suite.ctx, suite.ownerID, suite.week, mock.Anything, domain.TimesheetRejected).Return(int64(1), nil).Once()
	suite.mockRejectionRepo.On("CreateRejectionNote", suite.ctx, mock.Anything).Return(&domain.RejectionNote{ID: "n1"}, nil).Once()
	suite.mockAuditRepo.On("RecordApproval", suite.ctx, mock.MatchedBy(func(e domain.ApprovalAuditEntry) bool {
		return e.ReviewerID == suite.reviewerID && e.UserID == suite.ownerID &&
			e.Decision == domain.TimesheetRejected && e.Outcome == domain.OutcomeRejectionCreated &&
			e.WeekStart.Equal(suite.week.Start) && e.Notes == "incomplete" && !e.CreatedAt.IsZero()
	})).Return(errors.New("audit store down")).Once()

	result, err := svc.ManageAllTimesheets(suite.ctx, suite.reviewerID, suite.request("rejected", "incomplete"))

	suite.Require().NoError(err, "audit failures must not fail the decision")
	suite.Equal(domain.OutcomeRejectionCreated, result.Outcome)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

// --- GetApprovalHistory ---

func (suite *ApprovalServiceTestSuite) TestGetApprovalHistory_Unavailable() {
	_, err := suite.service.GetApprovalHistory(suite.ctx, suite.ownerID, 10)

	suite.ErrorIs(err, apperrors.ErrUnavailable)
}

func (suite *ApprovalServiceTestSuite) TestGetApprovalHistory_ClampsLimit() {
	suite.repos.ApprovalAuditRepo = suite.mockAuditRepo
	svc := services.NewApprovalService(suite.repos, suite.mockNotifier)
	suite.mockAuditRepo.On("ListApprovalsForUser", suite.ctx, suite.ownerID, 20).Return([]domain.ApprovalAuditEntry{{ID: 1}}, nil).Once()
	suite.mockAuditRepo.On("ListApprovalsForUser", suite.ctx, suite.ownerID, 100).Return([]domain.ApprovalAuditEntry{}, nil).Once()

	entries, err := svc.GetApprovalHistory(suite.ctx, suite.ownerID, 0)
	suite.Require().NoError(err)
	suite.Len(entries, 1)

	_, err = svc.GetApprovalHistory(suite.ctx, suite.ownerID, 5000)
	suite.Require().NoError(err)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}

// TestManageAllTimesheets_RejectThenApproveWeek walks one week through a rejection and a later approval.
func TestManageAllTimesheets_RejectThenApproveWeek(t *testing.T) {
	ctx := context.Background()
	week := domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-07")}
	owner := bson.NewObjectID().Hex()
	reviewer := bson.NewObjectID().Hex()
	t1 := domain.Timesheet{ID: bson.NewObjectID().Hex(), UserID: owner, StartDate: week.Start, EndDate: week.End, Status: domain.TimesheetSubmitted}

	timesheets := new(MockTimesheetRepository)
	users := new(MockUserRepository)
	notifier := new(MockNotificationService)
	ledger := newMemoryLedger()
	svc := services.NewApprovalService(&portsrepo.RepositoryProvider{
		TimesheetRepo:     timesheets,
		RejectionNoteRepo: ledger,
		UserRepo:          users,
	}, notifier)

	timesheets.On("FindTimesheetByID", ctx, t1.ID).Return(&t1, nil)
	timesheets.On("UpdateWeekStatus", ctx, owner, week, mock.Anything, domain.TimesheetRejected).Return(int64(1), nil).Once()
	users.On("FindUserByID", ctx, reviewer).Return(&domain.User{UserID: reviewer, FullName: "KIRAN RAO"}, nil)
	notifier.On("Notify", ctx, owner, "Timesheet has been approved by Kiran Rao", domain.SeverityInfo).Return(nil).Once()

	rejected, err := svc.ManageAllTimesheets(ctx, reviewer, dto.ManageAllTimesheetRequest{
		TimesheetID: t1.ID, Status: "rejected", UserID: owner, Notes: "incomplete",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejectionCreated, rejected.Outcome)
	note, err := ledger.FindByWeek(ctx, owner, week)
	require.NoError(t, err)
	assert.Equal(t, "incomplete", note.Notes)

	approved, err := svc.ManageAllTimesheets(ctx, reviewer, dto.ManageAllTimesheetRequest{
		TimesheetID: t1.ID, Status: "approved", UserID: owner,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejectionCleared, approved.Outcome)
	assert.True(t, approved.Notified)
	assert.Zero(t, ledger.len())

	timesheets.AssertNumberOfCalls(t, "UpdateWeekStatus", 1)
	notifier.AssertExpectations(t)
}

// TestManageAllTimesheets_ConcurrentRejectionsKeepOneNote races rejections of the same week.
func TestManageAllTimesheets_ConcurrentRejectionsKeepOneNote(t *testing.T) {
	ctx := context.Background()
	week := domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-07")}
	owner := bson.NewObjectID().Hex()
	t1 := domain.Timesheet{ID: bson.NewObjectID().Hex(), UserID: owner, StartDate: week.Start, EndDate: week.End, Status: domain.TimesheetSubmitted}

	timesheets := new(MockTimesheetRepository)
	ledger := newMemoryLedger()
	svc := services.NewApprovalService(&portsrepo.RepositoryProvider{
		TimesheetRepo:     timesheets,
		RejectionNoteRepo: ledger,
	}, nil)
	timesheets.On("FindTimesheetByID", ctx, t1.ID).Return(&t1, nil)
	timesheets.On("UpdateWeekStatus", ctx, owner, week, mock.Anything, domain.TimesheetRejected).Return(int64(1), nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ManageAllTimesheets(ctx, "reviewer", dto.ManageAllTimesheetRequest{
				TimesheetID: t1.ID, Status: "rejected", UserID: owner, Notes: "incomplete",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, ledger.len())
}
