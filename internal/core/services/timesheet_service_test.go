package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TimesheetServiceTestSuite struct {
	suite.Suite
	mockTimesheetRepo *MockTimesheetRepository
	mockProjectRepo   *MockProjectRepository
	mockCategoryRepo  *MockCategoryRepository
	service           portssvc.TimesheetSvcFacade

	ctx    context.Context
	userID string
	now    time.Time
}

func (suite *TimesheetServiceTestSuite) SetupTest() {
	suite.mockTimesheetRepo = new(MockTimesheetRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	// Wednesday
	suite.now = time.Date(2024, 12, 4, 15, 30, 0, 0, time.UTC)
	suite.service = services.NewTimesheetService(&portsrepo.RepositoryProvider{
		TimesheetRepo: suite.mockTimesheetRepo,
		ProjectRepo:   suite.mockProjectRepo,
		CategoryRepo:  suite.mockCategoryRepo,
	}, services.WithTimesheetClock(func() time.Time { return suite.now }))
	suite.ctx = context.Background()
	suite.userID = "u1"
}

func (suite *TimesheetServiceTestSuite) createRequest() dto.CreateTimesheetRequest {
	return dto.CreateTimesheetRequest{
		ProjectID:      "p1",
		TaskCategoryID: "c1",
		TaskDetail:     "API work",
		StartDate:      dto.NewDate(day("2024-12-01")),
		EndDate:        dto.NewDate(day("2024-12-07")),
		DataSheet: []dto.DataSheetEntryRequest{
			{Date: dto.NewDate(day("2024-12-03")), Hours: "4.5"},
			{Date: dto.NewDate(day("2024-12-02")), Hours: "8"},
		},
	}
}

func (suite *TimesheetServiceTestSuite) TestCreateTimesheet_Success() {
	suite.mockProjectRepo.On("FindProjectByID", suite.ctx, "p1").Return(&domain.Project{ID: "p1", OpenForTimeEntry: domain.TimeEntryOpened}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "c1").Return(&domain.Category{}, nil).Once()
	suite.mockTimesheetRepo.On("SaveTimesheet", suite.ctx, mock.MatchedBy(func(t domain.Timesheet) bool {
		return t.Status == domain.TimesheetInProgress &&
			t.UserID == suite.userID &&
			len(t.DataSheet) == 2 &&
			t.DataSheet[0].Date.Equal(day("2024-12-02")) &&
			t.TotalHours().String() == "12.5"
	})).Return(&domain.Timesheet{ID: "t1"}, nil).Once()

	saved, err := suite.service.CreateTimesheet(suite.ctx, suite.userID, suite.createRequest())

	suite.Require().NoError(err)
	suite.Equal("t1", saved.ID)
	suite.mockTimesheetRepo.AssertExpectations(suite.T())
}

func (suite *TimesheetServiceTestSuite) TestCreateTimesheet_ClosedProject() {
	suite.mockProjectRepo.On("FindProjectByID", suite.ctx, "p1").Return(&domain.Project{OpenForTimeEntry: domain.TimeEntryClosed}, nil).Once()

	_, err := suite.service.CreateTimesheet(suite.ctx, suite.userID, suite.createRequest())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTimesheetRepo.AssertNotCalled(suite.T(), "SaveTimesheet", mock.Anything, mock.Anything)
}

func (suite *TimesheetServiceTestSuite) TestCreateTimesheet_EntryOutsideWindow() {
	req := suite.createRequest()
	req.DataSheet = append(req.DataSheet, dto.DataSheetEntryRequest{Date: dto.NewDate(day("2024-12-09")), Hours: "1"})
	suite.mockProjectRepo.On("FindProjectByID", suite.ctx, "p1").Return(&domain.Project{}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", suite.ctx, "c1").Return(&domain.Category{}, nil).Once()

	_, err := suite.service.CreateTimesheet(suite.ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TimesheetServiceTestSuite) TestCreateTimesheet_BadHours() {
	req := suite.createRequest()
	req.DataSheet[0].Hours = "four"

	_, err := suite.service.CreateTimesheet(suite.ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "FindProjectByID", mock.Anything, mock.Anything)
}

func (suite *TimesheetServiceTestSuite) TestUpdateTimesheetEntries_ApprovedIsLocked() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, "t1").
		Return(&domain.Timesheet{ID: "t1", UserID: suite.userID, Status: domain.TimesheetApproved}, nil).Once()

	_, err := suite.service.UpdateTimesheetEntries(suite.ctx, suite.userID, "t1", dto.UpdateTimesheetEntriesRequest{
		DataSheet: []dto.DataSheetEntryRequest{{Date: dto.NewDate(day("2024-12-02")), Hours: "2"}},
	})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TimesheetServiceTestSuite) TestUpdateTimesheetEntries_OtherOwner() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, "t1").Return(&domain.Timesheet{ID: "t1", UserID: "someone"}, nil).Once()

	_, err := suite.service.UpdateTimesheetEntries(suite.ctx, suite.userID, "t1", dto.UpdateTimesheetEntriesRequest{})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TimesheetServiceTestSuite) TestUpdateTimesheetEntries_UpsertsAndSubmits() {
	existing := &domain.Timesheet{
		ID: "t1", UserID: suite.userID, Status: domain.TimesheetRejected,
		StartDate: day("2024-12-01"), EndDate: day("2024-12-07"),
		DataSheet: []domain.DataSheetEntry{{Date: day("2024-12-02"), Hours: hours("8")}},
	}
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, "t1").Return(existing, nil).Once()
	suite.mockTimesheetRepo.On("UpdateTimesheetEntries", suite.ctx, mock.MatchedBy(func(t domain.Timesheet) bool {
		return t.Status == domain.TimesheetSubmitted && len(t.DataSheet) == 2 && t.TotalHours().String() == "14"
	}), domain.TimesheetRejected).Return(existing, nil).Once()

	_, err := suite.service.UpdateTimesheetEntries(suite.ctx, suite.userID, "t1", dto.UpdateTimesheetEntriesRequest{
		DataSheet: []dto.DataSheetEntryRequest{
			{Date: dto.NewDate(day("2024-12-02")), Hours: "6"},
			{Date: dto.NewDate(day("2024-12-03")), Hours: "8"},
		},
		Status: "submitted",
	})

	suite.Require().NoError(err)
	suite.mockTimesheetRepo.AssertExpectations(suite.T())
}

func (suite *TimesheetServiceTestSuite) TestUpdateTimesheetEntries_OwnerCannotApprove() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, "t1").Return(&domain.Timesheet{
		ID: "t1", UserID: suite.userID, Status: domain.TimesheetSubmitted,
		StartDate: day("2024-12-01"), EndDate: day("2024-12-07"),
	}, nil).Once()

	_, err := suite.service.UpdateTimesheetEntries(suite.ctx, suite.userID, "t1", dto.UpdateTimesheetEntriesRequest{
		DataSheet: []dto.DataSheetEntryRequest{{Date: dto.NewDate(day("2024-12-02")), Hours: "1"}},
		Status:    "approved",
	})

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockTimesheetRepo.AssertNotCalled(suite.T(), "UpdateTimesheetEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TimesheetServiceTestSuite) TestUpdateTimesheetEntries_DuplicateDates() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, "t1").Return(&domain.Timesheet{
		ID: "t1", UserID: suite.userID, Status: domain.TimesheetInProgress,
		StartDate: day("2024-12-01"), EndDate: day("2024-12-07"),
	}, nil).Once()

	_, err := suite.service.UpdateTimesheetEntries(suite.ctx, suite.userID, "t1", dto.UpdateTimesheetEntriesRequest{
		DataSheet: []dto.DataSheetEntryRequest{
			{Date: dto.NewDate(day("2024-12-02")), Hours: "3"},
			{Date: dto.NewDate(day("2024-12-02").Add(9 * time.Hour)), Hours: "5"},
		},
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTimesheetRepo.AssertNotCalled(suite.T(), "UpdateTimesheetEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TimesheetServiceTestSuite) TestUpdateTimesheetEntries_ApprovedMeanwhile() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, "t1").Return(&domain.Timesheet{
		ID: "t1", UserID: suite.userID, Status: domain.TimesheetSubmitted,
		StartDate: day("2024-12-01"), EndDate: day("2024-12-07"),
	}, nil).Once()
	suite.mockTimesheetRepo.On("UpdateTimesheetEntries", suite.ctx, mock.Anything, domain.TimesheetSubmitted).
		Return(nil, fmt.Errorf("timesheet t1 is no longer submitted: %w", apperrors.ErrConflict)).Once()

	_, err := suite.service.UpdateTimesheetEntries(suite.ctx, suite.userID, "t1", dto.UpdateTimesheetEntriesRequest{
		DataSheet: []dto.DataSheetEntryRequest{{Date: dto.NewDate(day("2024-12-02")), Hours: "3"}},
	})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTimesheetRepo.AssertExpectations(suite.T())
}

func (suite *TimesheetServiceTestSuite) TestSubmitTimesheet() {
	suite.mockTimesheetRepo.On("FindTimesheetByID", suite.ctx, "t1").Return(&domain.Timesheet{ID: "t1", UserID: suite.userID}, nil).Once()
	suite.mockTimesheetRepo.On("UpdateTimesheetStatus", suite.ctx, "t1",
		domain.TransitionSources(domain.TimesheetSubmitted), domain.TimesheetSubmitted).
		Return(&domain.Timesheet{ID: "t1", Status: domain.TimesheetSubmitted}, nil).Once()

	ts, err := suite.service.SubmitTimesheet(suite.ctx, suite.userID, "t1")

	suite.Require().NoError(err)
	suite.Equal(domain.TimesheetSubmitted, ts.Status)
}

func (suite *TimesheetServiceTestSuite) TestGetDueTimesheets_DefaultsToCurrentWeek() {
	week := domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-07")}
	suite.mockTimesheetRepo.On("FindWeeklyTimesheets", suite.ctx, suite.userID, week).Return([]domain.Timesheet{
		{ID: "a", Status: domain.TimesheetApproved},
		{ID: "b", Status: domain.TimesheetInProgress},
		{ID: "c", Status: domain.TimesheetRejected},
	}, nil).Once()

	due, err := suite.service.GetDueTimesheets(suite.ctx, suite.userID, domain.DateRange{})

	suite.Require().NoError(err)
	suite.Len(due, 2)
	suite.Equal("b", due[0].ID)
}

func (suite *TimesheetServiceTestSuite) TestGetPastDueTimesheets_UsesWeekStart() {
	suite.mockTimesheetRepo.On("FindPastDue", suite.ctx, suite.userID, day("2024-12-01"),
		[]domain.TimesheetStatus{domain.TimesheetInProgress, domain.TimesheetRejected}).Return([]domain.Timesheet{}, nil).Once()

	_, err := suite.service.GetPastDueTimesheets(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.mockTimesheetRepo.AssertExpectations(suite.T())
}

func (suite *TimesheetServiceTestSuite) TestGetWeeklyTimesheets_InvertedRange() {
	_, err := suite.service.GetWeeklyTimesheets(suite.ctx, suite.userID, domain.DateRange{Start: day("2024-12-07"), End: day("2024-12-01")})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTimesheetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimesheetServiceTestSuite))
}
