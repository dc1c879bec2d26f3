package services

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
)

// TimesheetReaderSvc defines read operations for a user's timesheets
type TimesheetReaderSvc interface {
	GetWeeklyTimesheets(ctx context.Context, userID string, week domain.DateRange) ([]domain.Timesheet, error)
	// GetCurrentDayTimesheets lists the caller's timesheets that have an entry for today.
	GetCurrentDayTimesheets(ctx context.Context, userID string) ([]domain.Timesheet, error)
	// GetDueTimesheets lists non-approved timesheets overlapping r.
	GetDueTimesheets(ctx context.Context, userID string, r domain.DateRange) ([]domain.Timesheet, error)
	// GetPastDueTimesheets lists open or rejected timesheets that ended before the current week.
	GetPastDueTimesheets(ctx context.Context, userID string) ([]domain.Timesheet, error)
}

// TimesheetWriterSvc defines owner operations on timesheets
type TimesheetWriterSvc interface {
	CreateTimesheet(ctx context.Context, userID string, req dto.CreateTimesheetRequest) (*domain.Timesheet, error)
	UpdateTimesheetEntries(ctx context.Context, userID, timesheetID string, req dto.UpdateTimesheetEntriesRequest) (*domain.Timesheet, error)
	SubmitTimesheet(ctx context.Context, userID, timesheetID string) (*domain.Timesheet, error)
}

// TimesheetSvcFacade combines all timesheet service interfaces
type TimesheetSvcFacade interface {
	TimesheetReaderSvc
	TimesheetWriterSvc
}
