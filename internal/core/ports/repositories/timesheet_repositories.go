package repositories

import (
	"context"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// TimesheetReader defines read operations for timesheets
type TimesheetReader interface {
	// FindTimesheetByID returns apperrors.ErrNotFound when no timesheet has the id.
	FindTimesheetByID(ctx context.Context, timesheetID string) (*domain.Timesheet, error)

	// FindUserTimesheets lists every timesheet of a user, newest window first.
	FindUserTimesheets(ctx context.Context, userID string) ([]domain.Timesheet, error)

	// FindWeeklyTimesheets lists a user's timesheets whose window overlaps the range.
	FindWeeklyTimesheets(ctx context.Context, userID string, week domain.DateRange) ([]domain.Timesheet, error)

	// FindTimesheetsWithEntryBetween lists a user's timesheets having a daily entry in [from, to].
	FindTimesheetsWithEntryBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Timesheet, error)

	// FindPastDue lists timesheets in one of statuses whose window ended before the given day.
	// An empty userID matches every user.
	FindPastDue(ctx context.Context, userID string, before time.Time, statuses []domain.TimesheetStatus) ([]domain.Timesheet, error)
}

// TimesheetWriter defines write operations for timesheets
type TimesheetWriter interface {
	// SaveTimesheet inserts a new timesheet and returns it with its id set.
	SaveTimesheet(ctx context.Context, timesheet domain.Timesheet) (*domain.Timesheet, error)

	// UpdateTimesheetEntries replaces the data sheet and status of a timesheet,
	// provided its stored status is still expected. Otherwise it returns ErrConflict.
	UpdateTimesheetEntries(ctx context.Context, timesheet domain.Timesheet, expected domain.TimesheetStatus) (*domain.Timesheet, error)

	// UpdateTimesheetStatus sets the status of one timesheet, provided its current status is in from.
	// It returns apperrors.ErrNotFound when the id is unknown and apperrors.ErrInvalidTransition
	// when the timesheet exists but its status is not in from.
	UpdateTimesheetStatus(ctx context.Context, timesheetID string, from []domain.TimesheetStatus, to domain.TimesheetStatus) (*domain.Timesheet, error)

	// UpdateWeekStatus sets the status of every timesheet of userID that overlaps week and whose
	// current status is in from. It returns the number of timesheets modified.
	UpdateWeekStatus(ctx context.Context, userID string, week domain.DateRange, from []domain.TimesheetStatus, to domain.TimesheetStatus) (int64, error)
}

// TimesheetRepositoryFacade combines all timesheet repository interfaces
type TimesheetRepositoryFacade interface {
	TimesheetReader
	TimesheetWriter
}
