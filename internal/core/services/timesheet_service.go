package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/shopspring/decimal"
)

type timesheetService struct {
	BaseService
	timesheetRepo portsrepo.TimesheetRepositoryFacade
	projectRepo   portsrepo.ProjectReader
	categoryRepo  portsrepo.CategoryRepositoryFacade
	reportCache   portssvc.ReportCache
}

// TimesheetOption configures the timesheet service.
type TimesheetOption func(*timesheetService)

// WithTimesheetReportCache invalidates cached reports when hours or statuses change.
func WithTimesheetReportCache(c portssvc.ReportCache) TimesheetOption {
	return func(s *timesheetService) {
		s.reportCache = c
	}
}

// WithTimesheetClock replaces the clock, for tests.
func WithTimesheetClock(now func() time.Time) TimesheetOption {
	return func(s *timesheetService) {
		s.SetClock(now)
	}
}

// NewTimesheetService creates a new timesheet service.
func NewTimesheetService(repos *portsrepo.RepositoryProvider, options ...TimesheetOption) portssvc.TimesheetSvcFacade {
	svc := &timesheetService{
		timesheetRepo: repos.TimesheetRepo,
		projectRepo:   repos.ProjectRepo,
		categoryRepo:  repos.CategoryRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TimesheetSvcFacade = (*timesheetService)(nil)

func (s *timesheetService) GetWeeklyTimesheets(ctx context.Context, userID string, week domain.DateRange) ([]domain.Timesheet, error) {
	if !week.Valid() {
		return nil, apperrors.NewValidationError("endDate", "startDate must not be after endDate")
	}
	timesheets, err := s.timesheetRepo.FindWeeklyTimesheets(ctx, userID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly timesheets: %w", err)
	}
	return timesheets, nil
}

func (s *timesheetService) GetCurrentDayTimesheets(ctx context.Context, userID string) ([]domain.Timesheet, error) {
	today := domain.NormalizeToUTCDate(s.Now())
	timesheets, err := s.timesheetRepo.FindTimesheetsWithEntryBetween(ctx, userID, today, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's timesheets: %w", err)
	}
	return timesheets, nil
}

func (s *timesheetService) GetDueTimesheets(ctx context.Context, userID string, r domain.DateRange) ([]domain.Timesheet, error) {
	if r.Start.IsZero() || r.End.IsZero() {
		r = domain.WeekOf(s.Now())
	}
	timesheets, err := s.GetWeeklyTimesheets(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	due := make([]domain.Timesheet, 0, len(timesheets))
	for _, t := range timesheets {
		if t.Status != domain.TimesheetApproved {
			due = append(due, t)
		}
	}
	return due, nil
}

func (s *timesheetService) GetPastDueTimesheets(ctx context.Context, userID string) ([]domain.Timesheet, error) {
	weekStart := domain.WeekOf(s.Now()).Start
	timesheets, err := s.timesheetRepo.FindPastDue(ctx, userID, weekStart, pastDueStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list past due timesheets: %w", err)
	}
	return timesheets, nil
}

func (s *timesheetService) CreateTimesheet(ctx context.Context, userID string, req dto.CreateTimesheetRequest) (*domain.Timesheet, error) {
	entries, err := toDataSheet(req.DataSheet)
	if err != nil {
		return nil, err
	}

	if err := s.checkProjectOpen(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindCategoryByID(ctx, req.TaskCategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("task_category_id", "task category not found")
		}
		return nil, fmt.Errorf("failed to load task category: %w", err)
	}

	timesheet := domain.Timesheet{
		ProjectID:      req.ProjectID,
		UserID:         userID,
		TaskCategoryID: req.TaskCategoryID,
		TaskDetail:     req.TaskDetail,
		StartDate:      domain.NormalizeToUTCDate(req.StartDate.Time),
		EndDate:        domain.NormalizeToUTCDate(req.EndDate.Time),
		Status:         domain.TimesheetInProgress,
	}
	timesheet.UpsertEntries(entries)
	if err := timesheet.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.timesheetRepo.SaveTimesheet(ctx, timesheet)
	if err != nil {
		s.LogError(ctx, err, "Failed to save timesheet", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save timesheet: %w", err)
	}
	s.invalidateReports(ctx)
	return saved, nil
}

func (s *timesheetService) UpdateTimesheetEntries(ctx context.Context, userID, timesheetID string, req dto.UpdateTimesheetEntriesRequest) (*domain.Timesheet, error) {
	timesheet, err := s.ownedTimesheet(ctx, userID, timesheetID)
	if err != nil {
		return nil, err
	}
	if !timesheet.EditableByOwner() {
		return nil, fmt.Errorf("approved timesheets cannot be changed: %w", apperrors.ErrForbidden)
	}
	readStatus := timesheet.Status

	entries, err := toDataSheet(req.DataSheet)
	if err != nil {
		return nil, err
	}
	timesheet.UpsertEntries(entries)
	if err := timesheet.Validate(); err != nil {
		return nil, err
	}

	if req.Status != "" {
		next, err := domain.ParseTimesheetStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if next.IsReviewDecision() || !timesheet.Status.CanTransitionTo(next) {
			return nil, apperrors.ErrInvalidTransition
		}
		timesheet.Status = next
	}

	updated, err := s.timesheetRepo.UpdateTimesheetEntries(ctx, *timesheet, readStatus)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update timesheet entries", slog.String("timesheet_id", timesheetID))
		return nil, fmt.Errorf("failed to update timesheet entries: %w", err)
	}
	s.invalidateReports(ctx)
	return updated, nil
}

func (s *timesheetService) SubmitTimesheet(ctx context.Context, userID, timesheetID string) (*domain.Timesheet, error) {
	if _, err := s.ownedTimesheet(ctx, userID, timesheetID); err != nil {
		return nil, err
	}
	submitted, err := s.timesheetRepo.UpdateTimesheetStatus(ctx, timesheetID,
		domain.TransitionSources(domain.TimesheetSubmitted), domain.TimesheetSubmitted)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to submit timesheet: %w", err)
	}
	s.invalidateReports(ctx)
	return submitted, nil
}

// ownedTimesheet loads a timesheet and checks that userID owns it.
func (s *timesheetService) ownedTimesheet(ctx context.Context, userID, timesheetID string) (*domain.Timesheet, error) {
	timesheet, err := s.timesheetRepo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load timesheet: %w", err)
	}
	if timesheet.UserID != userID {
		return nil, fmt.Errorf("timesheet belongs to another user: %w", apperrors.ErrForbidden)
	}
	return timesheet, nil
}

func (s *timesheetService) checkProjectOpen(ctx context.Context, projectID string) error {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("project_id", "project not found")
		}
		return fmt.Errorf("failed to load project: %w", err)
	}
	if project.OpenForTimeEntry == domain.TimeEntryClosed {
		return apperrors.NewValidationError("project_id", "project is closed for time entry")
	}
	return nil
}

func (s *timesheetService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.Bump(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate report cache")
	}
}

// toDataSheet parses request entries; hours travel as text to keep them exact.
func toDataSheet(in []dto.DataSheetEntryRequest) ([]domain.DataSheetEntry, error) {
	out := make([]domain.DataSheetEntry, 0, len(in))
	seen := make(map[time.Time]struct{}, len(in))
	for _, e := range in {
		hours, err := decimal.NewFromString(e.Hours)
		if err != nil {
			return nil, apperrors.NewValidationError("hours", fmt.Sprintf("invalid hours %q", e.Hours))
		}
		date := domain.NormalizeToUTCDate(e.Date.Time)
		if _, dup := seen[date]; dup {
			return nil, apperrors.NewValidationError("data_sheet", fmt.Sprintf("duplicate entry for %s", date.Format(time.DateOnly)))
		}
		seen[date] = struct{}{}
		out = append(out, domain.DataSheetEntry{
			Date:      date,
			IsHoliday: e.IsHoliday,
			Hours:     hours,
		})
	}
	return out, nil
}
