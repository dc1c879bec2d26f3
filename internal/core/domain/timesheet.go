package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TimesheetStatus is the review state of a timesheet.
type TimesheetStatus string

const (
	TimesheetInProgress TimesheetStatus = "in_progress"
	TimesheetSubmitted  TimesheetStatus = "submitted"
	TimesheetApproved   TimesheetStatus = "approved"
	TimesheetRejected   TimesheetStatus = "rejected"
)

// timesheetTransitions lists the statuses each status may move to.
// Staying in the same status is always allowed and is not listed.
var timesheetTransitions = map[TimesheetStatus][]TimesheetStatus{
	TimesheetInProgress: {TimesheetSubmitted},
	TimesheetSubmitted:  {TimesheetApproved, TimesheetRejected},
	TimesheetRejected:   {TimesheetApproved, TimesheetSubmitted, TimesheetInProgress},
	TimesheetApproved:   {TimesheetRejected},
}

// ParseTimesheetStatus converts a raw string into a known status.
func ParseTimesheetStatus(s string) (TimesheetStatus, error) {
	status := TimesheetStatus(s)
	if !status.IsValid() {
		return "", apperrors.NewValidationError("status", fmt.Sprintf("invalid timesheet status %q", s))
	}
	return status, nil
}

// IsValid reports whether s is one of the known statuses.
func (s TimesheetStatus) IsValid() bool {
	_, ok := timesheetTransitions[s]
	return ok
}

// IsReviewDecision reports whether s is a status only a reviewer may set.
func (s TimesheetStatus) IsReviewDecision() bool {
	return s == TimesheetApproved || s == TimesheetRejected
}

// CanTransitionTo reports whether a timesheet in status s may move to next.
func (s TimesheetStatus) CanTransitionTo(next TimesheetStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range timesheetTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionSources returns every status from which target can be reached, target included.
// The result is sorted for stable query building.
func TransitionSources(target TimesheetStatus) []TimesheetStatus {
	sources := []TimesheetStatus{}
	for from := range timesheetTransitions {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

// DataSheetEntry is one day of logged work.
type DataSheetEntry struct {
	Date      time.Time       `json:"date"`
	IsHoliday bool            `json:"isHoliday"`
	Hours     decimal.Decimal `json:"hours"`
}

// Timesheet is a user's log of hours for one project and task category over a date window.
type Timesheet struct {
	ID             string           `json:"id"`
	ProjectID      string           `json:"projectId"`
	UserID         string           `json:"userId"`
	TaskCategoryID string           `json:"taskCategoryId"`
	TaskDetail     string           `json:"taskDetail"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	DataSheet      []DataSheetEntry `json:"dataSheet"`
	Status         TimesheetStatus  `json:"status"`
	AuditFields

	// Populated by read paths that join display names.
	ProjectName  string `json:"projectName,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

// Window returns the timesheet's date range.
func (t *Timesheet) Window() DateRange {
	return DateRange{Start: t.StartDate, End: t.EndDate}
}

// EditableByOwner reports whether the owner may still change entries.
func (t *Timesheet) EditableByOwner() bool {
	return t.Status != TimesheetApproved
}

// Validate checks the window and every daily entry.
func (t *Timesheet) Validate() error {
	window := t.Window()
	if !window.Valid() {
		return apperrors.NewValidationError("endDate", "startDate must not be after endDate")
	}
	seen := make(map[time.Time]struct{}, len(t.DataSheet))
	for _, e := range t.DataSheet {
		if !window.Contains(e.Date) {
			return apperrors.NewValidationError("data_sheet", fmt.Sprintf("entry date %s is outside the timesheet window", e.Date.Format(time.DateOnly)))
		}
		if e.Hours.IsNegative() {
			return apperrors.NewValidationError("data_sheet", fmt.Sprintf("hours for %s must not be negative", e.Date.Format(time.DateOnly)))
		}
		if _, dup := seen[e.Date]; dup {
			return apperrors.NewValidationError("data_sheet", fmt.Sprintf("duplicate entry for %s", e.Date.Format(time.DateOnly)))
		}
		seen[e.Date] = struct{}{}
	}
	return nil
}

// UpsertEntries merges entries into the data sheet by date.
// Existing dates are overwritten; new dates are appended and the sheet is kept in date order.
func (t *Timesheet) UpsertEntries(entries []DataSheetEntry) {
	index := make(map[time.Time]int, len(t.DataSheet))
	for i, e := range t.DataSheet {
		index[e.Date] = i
	}
	for _, e := range entries {
		e.Date = NormalizeToUTCDate(e.Date)
		if i, ok := index[e.Date]; ok {
			t.DataSheet[i] = e
			continue
		}
		index[e.Date] = len(t.DataSheet)
		t.DataSheet = append(t.DataSheet, e)
	}
	sort.SliceStable(t.DataSheet, func(i, j int) bool {
		return t.DataSheet[i].Date.Before(t.DataSheet[j].Date)
	})
}

// TotalHours sums the hours of every entry.
func (t *Timesheet) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.DataSheet {
		total = total.Add(e.Hours)
	}
	return total
}
