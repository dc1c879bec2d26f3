package mapping

import (
	"fmt"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTimesheet converts a domain Timesheet to a model Timesheet.
// The id is left unset when the domain id is empty.
func ToModelTimesheet(d domain.Timesheet) (models.Timesheet, error) {
	m := models.Timesheet{
		TaskDetail:  d.TaskDetail,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	var err error
	if d.ID != "" {
		if m.ID, err = ToObjectID("id", d.ID); err != nil {
			return m, err
		}
	}
	if m.ProjectID, err = ToObjectID("project_id", d.ProjectID); err != nil {
		return m, err
	}
	if m.UserID, err = ToObjectID("user_id", d.UserID); err != nil {
		return m, err
	}
	if m.TaskCategoryID, err = ToObjectID("task_category_id", d.TaskCategoryID); err != nil {
		return m, err
	}
	m.DataSheet = ToModelDataSheet(d.DataSheet)
	return m, nil
}

// ToModelDataSheet converts daily entries, storing hours as text.
func ToModelDataSheet(entries []domain.DataSheetEntry) []models.DataSheetEntry {
	out := make([]models.DataSheetEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.DataSheetEntry{Date: e.Date, IsHoliday: e.IsHoliday, Hours: e.Hours.String()})
	}
	return out
}

// ToDomainTimesheet converts a model Timesheet to a domain Timesheet
func ToDomainTimesheet(m models.Timesheet) (domain.Timesheet, error) {
	entries := make([]domain.DataSheetEntry, 0, len(m.DataSheet))
	for _, e := range m.DataSheet {
		hours := decimal.Zero
		if e.Hours != "" {
			h, err := decimal.NewFromString(e.Hours)
			if err != nil {
				return domain.Timesheet{}, fmt.Errorf("timesheet %s has malformed hours %q: %w", m.ID.Hex(), e.Hours, err)
			}
			hours = h
		}
		entries = append(entries, domain.DataSheetEntry{
			Date:      e.Date.UTC(),
			IsHoliday: e.IsHoliday,
			Hours:     hours,
		})
	}
	return domain.Timesheet{
		ID:             m.ID.Hex(),
		ProjectID:      m.ProjectID.Hex(),
		UserID:         m.UserID.Hex(),
		TaskCategoryID: m.TaskCategoryID.Hex(),
		TaskDetail:     m.TaskDetail,
		StartDate:      m.StartDate.UTC(),
		EndDate:        m.EndDate.UTC(),
		DataSheet:      entries,
		Status:         domain.TimesheetStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		ProjectName:    m.ProjectName,
		CategoryName:   m.CategoryName,
	}, nil
}

// ToDomainTimesheetSlice converts a slice of model Timesheets to a slice of domain Timesheets
func ToDomainTimesheetSlice(ms []models.Timesheet) ([]domain.Timesheet, error) {
	ds := make([]domain.Timesheet, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainTimesheet(m)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

// ToModelRejectionNote converts a domain RejectionNote to a model RejectionNote
func ToModelRejectionNote(d domain.RejectionNote) (models.RejectionNote, error) {
	userID, err := ToObjectID("userid", d.UserID)
	if err != nil {
		return models.RejectionNote{}, err
	}
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return models.RejectionNote{}, apperrors.NewValidationError("week", "rejection note needs a week")
	}
	return models.RejectionNote{
		UserID:      userID,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainRejectionNote converts a model RejectionNote to a domain RejectionNote
func ToDomainRejectionNote(m models.RejectionNote) domain.RejectionNote {
	return domain.RejectionNote{
		ID:          m.ID.Hex(),
		UserID:      m.UserID.Hex(),
		StartDate:   m.StartDate.UTC(),
		EndDate:     m.EndDate.UTC(),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
