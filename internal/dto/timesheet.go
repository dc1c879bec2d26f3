package dto

import (
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// DataSheetEntryRequest is one day of hours in a timesheet request.
type DataSheetEntryRequest struct {
	Date      Date   `json:"date" binding:"required"`
	IsHoliday bool   `json:"isHoliday"`
	Hours     string `json:"hours" binding:"required,numeric"`
}

// CreateTimesheetRequest creates a timesheet for the calling user.
type CreateTimesheetRequest struct {
	ProjectID      string                  `json:"project_id" binding:"required,objectid"`
	TaskCategoryID string                  `json:"task_category_id" binding:"required,objectid"`
	TaskDetail     string                  `json:"task_detail" binding:"max=1000"`
	StartDate      Date                    `json:"startDate" binding:"required"`
	EndDate        Date                    `json:"endDate" binding:"required"`
	DataSheet      []DataSheetEntryRequest `json:"data_sheet" binding:"omitempty,dive"`
}

// UpdateTimesheetEntriesRequest upserts daily entries and optionally changes the owner status.
type UpdateTimesheetEntriesRequest struct {
	DataSheet []DataSheetEntryRequest `json:"data_sheet" binding:"required,min=1,dive"`
	Status    string                  `json:"status" binding:"omitempty,oneof=in_progress submitted"`
}

// WeekRequest selects a date range for the calling user.
type WeekRequest struct {
	StartDate Date `json:"startDate" binding:"required"`
	EndDate   Date `json:"endDate" binding:"required"`
}

// DataSheetEntryResponse is one day of hours in a timesheet response.
type DataSheetEntryResponse struct {
	Date      string `json:"date"`
	IsHoliday bool   `json:"isHoliday"`
	Hours     string `json:"hours"`
}

// TimesheetResponse defines data returned for a timesheet.
type TimesheetResponse struct {
	ID             string                   `json:"id"`
	ProjectID      string                   `json:"project_id"`
	ProjectName    string                   `json:"project_name,omitempty"`
	UserID         string                   `json:"user_id"`
	TaskCategoryID string                   `json:"task_category_id"`
	CategoryName   string                   `json:"category_name,omitempty"`
	TaskDetail     string                   `json:"task_detail"`
	StartDate      string                   `json:"startDate"`
	EndDate        string                   `json:"endDate"`
	DataSheet      []DataSheetEntryResponse `json:"data_sheet"`
	TotalHours     string                   `json:"total_hours"`
	Status         string                   `json:"status"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

// ToTimesheetResponse converts domain.Timesheet to DTO.
func ToTimesheetResponse(t *domain.Timesheet) TimesheetResponse {
	entries := make([]DataSheetEntryResponse, 0, len(t.DataSheet))
	for _, e := range t.DataSheet {
		entries = append(entries, DataSheetEntryResponse{
			Date:      e.Date.Format(time.DateOnly),
			IsHoliday: e.IsHoliday,
			Hours:     e.Hours.String(),
		})
	}
	return TimesheetResponse{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		ProjectName:    t.ProjectName,
		UserID:         t.UserID,
		TaskCategoryID: t.TaskCategoryID,
		CategoryName:   t.CategoryName,
		TaskDetail:     t.TaskDetail,
		StartDate:      t.StartDate.Format(time.DateOnly),
		EndDate:        t.EndDate.Format(time.DateOnly),
		DataSheet:      entries,
		TotalHours:     t.TotalHours().String(),
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTimesheetResponses converts a slice of timesheets.
func ToTimesheetResponses(ts []domain.Timesheet) []TimesheetResponse {
	out := make([]TimesheetResponse, 0, len(ts))
	for i := range ts {
		out = append(out, ToTimesheetResponse(&ts[i]))
	}
	return out
}
