package dto

import "github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"

// ReportRequest selects timesheets ending in a date range with optional filters.
type ReportRequest struct {
	StartDate  Date     `json:"startDate" binding:"required"`
	EndDate    Date     `json:"endDate" binding:"required"`
	ProjectIDs []string `json:"projectIds" binding:"omitempty,dive,objectid"`
	UserIDs    []string `json:"userIds" binding:"omitempty,dive,objectid"`
}

// ToQuery converts the request into a normalized domain query.
func (r ReportRequest) ToQuery() domain.ReportQuery {
	return domain.ReportQuery{
		Range:      domain.NewDateRange(r.StartDate.Time, r.EndDate.Time),
		ProjectIDs: r.ProjectIDs,
		UserIDs:    r.UserIDs,
	}
}

// MonthlySnapshotRequest counts timesheets per status. UserID defaults to the caller.
type MonthlySnapshotRequest struct {
	UserID    string `json:"userId" binding:"omitempty,objectid"`
	StartDate Date   `json:"startDate" binding:"required"`
	EndDate   Date   `json:"endDate" binding:"required"`
}

// TimeSummaryRequest totals a project's hours per team member.
type TimeSummaryRequest struct {
	StartDate Date   `json:"startDate" binding:"required"`
	EndDate   Date   `json:"endDate" binding:"required"`
	ProjectID string `json:"projectId" binding:"required,objectid"`
}

// DueTimesheetRequest selects a user's open timesheets. Empty fields default to the caller and current week.
type DueTimesheetRequest struct {
	UserID    string `json:"userId" binding:"omitempty,objectid"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
}
