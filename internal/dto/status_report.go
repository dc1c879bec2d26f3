package dto

import "github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"

// StatusReportRequest creates or replaces a project status report.
type StatusReportRequest struct {
	ProjectID       string `json:"projectId" binding:"required,objectid"`
	ProjectLeadID   string `json:"projectLeadId" binding:"required,objectid"`
	ReportingPeriod Date   `json:"reportingPeriod" binding:"required"`
	Progress        int    `json:"progress" binding:"gte=0,lte=100"`
	OverallStatus   string `json:"overallStatus" binding:"required,oneof='On Track' 'At Risk' 'Off Track'"`
	Accomplishments string `json:"accomplishments" binding:"max=5000"`
	Goals           string `json:"goals" binding:"max=5000"`
	Blockers        string `json:"blockers" binding:"max=5000"`
	Comments        string `json:"comments" binding:"max=5000"`
}

// ListStatusReportsResponse is a page of status reports.
type ListStatusReportsResponse struct {
	Reports    []domain.ProjectStatusReport `json:"reports"`
	Pagination domain.PageInfo              `json:"pagination"`
}
