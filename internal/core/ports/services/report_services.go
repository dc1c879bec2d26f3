package services

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// ReportSvcFacade builds the admin reports over timesheet hours.
type ReportSvcFacade interface {
	ProjectSummary(ctx context.Context, q domain.ReportQuery) ([]domain.ProjectHours, error)
	// ProjectDetail is ProjectSummary with a per category breakdown.
	ProjectDetail(ctx context.Context, q domain.ReportQuery) ([]domain.ProjectHours, error)
	EmployeeSummary(ctx context.Context, q domain.ReportQuery) ([]domain.EmployeeReport, error)
	// EmployeeDetail is EmployeeSummary with a per category breakdown for each project.
	EmployeeDetail(ctx context.Context, q domain.ReportQuery) ([]domain.EmployeeReport, error)
	MonthlySnapshot(ctx context.Context, userID string, r domain.DateRange) ([]domain.StatusCount, error)
	TimeSummary(ctx context.Context, projectID string, r domain.DateRange) ([]domain.TimeSummaryRow, error)
}
