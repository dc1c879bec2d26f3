package repositories

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// ReportRepository runs read-only aggregations over timesheets.
type ReportRepository interface {
	// UserProjectHours totals hours per user and project, joined with project, user and category names.
	UserProjectHours(ctx context.Context, q domain.ReportQuery) ([]domain.ProjectHours, error)

	// CategoryHours totals hours per user, project and task category.
	CategoryHours(ctx context.Context, q domain.ReportQuery) ([]domain.CategoryHoursRow, error)

	// StatusCounts counts a user's timesheets per status.
	StatusCounts(ctx context.Context, userID string, r domain.DateRange) ([]domain.StatusCount, error)
}
