package repositories

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// ProjectReader defines read operations for projects
type ProjectReader interface {
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjectsByLead lists projects led by the user.
	FindProjectsByLead(ctx context.Context, leadUserID string) ([]domain.Project, error)

	// FindProjects lists projects matching filter, newest first, with the total match count.
	FindProjects(ctx context.Context, filter domain.ProjectFilter, limit, offset int) ([]domain.Project, int64, error)

	// FindProjectNames returns id and name pairs sorted by name.
	FindProjectNames(ctx context.Context) ([]domain.DropdownItem, error)
}

// ProjectWriter defines write operations for projects
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) (*domain.Project, error)
	UpdateProject(ctx context.Context, project domain.Project) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectRepositoryFacade combines all project repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}

// ProjectTeamRepositoryFacade manages project rosters.
type ProjectTeamRepositoryFacade interface {
	SaveProjectTeam(ctx context.Context, team domain.ProjectTeam) (*domain.ProjectTeam, error)

	FindProjectTeamByProjectID(ctx context.Context, projectID string) (*domain.ProjectTeam, error)

	// FindExpandedTeamPage returns one page of a project's members joined with their user records.
	FindExpandedTeamPage(ctx context.Context, projectID string, limit, offset int) ([]domain.TeamMemberView, error)

	FindProjectTeams(ctx context.Context, limit, offset int) ([]domain.ProjectTeam, int64, error)
}

// ProjectStatusReportRepositoryFacade manages project status reports.
type ProjectStatusReportRepositoryFacade interface {
	SaveStatusReport(ctx context.Context, report domain.ProjectStatusReport) (*domain.ProjectStatusReport, error)
	FindStatusReportByID(ctx context.Context, reportID string) (*domain.ProjectStatusReport, error)

	// FindStatusReports lists reports newest first with the total count.
	FindStatusReports(ctx context.Context, limit, offset int) ([]domain.ProjectStatusReport, int64, error)

	UpdateStatusReport(ctx context.Context, report domain.ProjectStatusReport) (*domain.ProjectStatusReport, error)
}
