package services

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
)

// ProjectSvcFacade manages projects and their logos.
type ProjectSvcFacade interface {
	// CreateProject stores the project; logo may be nil.
	CreateProject(ctx context.Context, form dto.ProjectForm, logo *dto.FileUpload) (*domain.Project, error)
	ListProjects(ctx context.Context, req dto.ListProjectsRequest) (*dto.ListProjectsResponse, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	// UpdateProject replaces the project's fields. A new logo replaces and deletes the old file.
	UpdateProject(ctx context.Context, projectID string, form dto.ProjectForm, logo *dto.FileUpload) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectTeamSvcFacade manages project rosters.
type ProjectTeamSvcFacade interface {
	CreateProjectTeam(ctx context.Context, req dto.CreateProjectTeamRequest) (*domain.ProjectTeam, error)
	ListProjectTeams(ctx context.Context, page domain.Pagination) ([]domain.ProjectTeam, domain.PageInfo, error)
}

// StatusReportSvcFacade manages project status reports.
type StatusReportSvcFacade interface {
	CreateStatusReport(ctx context.Context, req dto.StatusReportRequest) (*domain.ProjectStatusReport, error)
	ListStatusReports(ctx context.Context, page domain.Pagination) (*dto.ListStatusReportsResponse, error)
	GetStatusReport(ctx context.Context, reportID string) (*domain.ProjectStatusReport, error)
	UpdateStatusReport(ctx context.Context, reportID string, req dto.StatusReportRequest) (*domain.ProjectStatusReport, error)
	// Dropdown returns selection items; kind is "projects" or "leads".
	Dropdown(ctx context.Context, kind string) ([]domain.DropdownItem, error)
}
