package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
)

type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	userRepo    portsrepo.UserReader
	files       portssvc.FileStore
}

// NewProjectService creates a new project service. files stores project logos.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, userRepo portsrepo.UserReader, files portssvc.FileStore) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, userRepo: userRepo, files: files}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, form dto.ProjectForm, logo *dto.FileUpload) (*domain.Project, error) {
	project, err := s.fromForm(ctx, form)
	if err != nil {
		return nil, err
	}

	if project.ProjectLogo, err = s.saveLogo(ctx, logo); err != nil {
		return nil, err
	}

	saved, err := s.projectRepo.SaveProject(ctx, *project)
	if err != nil {
		s.discardLogo(ctx, project.ProjectLogo)
		s.LogError(ctx, err, "Failed to save project", slog.String("project", project.ProjectName))
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	return saved, nil
}

func (s *projectService) ListProjects(ctx context.Context, req dto.ListProjectsRequest) (*dto.ListProjectsResponse, error) {
	page := domain.NewPagination(req.Page, req.Limit)
	projects, total, err := s.projectRepo.FindProjects(ctx, req.Filter(), page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return &dto.ListProjectsResponse{Projects: projects, Pagination: domain.NewPageInfo(page, total)}, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, form dto.ProjectForm, logo *dto.FileUpload) (*domain.Project, error) {
	existing, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project, err := s.fromForm(ctx, form)
	if err != nil {
		return nil, err
	}
	project.ID = existing.ID
	project.CreatedAt = existing.CreatedAt
	project.ProjectLogo = existing.ProjectLogo

	newLogo, err := s.saveLogo(ctx, logo)
	if err != nil {
		return nil, err
	}
	if newLogo != "" {
		project.ProjectLogo = newLogo
	}

	updated, err := s.projectRepo.UpdateProject(ctx, *project)
	if err != nil {
		s.discardLogo(ctx, newLogo)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if newLogo != "" {
		s.discardLogo(ctx, existing.ProjectLogo)
	}
	return updated, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string) error {
	existing, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	s.discardLogo(ctx, existing.ProjectLogo)
	return nil
}

// fromForm validates the form beyond its binding tags and builds the project.
func (s *projectService) fromForm(ctx context.Context, form dto.ProjectForm) (*domain.Project, error) {
	if _, err := s.userRepo.FindUserByID(ctx, form.ProjectLead); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("projectLead", "project lead not found")
		}
		return nil, fmt.Errorf("failed to load project lead: %w", err)
	}

	project := &domain.Project{
		ClientName:       strings.TrimSpace(form.ClientName),
		ProjectName:      strings.TrimSpace(form.ProjectName),
		Description:      form.Description,
		PlannedStartDate: optionalDate(form.PlannedStartDate),
		PlannedEndDate:   optionalDate(form.PlannedEndDate),
		ActualStartDate:  optionalDate(form.ActualStartDate),
		ActualEndDate:    optionalDate(form.ActualEndDate),
		ProjectLeadID:    form.ProjectLead,
		BillingModel:     form.BillingModel,
		OpenForTimeEntry: domain.TimeEntryOpened,
		Status:           domain.ProjectStatus(form.Status),
	}
	if form.OpenForTimeEntry != "" {
		project.OpenForTimeEntry = domain.TimeEntryState(form.OpenForTimeEntry)
	}

	if endsBeforeStart(project.PlannedStartDate, project.PlannedEndDate) {
		return nil, apperrors.NewValidationError("plannedEndDate", "plannedEndDate must not be before plannedStartDate")
	}
	if endsBeforeStart(project.ActualStartDate, project.ActualEndDate) {
		return nil, apperrors.NewValidationError("actualEndDate", "actualEndDate must not be before actualStartDate")
	}
	return project, nil
}

func (s *projectService) saveLogo(ctx context.Context, logo *dto.FileUpload) (string, error) {
	if logo == nil {
		return "", nil
	}
	if s.files == nil {
		return "", fmt.Errorf("logo uploads: %w", apperrors.ErrUnavailable)
	}
	path, err := s.files.Save(ctx, logo.Filename, logo.Body)
	if err != nil {
		s.LogError(ctx, err, "Failed to store project logo", slog.String("filename", logo.Filename))
		return "", fmt.Errorf("failed to store project logo: %w", err)
	}
	return path, nil
}

func (s *projectService) discardLogo(ctx context.Context, path string) {
	if path == "" || s.files == nil {
		return
	}
	if err := s.files.Delete(ctx, path); err != nil {
		s.LogError(ctx, err, "Failed to delete project logo", slog.String("path", path))
	}
}

func optionalDate(d dto.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := domain.NormalizeToUTCDate(d.Time)
	return &t
}

func endsBeforeStart(start, end *time.Time) bool {
	return start != nil && end != nil && end.Before(*start)
}

type projectTeamService struct {
	BaseService
	teamRepo    portsrepo.ProjectTeamRepositoryFacade
	projectRepo portsrepo.ProjectReader
	userRepo    portsrepo.UserReader
}

// NewProjectTeamService creates a new project team service.
func NewProjectTeamService(teamRepo portsrepo.ProjectTeamRepositoryFacade, projectRepo portsrepo.ProjectReader, userRepo portsrepo.UserReader) portssvc.ProjectTeamSvcFacade {
	return &projectTeamService{teamRepo: teamRepo, projectRepo: projectRepo, userRepo: userRepo}
}

var _ portssvc.ProjectTeamSvcFacade = (*projectTeamService)(nil)

func (s *projectTeamService) CreateProjectTeam(ctx context.Context, req dto.CreateProjectTeamRequest) (*domain.ProjectTeam, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, req.Project); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("project", "project not found")
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if _, err := s.teamRepo.FindProjectTeamByProjectID(ctx, req.Project); err == nil {
		return nil, fmt.Errorf("team for project %s: %w", req.Project, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing team: %w", err)
	}

	userIDs := make([]string, 0, len(req.TeamMembers))
	members := make([]domain.TeamMember, 0, len(req.TeamMembers))
	for _, m := range req.TeamMembers {
		dates := make([]domain.MemberDates, 0, len(m.Dates))
		for _, d := range m.Dates {
			period := domain.MemberDates{StartDate: domain.NormalizeToUTCDate(d.StartDate.Time)}
			if d.EndDate != nil && !d.EndDate.IsZero() {
				end := domain.NormalizeToUTCDate(d.EndDate.Time)
				if end.Before(period.StartDate) {
					return nil, apperrors.NewValidationError("end_date", "end_date must not be before start_date")
				}
				period.EndDate = &end
			}
			dates = append(dates, period)
		}
		userIDs = append(userIDs, m.UserID)
		members = append(members, domain.TeamMember{UserID: m.UserID, Dates: dates})
	}

	users, err := s.userRepo.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	if len(users) != len(uniqueStrings(userIDs)) {
		return nil, apperrors.NewValidationError("team_members", "every team member must be an existing user")
	}

	status := req.Status
	if status == "" {
		status = "active"
	}
	team, err := s.teamRepo.SaveProjectTeam(ctx, domain.ProjectTeam{ProjectID: req.Project, TeamMembers: members, Status: status})
	if err != nil {
		s.LogError(ctx, err, "Failed to save project team", slog.String("project_id", req.Project))
		return nil, fmt.Errorf("failed to save project team: %w", err)
	}
	return team, nil
}

func (s *projectTeamService) ListProjectTeams(ctx context.Context, page domain.Pagination) ([]domain.ProjectTeam, domain.PageInfo, error) {
	teams, total, err := s.teamRepo.FindProjectTeams(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("failed to list project teams: %w", err)
	}
	return teams, domain.NewPageInfo(page, total), nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

const (
	DropdownProjects = "projects"
	DropdownLeads    = "leads"
)

type statusReportService struct {
	BaseService
	reportRepo  portsrepo.ProjectStatusReportRepositoryFacade
	projectRepo portsrepo.ProjectReader
	userRepo    portsrepo.UserReader
}

// NewStatusReportService creates a new project status report service.
func NewStatusReportService(reportRepo portsrepo.ProjectStatusReportRepositoryFacade, projectRepo portsrepo.ProjectReader, userRepo portsrepo.UserReader) portssvc.StatusReportSvcFacade {
	return &statusReportService{reportRepo: reportRepo, projectRepo: projectRepo, userRepo: userRepo}
}

var _ portssvc.StatusReportSvcFacade = (*statusReportService)(nil)

func (s *statusReportService) CreateStatusReport(ctx context.Context, req dto.StatusReportRequest) (*domain.ProjectStatusReport, error) {
	report, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	saved, err := s.reportRepo.SaveStatusReport(ctx, *report)
	if err != nil {
		s.LogError(ctx, err, "Failed to save status report", slog.String("project_id", req.ProjectID))
		return nil, fmt.Errorf("failed to save status report: %w", err)
	}
	return saved, nil
}

func (s *statusReportService) ListStatusReports(ctx context.Context, page domain.Pagination) (*dto.ListStatusReportsResponse, error) {
	reports, total, err := s.reportRepo.FindStatusReports(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list status reports: %w", err)
	}
	return &dto.ListStatusReportsResponse{Reports: reports, Pagination: domain.NewPageInfo(page, total)}, nil
}

func (s *statusReportService) GetStatusReport(ctx context.Context, reportID string) (*domain.ProjectStatusReport, error) {
	return s.reportRepo.FindStatusReportByID(ctx, reportID)
}

func (s *statusReportService) UpdateStatusReport(ctx context.Context, reportID string, req dto.StatusReportRequest) (*domain.ProjectStatusReport, error) {
	existing, err := s.reportRepo.FindStatusReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	report, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	report.ID = existing.ID
	report.CreatedAt = existing.CreatedAt

	updated, err := s.reportRepo.UpdateStatusReport(ctx, *report)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update status report: %w", err)
	}
	return updated, nil
}

func (s *statusReportService) Dropdown(ctx context.Context, kind string) ([]domain.DropdownItem, error) {
	switch kind {
	case DropdownProjects:
		items, err := s.projectRepo.FindProjectNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		return items, nil
	case DropdownLeads:
		users, err := s.userRepo.FindUsers(ctx, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		items := make([]domain.DropdownItem, 0, len(users))
		for _, u := range users {
			items = append(items, domain.DropdownItem{ID: u.UserID, Name: u.FullName})
		}
		return items, nil
	default:
		return nil, apperrors.NewValidationError("type", "type must be one of [projects leads]")
	}
}

func (s *statusReportService) fromRequest(ctx context.Context, req dto.StatusReportRequest) (*domain.ProjectStatusReport, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("projectId", "project not found")
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.ProjectLeadID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("projectLeadId", "project lead not found")
		}
		return nil, fmt.Errorf("failed to load project lead: %w", err)
	}
	return &domain.ProjectStatusReport{
		ProjectID:       req.ProjectID,
		ProjectLeadID:   req.ProjectLeadID,
		ReportingPeriod: domain.NormalizeToUTCDate(req.ReportingPeriod.Time),
		Progress:        req.Progress,
		OverallStatus:   req.OverallStatus,
		Accomplishments: req.Accomplishments,
		Goals:           req.Goals,
		Blockers:        req.Blockers,
		Comments:        req.Comments,
	}, nil
}
