package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/cache"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/metrics"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/validation"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	defaultLockWait     = 3 * time.Second
)

// approvalService implements the ApprovalSvcFacade interface
type approvalService struct {
	BaseService
	timesheetRepo   portsrepo.TimesheetRepositoryFacade
	rejectionRepo   portsrepo.RejectionNoteRepositoryFacade
	roleRepo        portsrepo.RoleReader
	userRepo        portsrepo.UserReader
	projectRepo     portsrepo.ProjectReader
	projectTeamRepo portsrepo.ProjectTeamRepositoryFacade
	notifier        portssvc.NotificationSvcFacade

	locker                portsrepo.LockManager
	auditRepo             portsrepo.ApprovalAuditRepository
	reportCache           portssvc.ReportCache
	metrics               *metrics.Metrics
	validator             *validation.Validator
	notifyOnPlainApproval bool
}

// ApprovalOption is a functional option for configuring the approval service
type ApprovalOption func(*approvalService)

// WithApprovalLocker sets the lock used to serialize decisions on a user's week.
func WithApprovalLocker(locker portsrepo.LockManager) ApprovalOption {
	return func(s *approvalService) {
		s.locker = locker
	}
}

// WithApprovalReportCache invalidates cached reports after each status change.
func WithApprovalReportCache(c portssvc.ReportCache) ApprovalOption {
	return func(s *approvalService) {
		s.reportCache = c
	}
}

// WithApprovalMetrics counts decisions by status and outcome.
func WithApprovalMetrics(m *metrics.Metrics) ApprovalOption {
	return func(s *approvalService) {
		s.metrics = m
	}
}

// WithNotifyOnPlainApproval notifies the owner when a week without a rejection note is approved.
func WithNotifyOnPlainApproval(enabled bool) ApprovalOption {
	return func(s *approvalService) {
		s.notifyOnPlainApproval = enabled
	}
}

// NewApprovalService creates the approval service. Without WithApprovalLocker an in-process lock is used.
func NewApprovalService(repos *portsrepo.RepositoryProvider, notifier portssvc.NotificationSvcFacade, options ...ApprovalOption) portssvc.ApprovalSvcFacade {
	svc := &approvalService{
		timesheetRepo:   repos.TimesheetRepo,
		rejectionRepo:   repos.RejectionNoteRepo,
		roleRepo:        repos.RoleRepo,
		userRepo:        repos.UserRepo,
		projectRepo:     repos.ProjectRepo,
		projectTeamRepo: repos.ProjectTeamRepo,
		notifier:        notifier,
		auditRepo:       repos.ApprovalAuditRepo,
		validator:       validation.New(),
	}

	for _, option := range options {
		option(svc)
	}

	if svc.locker == nil {
		svc.locker = cache.NewLocalLocker(defaultLockWait)
	}
	return svc
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

func (s *approvalService) GetMembers(ctx context.Context, callerID string, page domain.Pagination) (*domain.QueueView, error) {
	role, err := s.roleRepo.FindRoleByUserID(ctx, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.QueueView{Kind: domain.ReviewerNone}, nil
		}
		s.LogError(ctx, err, "Failed to resolve caller role", slog.String("user_id", callerID))
		return nil, fmt.Errorf("failed to resolve caller role: %w", err)
	}

	switch kind := domain.ClassifyReviewer(role.Name); kind {
	case domain.ReviewerTeamLead:
		teams, err := s.teamLeadQueue(ctx, callerID, page)
		if err != nil {
			return nil, err
		}
		return &domain.QueueView{Kind: kind, Teams: teams}, nil
	case domain.ReviewerManager:
		leads, err := s.teamLeads(ctx, page)
		if err != nil {
			return nil, err
		}
		return &domain.QueueView{Kind: kind, TeamLeads: leads}, nil
	default:
		return &domain.QueueView{Kind: domain.ReviewerNone}, nil
	}
}

// teamLeadQueue pairs a roster page with each project the caller leads.
func (s *approvalService) teamLeadQueue(ctx context.Context, leadID string, page domain.Pagination) ([]domain.ProjectTeamView, error) {
	projects, err := s.projectRepo.FindProjectsByLead(ctx, leadID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list led projects", slog.String("user_id", leadID))
		return nil, fmt.Errorf("failed to list projects led by %s: %w", leadID, err)
	}

	teams := make([]domain.ProjectTeamView, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	for i := range projects {
		g.Go(func() error {
			members, err := s.projectTeamRepo.FindExpandedTeamPage(gctx, projects[i].ID, page.Limit, page.Offset())
			if err != nil {
				return fmt.Errorf("failed to load team of project %s: %w", projects[i].ID, err)
			}
			teams[i] = domain.ProjectTeamView{ProjectTeam: members, Project: projects[i].Summary()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to assemble team lead queue", slog.String("user_id", leadID))
		return nil, err
	}
	return teams, nil
}

// teamLeads returns one page of the members of the Team Lead role.
func (s *approvalService) teamLeads(ctx context.Context, page domain.Pagination) ([]domain.TeamMemberView, error) {
	role, err := s.roleRepo.FindRoleByName(ctx, domain.RoleNameTeamLead)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.TeamMemberView{}, nil
		}
		return nil, fmt.Errorf("failed to load team lead role: %w", err)
	}

	start := min(max(page.Offset(), 0), len(role.UserIDs))
	end := start + min(max(page.Limit, 0), len(role.UserIDs)-start)
	users, err := s.userRepo.FindUsersByIDs(ctx, role.UserIDs[start:end])
	if err != nil {
		return nil, fmt.Errorf("failed to load team leads: %w", err)
	}

	leads := make([]domain.TeamMemberView, 0, len(users))
	for _, u := range users {
		leads = append(leads, domain.TeamMemberView{
			ID:             u.UserID,
			FullName:       u.FullName,
			Email:          u.Email,
			ProfilePicPath: u.ProfilePicPath,
		})
	}
	return leads, nil
}

func (s *approvalService) UpdateTimesheetStatus(ctx context.Context, reviewerID, timesheetID, state string) (*domain.Timesheet, bool, error) {
	status, err := domain.ParseTimesheetStatus(state)
	if err != nil {
		return nil, false, err
	}

	timesheet, err := s.timesheetRepo.UpdateTimesheetStatus(ctx, timesheetID, domain.TransitionSources(status), status)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, nil
		}
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			return nil, false, err
		}
		s.LogError(ctx, err, "Failed to update timesheet status", slog.String("timesheet_id", timesheetID))
		return nil, false, fmt.Errorf("failed to update timesheet status: %w", err)
	}

	s.notifyDecision(ctx, reviewerID, timesheet.UserID, status)
	s.recordDecision(ctx, reviewerID, domain.ApprovalDecision{
		TimesheetID: timesheet.ID,
		Status:      status,
		UserID:      timesheet.UserID,
	}, &domain.ApprovalResult{Outcome: domain.OutcomeSingleStatusUpdated, Week: timesheet.Window(), Updated: 1})

	return timesheet, true, nil
}

func (s *approvalService) UpdateAllTimesheetStatus(ctx context.Context, userID string, week domain.DateRange, status domain.TimesheetStatus) (int64, error) {
	if !status.IsValid() {
		return 0, apperrors.NewValidationError("status", fmt.Sprintf("invalid timesheet status %q", status))
	}
	updated, err := s.timesheetRepo.UpdateWeekStatus(ctx, userID, week, domain.TransitionSources(status), status)
	if err != nil {
		s.LogError(ctx, err, "Failed to update week status", slog.String("user_id", userID))
		return 0, fmt.Errorf("failed to update timesheets of week: %w", err)
	}
	s.invalidateReports(ctx)
	return updated, nil
}

func (s *approvalService) ManageAllTimesheets(ctx context.Context, reviewerID string, req dto.ManageAllTimesheetRequest) (*domain.ApprovalResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	decision := req.ToDecision()

	timesheet, err := s.timesheetRepo.FindTimesheetByID(ctx, decision.TimesheetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("timesheet %s: %w", decision.TimesheetID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to load timesheet", slog.String("timesheet_id", decision.TimesheetID))
		return nil, fmt.Errorf("failed to load timesheet: %w", err)
	}
	week := timesheet.Window()

	release, err := s.locker.Acquire(ctx, cache.ApprovalLockKey(decision.UserID, week))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.LogError(ctx, err, "Failed to release approval lock", slog.String("user_id", decision.UserID))
		}
	}()

	result, err := s.reconcileWeek(ctx, reviewerID, decision, week)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply approval decision",
			slog.String("user_id", decision.UserID),
			slog.String("status", string(decision.Status)))
		return nil, err
	}

	s.recordDecision(ctx, reviewerID, decision, result)
	return result, nil
}

// reconcileWeek applies a decision to the week and keeps the rejection ledger in step.
// The caller holds the week's lock.
func (s *approvalService) reconcileWeek(ctx context.Context, reviewerID string, decision domain.ApprovalDecision, week domain.DateRange) (*domain.ApprovalResult, error) {
	note, err := s.rejectionRepo.FindByWeek(ctx, decision.UserID, week)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load rejection note: %w", err)
	}
	result := &domain.ApprovalResult{Week: week}

	// Approving a rejected week only clears the note.
	if note != nil && decision.Status == domain.TimesheetApproved {
		if err := s.rejectionRepo.DeleteRejectionNote(ctx, note.ID); err != nil {
			return nil, fmt.Errorf("failed to delete rejection note: %w", err)
		}
		result.Outcome = domain.OutcomeRejectionCleared
		result.Notified = s.notifyDecision(ctx, reviewerID, decision.UserID, decision.Status)
		return result, nil
	}

	updated, err := s.timesheetRepo.UpdateWeekStatus(ctx, decision.UserID, week, domain.TransitionSources(decision.Status), decision.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update timesheets of week: %w", err)
	}
	result.Updated = updated

	if decision.Status == domain.TimesheetApproved {
		result.Outcome = domain.OutcomeStatusUpdated
		if s.notifyOnPlainApproval {
			result.Notified = s.notifyDecision(ctx, reviewerID, decision.UserID, decision.Status)
		}
		return result, nil
	}

	if note != nil {
		if err := s.rejectionRepo.UpdateRejectionNotes(ctx, note.ID, decision.Notes); err != nil {
			return nil, fmt.Errorf("failed to update rejection notes: %w", err)
		}
		result.Outcome = domain.OutcomeNotesUpdated
		return result, nil
	}

	_, err = s.rejectionRepo.CreateRejectionNote(ctx, domain.RejectionNote{
		UserID:    decision.UserID,
		StartDate: week.Start,
		EndDate:   week.End,
		Notes:     decision.Notes,
	})
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Written by a process that does not share our lock.
		existing, ferr := s.rejectionRepo.FindByWeek(ctx, decision.UserID, week)
		if ferr != nil {
			return nil, fmt.Errorf("failed to reload rejection note: %w", ferr)
		}
		if err := s.rejectionRepo.UpdateRejectionNotes(ctx, existing.ID, decision.Notes); err != nil {
			return nil, fmt.Errorf("failed to update rejection notes: %w", err)
		}
		result.Outcome = domain.OutcomeNotesUpdated
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create rejection note: %w", err)
	}
	result.Outcome = domain.OutcomeRejectionCreated
	return result, nil
}

func (s *approvalService) GetApprovalHistory(ctx context.Context, userID string, limit int) ([]domain.ApprovalAuditEntry, error) {
	if s.auditRepo == nil {
		return nil, fmt.Errorf("approval audit trail: %w", apperrors.ErrUnavailable)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	entries, err := s.auditRepo.ListApprovalsForUser(ctx, userID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approval history", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list approval history: %w", err)
	}
	return entries, nil
}

// notifyDecision tells the timesheet owner about a decision. Failures are logged, not returned.
func (s *approvalService) notifyDecision(ctx context.Context, reviewerID, ownerID string, status domain.TimesheetStatus) bool {
	if s.notifier == nil {
		return false
	}
	reviewer := "your reviewer"
	if u, err := s.userRepo.FindUserByID(ctx, reviewerID); err == nil {
		reviewer = u.DisplayName()
	} else {
		s.LogWarn(ctx, "Reviewer not found for notification", slog.String("reviewer_id", reviewerID))
	}

	message := fmt.Sprintf("Timesheet has been %s by %s", status, reviewer)
	if err := s.notifier.Notify(ctx, ownerID, message, domain.SeverityInfo); err != nil {
		s.LogError(ctx, err, "Failed to notify timesheet owner", slog.String("user_id", ownerID))
		return false
	}
	return true
}

// recordDecision runs the side effects that follow every applied decision.
func (s *approvalService) recordDecision(ctx context.Context, reviewerID string, decision domain.ApprovalDecision, result *domain.ApprovalResult) {
	s.invalidateReports(ctx)
	s.metrics.ObserveApprovalDecision(string(decision.Status), string(result.Outcome))

	if s.auditRepo == nil {
		return
	}
	entry := domain.ApprovalAuditEntry{
		ReviewerID:  reviewerID,
		UserID:      decision.UserID,
		TimesheetID: decision.TimesheetID,
		WeekStart:   result.Week.Start,
		WeekEnd:     result.Week.End,
		Decision:    decision.Status,
		Outcome:     result.Outcome,
		Notes:       decision.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.auditRepo.RecordApproval(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record approval audit entry",
			slog.String("user_id", decision.UserID),
			slog.String("outcome", string(result.Outcome)))
	}
}

func (s *approvalService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.Bump(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate report cache")
	}
}
