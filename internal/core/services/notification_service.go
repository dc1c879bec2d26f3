package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
)

// pastDueStatuses are the statuses a timesheet is still open in once its week is over.
var pastDueStatuses = []domain.TimesheetStatus{domain.TimesheetInProgress, domain.TimesheetRejected}

type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	timesheetRepo    portsrepo.TimesheetReader
	dispatcher       portssvc.NotificationDispatcher
}

// NotificationOption configures the notification service.
type NotificationOption func(*notificationService)

// WithNotificationDispatcher queues notifications for the background worker instead of storing them inline.
func WithNotificationDispatcher(d portssvc.NotificationDispatcher) NotificationOption {
	return func(s *notificationService) {
		s.dispatcher = d
	}
}

// WithNotificationClock replaces the clock, for tests.
func WithNotificationClock(now func() time.Time) NotificationOption {
	return func(s *notificationService) {
		s.SetClock(now)
	}
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, timesheetRepo portsrepo.TimesheetReader, options ...NotificationOption) portssvc.NotificationSvcFacade {
	svc := &notificationService{notificationRepo: notificationRepo, timesheetRepo: timesheetRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) Notify(ctx context.Context, userID, message string, severity domain.Severity) error {
	n := domain.Notification{
		UserID:    userID,
		Message:   message,
		Severity:  severity,
		CreatedAt: s.Now(),
	}

	if s.dispatcher != nil {
		err := s.dispatcher.DispatchNotification(ctx, n)
		if err == nil {
			return nil
		}
		s.LogError(ctx, err, "Failed to queue notification, storing inline", slog.String("user_id", userID))
	}

	_, err := s.Persist(ctx, n)
	return err
}

func (s *notificationService) Persist(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	if n.UserID == "" || n.Message == "" {
		return nil, apperrors.NewValidationError("user_id", "notification needs a user and a message")
	}
	if n.Severity == "" {
		n.Severity = domain.SeverityInfo
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.Now()
	}

	saved, err := s.notificationRepo.SaveNotification(ctx, n)
	if err != nil {
		s.LogError(ctx, err, "Failed to save notification", slog.String("user_id", n.UserID))
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}
	return saved, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, page domain.Pagination) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.FindUserNotifications(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) RemindPastDue(ctx context.Context) (int, error) {
	weekStart := domain.WeekOf(s.Now()).Start
	timesheets, err := s.timesheetRepo.FindPastDue(ctx, "", weekStart, pastDueStatuses)
	if err != nil {
		return 0, fmt.Errorf("failed to list past due timesheets: %w", err)
	}

	perUser := make(map[string]int)
	for _, t := range timesheets {
		perUser[t.UserID]++
	}
	users := make([]string, 0, len(perUser))
	for userID := range perUser {
		users = append(users, userID)
	}
	sort.Strings(users)

	notified := 0
	for _, userID := range users {
		message := fmt.Sprintf("You have %d past due timesheet(s) to complete", perUser[userID])
		if err := s.Notify(ctx, userID, message, domain.SeverityWarning); err != nil {
			s.LogError(ctx, err, "Failed to send past due reminder", slog.String("user_id", userID))
			continue
		}
		notified++
	}
	s.LogInfo(ctx, "Past due reminders sent", slog.Int("users", notified), slog.Int("timesheets", len(timesheets)))
	return notified, nil
}
