package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/metrics"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskNotificationCreate persists an in-app notification.
	TaskNotificationCreate = "notification:create"
	// TaskPastDueReminder reminds users about timesheets left open after their week.
	TaskPastDueReminder = "timesheet:past_due_reminder"
)

// NotificationPayload describes a notification to store for a user.
type NotificationPayload struct {
	UserID    string          `json:"user_id"`
	Message   string          `json:"message"`
	Severity  domain.Severity `json:"severity"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewNotificationTask constructs a notification task.
func NewNotificationTask(n domain.Notification) (*asynq.Task, error) {
	data, err := json.Marshal(NotificationPayload{
		UserID:    n.UserID,
		Message:   n.Message,
		Severity:  n.Severity,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationCreate, data, asynq.MaxRetry(5)), nil
}

// NewPastDueReminderTask constructs the reminder sweep task. It carries no payload.
func NewPastDueReminderTask() *asynq.Task {
	return asynq.NewTask(TaskPastDueReminder, nil, asynq.MaxRetry(1))
}

// NotificationPersister stores notifications.
type NotificationPersister interface {
	Persist(ctx context.Context, n domain.Notification) (*domain.Notification, error)
}

// PastDueReminder sends reminders for past due timesheets.
type PastDueReminder interface {
	RemindPastDue(ctx context.Context) (int, error)
}

// NotificationJob handles TaskNotificationCreate.
type NotificationJob struct {
	Persister NotificationPersister
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

// NewNotificationJob wires dependencies for the notification handler.
func NewNotificationJob(persister NotificationPersister, logger *slog.Logger, m *metrics.Metrics) *NotificationJob {
	return &NotificationJob{Persister: persister, Logger: logger, Metrics: m}
}

// Handle processes notification tasks.
func (j *NotificationJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Persister == nil {
		return errors.New("notification job: handler not configured")
	}
	var payload NotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode notification payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.UserID == "" || payload.Message == "" {
		return fmt.Errorf("notification payload missing user or message: %w", asynq.SkipRetry)
	}

	tracker := j.Metrics.Track(TaskNotificationCreate)
	_, err := j.Persister.Persist(ctx, domain.Notification{
		UserID:    payload.UserID,
		Message:   payload.Message,
		Severity:  payload.Severity,
		CreatedAt: payload.CreatedAt,
	})
	if err != nil {
		j.Logger.Error("persist notification", slog.String("user_id", payload.UserID), slog.Any("error", err))
	}
	return tracker.End(err)
}

// PastDueJob handles TaskPastDueReminder.
type PastDueJob struct {
	Reminder PastDueReminder
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// NewPastDueJob wires dependencies for the reminder handler.
func NewPastDueJob(reminder PastDueReminder, logger *slog.Logger, m *metrics.Metrics) *PastDueJob {
	return &PastDueJob{Reminder: reminder, Logger: logger, Metrics: m}
}

// Handle runs one reminder sweep.
func (j *PastDueJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Reminder == nil {
		return errors.New("past due job: handler not configured")
	}
	tracker := j.Metrics.Track(TaskPastDueReminder)
	sent, err := j.Reminder.RemindPastDue(ctx)
	if err != nil {
		j.Logger.Error("past due reminder sweep", slog.Any("error", err))
		return tracker.End(err)
	}
	j.Logger.Info("past due reminders sent", slog.Int("count", sent))
	return tracker.End(nil)
}
