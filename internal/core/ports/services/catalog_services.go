package services

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
)

// CategorySvcFacade manages task categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, req dto.UpdateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// SubscriptionSvcFacade manages subscriptions.
type SubscriptionSvcFacade interface {
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*domain.Subscription, error)
	ListSubscriptions(ctx context.Context, page domain.Pagination) ([]domain.Subscription, domain.PageInfo, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
}

// NotificationSvcFacade creates and lists in-app notifications.
type NotificationSvcFacade interface {
	// Notify queues a notification for the user, or stores it directly when no dispatcher is set.
	Notify(ctx context.Context, userID, message string, severity domain.Severity) error
	// Persist stores a notification. The background worker calls it for queued notifications.
	Persist(ctx context.Context, n domain.Notification) (*domain.Notification, error)
	ListNotifications(ctx context.Context, userID string, page domain.Pagination) ([]domain.Notification, error)
	// RemindPastDue notifies every user who has past due timesheets and returns how many were notified.
	RemindPastDue(ctx context.Context) (int, error)
}
