package repositories

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// CategoryRepositoryFacade manages task categories.
type CategoryRepositoryFacade interface {
	// SaveCategory returns apperrors.ErrDuplicate when the name exists in any letter case.
	SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	FindCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
}

// SubscriptionRepositoryFacade manages subscriptions.
type SubscriptionRepositoryFacade interface {
	// SaveSubscription returns apperrors.ErrDuplicate when the name is taken.
	SaveSubscription(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error)
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
	FindSubscriptionByName(ctx context.Context, name string) (*domain.Subscription, error)
	FindSubscriptions(ctx context.Context, limit, offset int) ([]domain.Subscription, int64, error)
}

// NotificationRepositoryFacade stores in-app notifications.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, n domain.Notification) (*domain.Notification, error)

	// FindUserNotifications lists a user's notifications, newest first.
	FindUserNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error)
}
