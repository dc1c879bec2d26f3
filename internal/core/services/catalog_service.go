package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/shopspring/decimal"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Category)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.SaveCategory(ctx, domain.Category{Name: name, TimeEntry: domain.TimeEntryMode(req.TimeEntry)})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save category", slog.String("category", name))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if req.Category != nil {
		name := strings.TrimSpace(*req.Category)
		if err := s.ensureNameFree(ctx, name, category.ID); err != nil {
			return nil, err
		}
		category.Name = name
	}
	if req.TimeEntry != nil {
		category.TimeEntry = domain.TimeEntryMode(*req.TimeEntry)
	}

	updated, err := s.categoryRepo.UpdateCategory(ctx, *category)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return updated, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.FindCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ensureNameFree compares names case-insensitively.
func (s *categoryService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.categoryRepo.FindCategoryByName(ctx, name)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check category name: %w", err)
	case existing.ID != selfID:
		return fmt.Errorf("category %q: %w", name, apperrors.ErrDuplicate)
	default:
		return nil
	}
}

type subscriptionService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	projectRepo      portsrepo.ProjectReader
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(subscriptionRepo portsrepo.SubscriptionRepositoryFacade, projectRepo portsrepo.ProjectReader) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{subscriptionRepo: subscriptionRepo, projectRepo: projectRepo}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*domain.Subscription, error) {
	cost, err := decimal.NewFromString(req.Cost)
	if err != nil || cost.IsNegative() {
		return nil, apperrors.NewValidationError("cost", "cost must be a non-negative number")
	}

	subType := domain.SubscriptionType(req.Type)
	projectID := req.ProjectID
	switch {
	case subType == domain.SubscriptionProjectSpecific && projectID == "":
		return nil, apperrors.NewValidationError("project_name", "project_name is required for project specific subscriptions")
	case subType == domain.SubscriptionCommon:
		projectID = ""
	}
	if projectID != "" {
		if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("project_name", "project not found")
			}
			return nil, fmt.Errorf("failed to load project: %w", err)
		}
	}

	name := strings.TrimSpace(req.Name)
	if _, err := s.subscriptionRepo.FindSubscriptionByName(ctx, name); err == nil {
		return nil, fmt.Errorf("subscription %q: %w", name, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check subscription name: %w", err)
	}

	sub, err := s.subscriptionRepo.SaveSubscription(ctx, domain.Subscription{
		Name:          name,
		Provider:      req.Provider,
		LicenseCount:  req.LicenseCount,
		Cost:          cost,
		BillingCycle:  domain.BillingCycle(req.BillingCycle),
		Currency:      strings.ToUpper(req.Currency),
		PaymentMethod: req.PaymentMethod,
		Status:        domain.SubscriptionStatus(req.Status),
		Description:   req.Description,
		NextDueDate:   domain.NormalizeToUTCDate(req.NextDueDate.Time),
		Type:          subType,
		ProjectID:     projectID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save subscription", slog.String("subscription", name))
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	return sub, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, page domain.Pagination) ([]domain.Subscription, domain.PageInfo, error) {
	subs, total, err := s.subscriptionRepo.FindSubscriptions(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, domain.NewPageInfo(page, total), nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	return s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
}

var (
	_ portssvc.CategorySvcFacade     = (*categoryService)(nil)
	_ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)
)
