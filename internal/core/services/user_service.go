package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	roleRepo portsrepo.RoleReader
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, roleRepo portsrepo.RoleReader) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &domain.UserProfile{
		ID:             user.UserID,
		Name:           user.DisplayName(),
		Email:          user.Email,
		Location:       user.Location,
		Phone:          user.Phone,
		ProfilePicPath: user.ProfilePicPath,
	}

	role, err := s.roleRepo.FindRoleByUserID(ctx, userID)
	switch {
	case err == nil:
		profile.Role = role.Name
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	if user.ReportingManagerID != "" {
		manager, err := s.userRepo.FindUserByID(ctx, user.ReportingManagerID)
		switch {
		case err == nil:
			profile.ReportingManager = manager.DisplayName()
		case errors.Is(err, apperrors.ErrNotFound):
			s.LogWarn(ctx, "Reporting manager not found", slog.String("manager_id", user.ReportingManagerID))
		default:
			return nil, fmt.Errorf("failed to resolve reporting manager: %w", err)
		}
	}
	return profile, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Rejected login attempt", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
