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
)

type roleService struct {
	BaseService
	roleRepo       portsrepo.RoleRepositoryFacade
	permissionRepo portsrepo.PermissionRepositoryFacade
	userRepo       portsrepo.UserReader
}

// NewRoleService creates a new role service.
func NewRoleService(roleRepo portsrepo.RoleRepositoryFacade, permissionRepo portsrepo.PermissionRepositoryFacade, userRepo portsrepo.UserReader) portssvc.RoleSvcFacade {
	return &roleService{roleRepo: roleRepo, permissionRepo: permissionRepo, userRepo: userRepo}
}

var _ portssvc.RoleSvcFacade = (*roleService)(nil)

func (s *roleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roleRepo.FindRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *roleService) GetRoleByUserID(ctx context.Context, userID string) (*domain.Role, error) {
	return s.roleRepo.FindRoleByUserID(ctx, userID)
}

func (s *roleService) CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*domain.Role, error) {
	name := strings.TrimSpace(req.Role)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	permissionIDs := make([]string, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		saved, err := s.permissionRepo.SavePermission(ctx, domain.Permission{Category: p.Category, Actions: p.Actions})
		if err != nil {
			s.LogError(ctx, err, "Failed to save permission", slog.String("category", p.Category))
			return nil, fmt.Errorf("failed to save permission: %w", err)
		}
		permissionIDs = append(permissionIDs, saved.ID)
	}

	status := domain.RoleActive
	if req.Status != "" {
		status = domain.RoleStatus(req.Status)
	}
	role, err := s.roleRepo.SaveRole(ctx, domain.Role{
		Name:          name,
		Department:    domain.Department(req.Department),
		PermissionIDs: permissionIDs,
		UserIDs:       []string{},
		Status:        status,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save role", slog.String("role", name))
		return nil, fmt.Errorf("failed to save role: %w", err)
	}
	s.LogInfo(ctx, "Role created", slog.String("role_id", role.ID))
	return role, nil
}

func (s *roleService) MapUsersToRole(ctx context.Context, req dto.MapRoleRequest) (*domain.Role, error) {
	if _, err := s.roleRepo.FindRoleByID(ctx, req.RoleID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindUsersByIDs(ctx, req.UserIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	found := make(map[string]bool, len(users))
	for _, u := range users {
		found[u.UserID] = true
	}
	for _, id := range req.UserIDs {
		if !found[id] {
			return nil, apperrors.NewValidationError("userIds", fmt.Sprintf("user %s not found", id))
		}
	}

	role, err := s.roleRepo.AddUsersToRole(ctx, req.RoleID, req.UserIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to map users to role", slog.String("role_id", req.RoleID))
		return nil, fmt.Errorf("failed to map users to role: %w", err)
	}
	return role, nil
}

func (s *roleService) UpdateRole(ctx context.Context, req dto.UpdateRoleRequest) (*domain.Role, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		name := strings.TrimSpace(*req.Role)
		if err := s.ensureNameFree(ctx, name, role.ID); err != nil {
			return nil, err
		}
		role.Name = name
	}
	if req.Department != nil {
		role.Department = domain.Department(*req.Department)
	}
	if req.Status != nil {
		role.Status = domain.RoleStatus(*req.Status)
	}

	var removed []string
	if req.Permissions != nil {
		role.PermissionIDs, removed, err = s.reconcilePermissions(ctx, role.PermissionIDs, req.Permissions)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.roleRepo.UpdateRole(ctx, *role)
	if err != nil {
		s.LogError(ctx, err, "Failed to update role", slog.String("role_id", role.ID))
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	if len(removed) > 0 {
		if err := s.permissionRepo.DeletePermissions(ctx, removed); err != nil {
			s.LogError(ctx, err, "Failed to delete unused permissions", slog.String("role_id", role.ID))
		}
	}
	return updated, nil
}

// reconcilePermissions updates the role's permissions in place by category, creates new categories
// and returns the resulting id list plus the ids of categories that were dropped.
func (s *roleService) reconcilePermissions(ctx context.Context, currentIDs []string, wanted []dto.PermissionRequest) ([]string, []string, error) {
	current, err := s.permissionRepo.FindPermissionsByIDs(ctx, currentIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	byCategory := make(map[string]domain.Permission, len(current))
	for _, p := range current {
		byCategory[p.Category] = p
	}

	ids := make([]string, 0, len(wanted))
	for _, w := range wanted {
		if existing, ok := byCategory[w.Category]; ok {
			if err := s.permissionRepo.UpdatePermissionActions(ctx, existing.ID, w.Actions); err != nil {
				return nil, nil, fmt.Errorf("failed to update permission %s: %w", existing.ID, err)
			}
			ids = append(ids, existing.ID)
			delete(byCategory, w.Category)
			continue
		}
		saved, err := s.permissionRepo.SavePermission(ctx, domain.Permission{Category: w.Category, Actions: w.Actions})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to save permission: %w", err)
		}
		ids = append(ids, saved.ID)
	}

	removed := make([]string, 0, len(byCategory))
	for _, p := range byCategory {
		removed = append(removed, p.ID)
	}
	return ids, removed, nil
}

func (s *roleService) DeleteRole(ctx context.Context, roleID string) error {
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return err
	}
	if err := s.roleRepo.DeleteRole(ctx, roleID); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if len(role.PermissionIDs) > 0 {
		if err := s.permissionRepo.DeletePermissions(ctx, role.PermissionIDs); err != nil {
			s.LogError(ctx, err, "Failed to delete permissions of removed role", slog.String("role_id", roleID))
		}
	}
	return nil
}

// ensureNameFree fails with ErrDuplicate when another role already uses name.
func (s *roleService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.roleRepo.FindRoleByName(ctx, name)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check role name: %w", err)
	case existing.ID != selfID:
		return fmt.Errorf("role %q: %w", name, apperrors.ErrDuplicate)
	default:
		return nil
	}
}
