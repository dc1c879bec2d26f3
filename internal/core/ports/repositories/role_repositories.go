package repositories

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// RoleReader defines read operations for roles
type RoleReader interface {
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)

	// FindRoleByUserID returns the role the user is mapped to, or apperrors.ErrNotFound.
	FindRoleByUserID(ctx context.Context, userID string) (*domain.Role, error)

	// FindRoleByName returns the role with the exact name, or apperrors.ErrNotFound.
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)

	FindRoles(ctx context.Context) ([]domain.Role, error)
}

// RoleWriter defines write operations for roles
type RoleWriter interface {
	SaveRole(ctx context.Context, role domain.Role) (*domain.Role, error)
	UpdateRole(ctx context.Context, role domain.Role) (*domain.Role, error)

	// AddUsersToRole maps users to a role, removing them from any other role first.
	AddUsersToRole(ctx context.Context, roleID string, userIDs []string) (*domain.Role, error)

	DeleteRole(ctx context.Context, roleID string) error
}

// RoleRepositoryFacade combines all role repository interfaces
type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
}

// PermissionRepositoryFacade manages permission documents referenced by roles.
type PermissionRepositoryFacade interface {
	SavePermission(ctx context.Context, permission domain.Permission) (*domain.Permission, error)

	// UpdatePermissionActions replaces the actions of a permission.
	UpdatePermissionActions(ctx context.Context, permissionID string, actions []string) error

	FindPermissionsByIDs(ctx context.Context, ids []string) ([]domain.Permission, error)

	// DeletePermissions removes permissions no role references anymore.
	DeletePermissions(ctx context.Context, ids []string) error
}
