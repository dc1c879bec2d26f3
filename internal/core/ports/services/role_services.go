package services

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
)

// RoleReaderSvc defines read operations for roles
type RoleReaderSvc interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	GetRoleByUserID(ctx context.Context, userID string) (*domain.Role, error)
}

// RoleWriterSvc defines write operations for roles
type RoleWriterSvc interface {
	CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*domain.Role, error)
	MapUsersToRole(ctx context.Context, req dto.MapRoleRequest) (*domain.Role, error)
	// UpdateRole applies the changes and deletes permissions the role no longer uses.
	UpdateRole(ctx context.Context, req dto.UpdateRoleRequest) (*domain.Role, error)
	DeleteRole(ctx context.Context, roleID string) error
}

// RoleSvcFacade combines all role service interfaces
type RoleSvcFacade interface {
	RoleReaderSvc
	RoleWriterSvc
}
