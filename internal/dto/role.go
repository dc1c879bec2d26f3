package dto

import (
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// PermissionRequest is one category of actions granted by a role.
type PermissionRequest struct {
	Category string   `json:"category" binding:"required"`
	Actions  []string `json:"actions" binding:"required,min=1,dive,oneof=view edit delete review"`
}

// CreateRoleRequest defines data for creating a role.
type CreateRoleRequest struct {
	Role        string              `json:"role" binding:"required,min=2,max=50"`
	Department  string              `json:"department" binding:"required,department"`
	Permissions []PermissionRequest `json:"permissions" binding:"omitempty,dive"`
	Status      string              `json:"status" binding:"omitempty,oneof=active inactive"`
}

// MapRoleRequest assigns users to a role.
type MapRoleRequest struct {
	RoleID  string   `json:"roleId" binding:"required,objectid"`
	UserIDs []string `json:"userIds" binding:"required,min=1,dive,objectid"`
}

// RoleIDRequest identifies a single role.
type RoleIDRequest struct {
	RoleID string `json:"roleId" binding:"required,objectid"`
}

// UpdateRoleRequest changes a role. Omitted fields keep their value.
type UpdateRoleRequest struct {
	RoleID      string              `json:"roleId" binding:"required,objectid"`
	Role        *string             `json:"role" binding:"omitempty,min=2,max=50"`
	Department  *string             `json:"department" binding:"omitempty,department"`
	Permissions []PermissionRequest `json:"permissions" binding:"omitempty,dive"`
	Status      *string             `json:"status" binding:"omitempty,oneof=active inactive"`
}

// RoleResponse is a role in the role listing.
type RoleResponse struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Department string `json:"department"`
	NoOfUsers  int    `json:"no_of_users"`
	Status     string `json:"status"`
}

// ToRoleResponse converts domain.Role to DTO.
func ToRoleResponse(r *domain.Role) RoleResponse {
	return RoleResponse{
		ID:         r.ID,
		Role:       r.Name,
		Department: string(r.Department),
		NoOfUsers:  len(r.UserIDs),
		Status:     string(r.Status),
	}
}

// ToRoleResponses converts a slice of roles.
func ToRoleResponses(roles []domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, ToRoleResponse(&roles[i]))
	}
	return out
}
