package domain

import "strings"

// Department is the organisational unit a role belongs to.
type Department string

const (
	DepartmentManagement Department = "Management"
	DepartmentFinance    Department = "Finance"
	DepartmentHR         Department = "HR"
	DepartmentOperations Department = "Operations"
	DepartmentTechnical  Department = "Technical"
)

// Departments lists every valid department.
var Departments = []Department{DepartmentManagement, DepartmentFinance, DepartmentHR, DepartmentOperations, DepartmentTechnical}

// RoleStatus toggles whether a role is in use.
type RoleStatus string

const (
	RoleActive   RoleStatus = "active"
	RoleInactive RoleStatus = "inactive"
)

// Well known role names used for approval routing.
const (
	RoleNameTeamLead       = "Team Lead"
	RoleNameProjectManager = "Project Manager"
	RoleNameTechnicalLead  = "Technical Lead"
	// Older records were stored with this spelling.
	roleNameTechnicalLeadLegacy = "Technichal Lead"
)

// Permission is a set of actions allowed on a category of resources.
type Permission struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Actions  []string `json:"actions"`
}

// Role groups permissions and the users that hold them.
type Role struct {
	ID            string     `json:"id"`
	Name          string     `json:"role"`
	Department    Department `json:"department"`
	PermissionIDs []string   `json:"permissions"`
	UserIDs       []string   `json:"users"`
	Status        RoleStatus `json:"status"`
	AuditFields
}

// ClassifyReviewer maps a role name to its approval routing class.
func ClassifyReviewer(roleName string) ReviewerKind {
	switch strings.TrimSpace(roleName) {
	case RoleNameTeamLead:
		return ReviewerTeamLead
	case RoleNameProjectManager, RoleNameTechnicalLead, roleNameTechnicalLeadLegacy:
		return ReviewerManager
	default:
		return ReviewerNone
	}
}

// HasUser reports whether userID is mapped to the role.
func (r *Role) HasUser(userID string) bool {
	for _, id := range r.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
