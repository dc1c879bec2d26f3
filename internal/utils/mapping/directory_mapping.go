package mapping

import (
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:             m.ID.Hex(),
		FullName:           m.FullName,
		Email:              m.Email,
		Location:           m.Location,
		Phone:              m.Phone,
		ReportingManagerID: FromOptionalObjectID(m.ReportingManager),
		ProfilePicPath:     m.ProfilePicPath,
		PasswordHash:       m.Password,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToModelRole converts a domain Role to a model Role
func ToModelRole(d domain.Role) (models.Role, error) {
	m := models.Role{
		Role:        d.Name,
		Department:  string(d.Department),
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	var err error
	if d.ID != "" {
		if m.ID, err = ToObjectID("roleId", d.ID); err != nil {
			return m, err
		}
	}
	if m.Permissions, err = ToObjectIDs("permissions", d.PermissionIDs); err != nil {
		return m, err
	}
	if m.Users, err = ToObjectIDs("userIds", d.UserIDs); err != nil {
		return m, err
	}
	return m, nil
}

// ToDomainRole converts a model Role to a domain Role
func ToDomainRole(m models.Role) domain.Role {
	return domain.Role{
		ID:            m.ID.Hex(),
		Name:          m.Role,
		Department:    domain.Department(m.Department),
		PermissionIDs: FromObjectIDs(m.Permissions),
		UserIDs:       FromObjectIDs(m.Users),
		Status:        domain.RoleStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPermission converts a model Permission to a domain Permission
func ToDomainPermission(m models.Permission) domain.Permission {
	return domain.Permission{ID: m.ID.Hex(), Category: m.Category, Actions: m.Actions}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		ID:        m.ID.Hex(),
		UserID:    m.UserID.Hex(),
		Message:   m.Message,
		Severity:  domain.Severity(m.Type),
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt.UTC(),
	}
}
