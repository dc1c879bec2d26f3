package mapping

import (
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
)

// ToDomainProjectHours converts an aggregation row.
func ToDomainProjectHours(m models.UserProjectHours) domain.ProjectHours {
	categories := m.Categories
	if categories == nil {
		categories = []string{}
	}
	return domain.ProjectHours{
		ProjectID:     m.ProjectID.Hex(),
		ProjectName:   m.ProjectName,
		UserID:        m.UserID.Hex(),
		UserName:      m.UserName,
		LoggedHours:   FromDecimal128(m.LoggedHours),
		ApprovedHours: FromDecimal128(m.ApprovedHours),
		Categories:    categories,
	}
}

// ToDomainCategoryHoursRow converts an aggregation row.
func ToDomainCategoryHoursRow(m models.CategoryHours) domain.CategoryHoursRow {
	return domain.CategoryHoursRow{
		UserID:        m.UserID.Hex(),
		ProjectID:     m.ProjectID.Hex(),
		Category:      m.Category,
		LoggedHours:   FromDecimal128(m.LoggedHours),
		ApprovedHours: FromDecimal128(m.ApprovedHours),
	}
}
