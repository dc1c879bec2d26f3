package mapping

import (
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
)

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		ID:          m.ID.Hex(),
		Name:        m.Category,
		TimeEntry:   domain.TimeEntryMode(m.TimeEntry),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSubscription converts a domain Subscription to a model Subscription
func ToModelSubscription(d domain.Subscription) (models.Subscription, error) {
	cost, err := ToDecimal128(d.Cost)
	if err != nil {
		return models.Subscription{}, err
	}
	project, err := ToOptionalObjectID("project_name", d.ProjectID)
	if err != nil {
		return models.Subscription{}, err
	}
	return models.Subscription{
		Name:          d.Name,
		Provider:      d.Provider,
		LicenseCount:  d.LicenseCount,
		Cost:          cost,
		BillingCycle:  string(d.BillingCycle),
		Currency:      d.Currency,
		PaymentMethod: d.PaymentMethod,
		Status:        string(d.Status),
		Description:   d.Description,
		NextDueDate:   d.NextDueDate,
		Type:          string(d.Type),
		ProjectName:   project,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		ID:            m.ID.Hex(),
		Name:          m.Name,
		Provider:      m.Provider,
		LicenseCount:  m.LicenseCount,
		Cost:          FromDecimal128(m.Cost),
		BillingCycle:  domain.BillingCycle(m.BillingCycle),
		Currency:      m.Currency,
		PaymentMethod: m.PaymentMethod,
		Status:        domain.SubscriptionStatus(m.Status),
		Description:   m.Description,
		NextDueDate:   m.NextDueDate.UTC(),
		Type:          domain.SubscriptionType(m.Type),
		ProjectID:     FromOptionalObjectID(m.ProjectName),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
