package dto

// CreateSubscriptionRequest registers a paid tool or licence.
// ProjectID must be set when Type is "Project Specific".
type CreateSubscriptionRequest struct {
	Name          string `json:"subscription_name" binding:"required,max=100"`
	Provider      string `json:"provider" binding:"required,max=100"`
	LicenseCount  int    `json:"license_count" binding:"gte=0"`
	Cost          string `json:"cost" binding:"required,numeric"`
	BillingCycle  string `json:"billing_cycle" binding:"required,oneof=Monthly Quarterly Annually 'Pay As You Go' 'One Time Payment'"`
	Currency      string `json:"currency" binding:"required,len=3"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Status        string `json:"status" binding:"required,oneof=Active Pending Expired"`
	Description   string `json:"description" binding:"max=1000"`
	NextDueDate   Date   `json:"next_due_date" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=Common 'Project Specific'"`
	ProjectID     string `json:"project_name" binding:"omitempty,objectid"`
}
