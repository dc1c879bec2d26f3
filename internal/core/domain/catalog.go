package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntryMode controls whether hours for a category can be entered freely.
type TimeEntryMode string

const (
	OpenEntry  TimeEntryMode = "Open Entry"
	CloseEntry TimeEntryMode = "Close Entry"
)

// Category is a kind of task time can be logged against.
type Category struct {
	ID        string        `json:"id"`
	Name      string        `json:"category"`
	TimeEntry TimeEntryMode `json:"time_entry"`
	AuditFields
}

// BillingCycle is how often a subscription is billed.
type BillingCycle string

const (
	BillingMonthly     BillingCycle = "Monthly"
	BillingQuarterly   BillingCycle = "Quarterly"
	BillingAnnually    BillingCycle = "Annually"
	BillingPayAsYouGo  BillingCycle = "Pay As You Go"
	BillingOneTimeCost BillingCycle = "One Time Payment"
)

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "Active"
	SubscriptionPending SubscriptionStatus = "Pending"
	SubscriptionExpired SubscriptionStatus = "Expired"
)

// SubscriptionType separates company-wide tools from project tools.
type SubscriptionType string

const (
	SubscriptionCommon          SubscriptionType = "Common"
	SubscriptionProjectSpecific SubscriptionType = "Project Specific"
)

// Subscription is a paid tool or licence the company holds.
type Subscription struct {
	ID            string             `json:"id"`
	Name          string             `json:"subscription_name"`
	Provider      string             `json:"provider"`
	LicenseCount  int                `json:"license_count"`
	Cost          decimal.Decimal    `json:"cost"`
	BillingCycle  BillingCycle       `json:"billing_cycle"`
	Currency      string             `json:"currency"`
	PaymentMethod string             `json:"payment_method"`
	Status        SubscriptionStatus `json:"status"`
	Description   string             `json:"description,omitempty"`
	NextDueDate   time.Time          `json:"next_due_date"`
	Type          SubscriptionType   `json:"type"`
	ProjectID     string             `json:"project_name,omitempty"`
	AuditFields
}

// Severity grades a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is an in-app message to a user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
