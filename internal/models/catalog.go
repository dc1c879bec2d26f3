package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category is the document stored in the categories collection.
type Category struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Category    string        `bson:"category"`
	TimeEntry   string        `bson:"time_entry"`
	AuditFields `bson:",inline"`
}

// Subscription is the document stored in the subscriptions collection.
type Subscription struct {
	ID            bson.ObjectID   `bson:"_id,omitempty"`
	Name          string          `bson:"subscription_name"`
	Provider      string          `bson:"provider"`
	LicenseCount  int             `bson:"license_count"`
	Cost          bson.Decimal128 `bson:"cost"`
	BillingCycle  string          `bson:"billing_cycle"`
	Currency      string          `bson:"currency"`
	PaymentMethod string          `bson:"payment_method"`
	Status        string          `bson:"status"`
	Description   string          `bson:"description,omitempty"`
	NextDueDate   time.Time       `bson:"next_due_date"`
	Type          string          `bson:"type"`
	ProjectName   *bson.ObjectID  `bson:"project_name,omitempty"`
	AuditFields   `bson:",inline"`
}
