package models

import "time"

// AuditFields holds the timestamps every document carries.
type AuditFields struct {
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
