package models

import "go.mongodb.org/mongo-driver/v2/bson"

// UserProjectHours is a row of the per user and project hours aggregation.
type UserProjectHours struct {
	UserID        bson.ObjectID   `bson:"user_id"`
	UserName      string          `bson:"userName"`
	ProjectID     bson.ObjectID   `bson:"project_id"`
	ProjectName   string          `bson:"projectName"`
	LoggedHours   bson.Decimal128 `bson:"loggedHours"`
	ApprovedHours bson.Decimal128 `bson:"approvedHours"`
	Categories    []string        `bson:"categories"`
}

// CategoryHours is a row of the per user, project and category hours aggregation.
type CategoryHours struct {
	UserID        bson.ObjectID   `bson:"user_id"`
	ProjectID     bson.ObjectID   `bson:"project_id"`
	Category      string          `bson:"category"`
	LoggedHours   bson.Decimal128 `bson:"loggedHours"`
	ApprovedHours bson.Decimal128 `bson:"approvedHours"`
}

// StatusCount is a row of the per status count aggregation.
type StatusCount struct {
	Status string `bson:"status"`
	Count  int64  `bson:"count"`
}
