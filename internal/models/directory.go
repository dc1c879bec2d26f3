package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the document stored in the users collection.
type User struct {
	ID               bson.ObjectID  `bson:"_id,omitempty"`
	FullName         string         `bson:"full_name"`
	Email            string         `bson:"email"`
	Location         string         `bson:"location,omitempty"`
	Phone            string         `bson:"phone_number,omitempty"`
	ReportingManager *bson.ObjectID `bson:"reporting_manager,omitempty"`
	ProfilePicPath   string         `bson:"profile_pic_path,omitempty"`
	Password         *string        `bson:"password,omitempty"`
	IsActive         bool           `bson:"isActive"`
	AuditFields      `bson:",inline"`
}

// Permission is the document stored in the permissions collection.
type Permission struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Category string        `bson:"category"`
	Actions  []string      `bson:"actions"`
}

// Role is the document stored in the roles collection.
type Role struct {
	ID          bson.ObjectID   `bson:"_id,omitempty"`
	Role        string          `bson:"role"`
	Department  string          `bson:"department"`
	Permissions []bson.ObjectID `bson:"permissions"`
	Users       []bson.ObjectID `bson:"users"`
	Status      string          `bson:"status"`
	AuditFields `bson:",inline"`
}

// Notification is the document stored in the notifications collection.
type Notification struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	Message   string        `bson:"message"`
	Type      string        `bson:"type"`
	IsRead    bool          `bson:"isRead"`
	CreatedAt time.Time     `bson:"createdAt"`
}
