package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DataSheetEntry is one day of a timesheet. Hours are stored as decimal text.
type DataSheetEntry struct {
	Date      time.Time `bson:"date"`
	IsHoliday bool      `bson:"isHoliday"`
	Hours     string    `bson:"hours"`
}

// Timesheet is the document stored in the timesheets collection.
type Timesheet struct {
	ID             bson.ObjectID    `bson:"_id,omitempty"`
	ProjectID      bson.ObjectID    `bson:"project_id"`
	UserID         bson.ObjectID    `bson:"user_id"`
	TaskCategoryID bson.ObjectID    `bson:"task_category_id"`
	TaskDetail     string           `bson:"task_detail"`
	StartDate      time.Time        `bson:"startDate"`
	EndDate        time.Time        `bson:"endDate"`
	DataSheet      []DataSheetEntry `bson:"data_sheet"`
	Status         string           `bson:"status"`
	AuditFields    `bson:",inline"`

	// Filled by $lookup stages on read.
	ProjectName  string `bson:"projectName,omitempty"`
	CategoryName string `bson:"categoryName,omitempty"`
}

// RejectionNote is the document stored in the rejection_notes collection.
type RejectionNote struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      bson.ObjectID `bson:"user_id"`
	StartDate   time.Time     `bson:"start_date"`
	EndDate     time.Time     `bson:"end_date"`
	Notes       string        `bson:"notes"`
	AuditFields `bson:",inline"`
}
