package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Project is the document stored in the projects collection.
type Project struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	ClientName       string        `bson:"clientName"`
	ProjectName      string        `bson:"projectName"`
	Description      string        `bson:"description"`
	PlannedStartDate *time.Time    `bson:"plannedStartDate,omitempty"`
	PlannedEndDate   *time.Time    `bson:"plannedEndDate,omitempty"`
	ActualStartDate  *time.Time    `bson:"actualStartDate,omitempty"`
	ActualEndDate    *time.Time    `bson:"actualEndDate,omitempty"`
	ProjectLead      bson.ObjectID `bson:"projectLead"`
	BillingModel     string        `bson:"billingModel"`
	ProjectLogo      string        `bson:"projectLogo,omitempty"`
	OpenForTimeEntry string        `bson:"openForTimeEntry"`
	Status           string        `bson:"status"`
	AuditFields      `bson:",inline"`
}

// MemberDates is one assignment period of a team member.
type MemberDates struct {
	StartDate time.Time  `bson:"start_date"`
	EndDate   *time.Time `bson:"end_date,omitempty"`
}

// TeamMember is an entry of a project team.
type TeamMember struct {
	UserID bson.ObjectID `bson:"userid"`
	Dates  []MemberDates `bson:"dates"`
}

// ProjectTeam is the document stored in the projectteams collection.
type ProjectTeam struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Project     bson.ObjectID `bson:"project"`
	TeamMembers []TeamMember  `bson:"team_members"`
	Status      string        `bson:"status"`
	AuditFields `bson:",inline"`
}

// ProjectStatusReport is the document stored in the projectstatusreports collection.
type ProjectStatusReport struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	ProjectName     bson.ObjectID `bson:"project_name"`
	ProjectLead     bson.ObjectID `bson:"project_lead"`
	ReportingPeriod time.Time     `bson:"reporting_period"`
	Progress        int           `bson:"progress"`
	OverallStatus   string        `bson:"overall_status"`
	Accomplishments string        `bson:"accomplishments"`
	Goals           string        `bson:"goals"`
	Blockers        string        `bson:"blockers"`
	Comments        string        `bson:"comments"`
	AuditFields     `bson:",inline"`

	// Filled by $lookup stages on read.
	ProjectTitle string `bson:"projectTitle,omitempty"`
	LeadName     string `bson:"leadName,omitempty"`
}

// TeamMemberView is a roster entry joined with its user document.
type TeamMemberView struct {
	ID             bson.ObjectID `bson:"_id"`
	FullName       string        `bson:"full_name"`
	Email          string        `bson:"email"`
	ProfilePicPath string        `bson:"profile_pic_path"`
}
