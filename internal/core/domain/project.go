package domain

import "time"

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "Not Started"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

// TimeEntryState controls whether members may log time against a project.
type TimeEntryState string

const (
	TimeEntryOpened TimeEntryState = "opened"
	TimeEntryClosed TimeEntryState = "closed"
)

// Project is a client engagement that timesheets are logged against.
type Project struct {
	ID               string         `json:"id"`
	ClientName       string         `json:"clientName"`
	ProjectName      string         `json:"projectName"`
	Description      string         `json:"description"`
	PlannedStartDate *time.Time     `json:"plannedStartDate,omitempty"`
	PlannedEndDate   *time.Time     `json:"plannedEndDate,omitempty"`
	ActualStartDate  *time.Time     `json:"actualStartDate,omitempty"`
	ActualEndDate    *time.Time     `json:"actualEndDate,omitempty"`
	ProjectLeadID    string         `json:"projectLead"`
	BillingModel     string         `json:"billingModel"`
	ProjectLogo      string         `json:"projectLogo,omitempty"`
	OpenForTimeEntry TimeEntryState `json:"openForTimeEntry"`
	Status           ProjectStatus  `json:"status"`
	AuditFields
}

// Summary returns the short form used in approval queues.
func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{
		ID:          p.ID,
		ProjectName: p.ProjectName,
		ClientName:  p.ClientName,
		Status:      p.Status,
	}
}

// ProjectSummary is the condensed form of a project.
type ProjectSummary struct {
	ID          string        `json:"id"`
	ProjectName string        `json:"projectName"`
	ClientName  string        `json:"clientName"`
	Status      ProjectStatus `json:"status"`
}

// ProjectFilter narrows project listings. Empty fields are ignored.
type ProjectFilter struct {
	Status      string
	ClientName  string
	ProjectName string
}

// MemberDates is one assignment period of a team member. End is open when nil.
type MemberDates struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// TeamMember is a user assigned to a project team.
type TeamMember struct {
	UserID string        `json:"userid"`
	Dates  []MemberDates `json:"dates"`
}

// ProjectTeam is the roster of a project.
type ProjectTeam struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"project"`
	TeamMembers []TeamMember `json:"team_members"`
	Status      string       `json:"status"`
	AuditFields
}

// TeamMemberView is a roster entry expanded with the user's display data.
type TeamMemberView struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email,omitempty"`
	ProfilePicPath string `json:"profile_pic_path,omitempty"`
}

// ProjectStatusReport is a periodic progress report on a project.
type ProjectStatusReport struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"projectId"`
	ProjectName     string    `json:"projectName,omitempty"`
	ProjectLeadID   string    `json:"projectLeadId"`
	ProjectLeadName string    `json:"projectLeadName,omitempty"`
	ReportingPeriod time.Time `json:"reportingPeriod"`
	Progress        int       `json:"progress"`
	OverallStatus   string    `json:"overallStatus"`
	Accomplishments string    `json:"accomplishments"`
	Goals           string    `json:"goals"`
	Blockers        string    `json:"blockers"`
	Comments        string    `json:"comments"`
	AuditFields
}

// DropdownItem is an id and name pair for selection lists.
type DropdownItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
