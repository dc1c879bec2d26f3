package domain

import (
	"github.com/shopspring/decimal"
)

// ReportQuery selects timesheets by end date with optional project and user filters.
type ReportQuery struct {
	Range      DateRange
	ProjectIDs []string
	UserIDs    []string
}

// ProjectHours is the logged and approved total for one project, optionally scoped to one user.
type ProjectHours struct {
	ProjectID     string          `json:"projectId"`
	ProjectName   string          `json:"projectName"`
	UserID        string          `json:"userId,omitempty"`
	UserName      string          `json:"userName,omitempty"`
	LoggedHours   decimal.Decimal `json:"loggedHours"`
	ApprovedHours decimal.Decimal `json:"approvedHours"`
	Categories    []string        `json:"categories"`
	ByCategory    []CategoryHours `json:"byCategory,omitempty"`
}

// CategoryHours breaks project hours down by task category.
type CategoryHours struct {
	Category      string          `json:"category"`
	LoggedHours   decimal.Decimal `json:"loggedHours"`
	ApprovedHours decimal.Decimal `json:"approvedHours"`
}

// CategoryHoursRow is the raw per user, project and category total.
type CategoryHoursRow struct {
	UserID        string
	ProjectID     string
	Category      string
	LoggedHours   decimal.Decimal
	ApprovedHours decimal.Decimal
}

// EmployeeReport groups one user's project totals.
type EmployeeReport struct {
	UserID             string          `json:"userId"`
	UserName           string          `json:"userName"`
	Projects           []ProjectHours  `json:"projects"`
	TotalLoggedHours   decimal.Decimal `json:"totalLoggedHours"`
	TotalApprovedHours decimal.Decimal `json:"totalApprovedHours"`
}

// StatusCount is the number of timesheets in a status.
type StatusCount struct {
	Status TimesheetStatus `json:"status"`
	Count  int64           `json:"count"`
}

// TimeSummaryRow is one team member's hours on a project.
type TimeSummaryRow struct {
	UserID       string          `json:"userId"`
	TeamMember   string          `json:"team_member"`
	TotalTime    decimal.Decimal `json:"total_time"`
	ApprovedTime decimal.Decimal `json:"approved_time"`
}
