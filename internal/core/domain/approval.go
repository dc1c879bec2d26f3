package domain

import "time"

// RejectionNote records why a user's week was rejected.
// There is at most one note per user and week.
type RejectionNote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Notes     string    `json:"notes"`
	AuditFields
}

// Week returns the week the note applies to.
func (n *RejectionNote) Week() DateRange {
	return DateRange{Start: n.StartDate, End: n.EndDate}
}

// ApprovalDecision is a reviewer's verdict on a user's whole week.
type ApprovalDecision struct {
	TimesheetID string
	Status      TimesheetStatus
	UserID      string
	Notes       string
}

// ApprovalOutcome names what a decision actually changed.
type ApprovalOutcome string

const (
	// OutcomeRejectionCleared means an earlier rejection note was removed by an approval.
	OutcomeRejectionCleared ApprovalOutcome = "rejection_cleared"
	// OutcomeRejectionCreated means the week was rejected for the first time.
	OutcomeRejectionCreated ApprovalOutcome = "rejection_created"
	// OutcomeNotesUpdated means the week was rejected again and the notes replaced.
	OutcomeNotesUpdated ApprovalOutcome = "notes_updated"
	// OutcomeStatusUpdated means only the bulk status change applied.
	OutcomeStatusUpdated ApprovalOutcome = "status_updated"
	// OutcomeSingleStatusUpdated is a one-timesheet status change.
	OutcomeSingleStatusUpdated ApprovalOutcome = "single_status_updated"
)

// ApprovalResult is returned by the week reconciliation.
type ApprovalResult struct {
	Outcome  ApprovalOutcome
	Week     DateRange
	Updated  int64
	Notified bool
}

// ApprovalAuditEntry is an append-only record of a reviewer action.
type ApprovalAuditEntry struct {
	ID          int64           `json:"id"`
	ReviewerID  string          `json:"reviewerId"`
	UserID      string          `json:"userId"`
	TimesheetID string          `json:"timesheetId"`
	WeekStart   time.Time       `json:"weekStart"`
	WeekEnd     time.Time       `json:"weekEnd"`
	Decision    TimesheetStatus `json:"decision"`
	Outcome     ApprovalOutcome `json:"outcome"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ReviewerKind classifies a caller for approval routing.
type ReviewerKind int

const (
	ReviewerNone ReviewerKind = iota
	ReviewerTeamLead
	ReviewerManager
)

// ProjectTeamView pairs a page of a project's roster with the project summary.
type ProjectTeamView struct {
	ProjectTeam []TeamMemberView `json:"projectTeam"`
	Project     ProjectSummary   `json:"project"`
}

// QueueView is the role-dependent approval queue.
type QueueView struct {
	Kind      ReviewerKind
	Teams     []ProjectTeamView
	TeamLeads []TeamMemberView
}
