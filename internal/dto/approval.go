package dto

import (
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// ApprovalCenterRequest is the body of the approval queue endpoint.
type ApprovalCenterRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ManageTimesheetRequest changes the status of a single timesheet.
type ManageTimesheetRequest struct {
	TimesheetID string `json:"timesheetid" binding:"required,objectid"`
	State       string `json:"state" binding:"required"`
}

// ManageAllTimesheetRequest approves or rejects a user's whole week.
// It is validated by the approval service so failures surface as 422.
type ManageAllTimesheetRequest struct {
	TimesheetID string `json:"timesheetid" validate:"required,objectid"`
	Status      string `json:"status" validate:"required,oneof=approved rejected"`
	UserID      string `json:"userid" validate:"required"`
	Notes       string `json:"notes" validate:"required_if=Status rejected"`
}

// ToDecision converts a validated request into a domain decision.
func (r ManageAllTimesheetRequest) ToDecision() domain.ApprovalDecision {
	return domain.ApprovalDecision{
		TimesheetID: r.TimesheetID,
		Status:      domain.TimesheetStatus(r.Status),
		UserID:      r.UserID,
		Notes:       r.Notes,
	}
}

// TeamMemberResponse is a roster entry in the approval queue.
type TeamMemberResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	ProfilePicPath string `json:"profile_pic_path,omitempty"`
}

// ProjectTeamResponse pairs a roster page with its project.
type ProjectTeamResponse struct {
	ProjectTeam []TeamMemberResponse  `json:"projectTeam"`
	Project     domain.ProjectSummary `json:"project"`
}

// ToTeamMemberResponses formats roster entries with capitalized names.
func ToTeamMemberResponses(members []domain.TeamMemberView) []TeamMemberResponse {
	out := make([]TeamMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, TeamMemberResponse{
			ID:             m.ID,
			Name:           domain.CapitalizeWords(m.FullName),
			Email:          m.Email,
			ProfilePicPath: m.ProfilePicPath,
		})
	}
	return out
}

// ToProjectTeamResponses formats the Team Lead view of the queue.
func ToProjectTeamResponses(teams []domain.ProjectTeamView) []ProjectTeamResponse {
	out := make([]ProjectTeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, ProjectTeamResponse{
			ProjectTeam: ToTeamMemberResponses(t.ProjectTeam),
			Project:     t.Project,
		})
	}
	return out
}

// ApprovalHistoryRequest reads the audit trail of a user's timesheets.
type ApprovalHistoryRequest struct {
	UserID string `json:"userId" binding:"required,objectid"`
	Limit  int    `json:"limit" binding:"omitempty,gte=1,lte=100"`
}
