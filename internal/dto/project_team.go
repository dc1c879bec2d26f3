package dto

// TeamMemberDatesRequest is one assignment period.
type TeamMemberDatesRequest struct {
	StartDate Date  `json:"start_date" binding:"required"`
	EndDate   *Date `json:"end_date"`
}

// TeamMemberRequest assigns one user to a project.
type TeamMemberRequest struct {
	UserID string                   `json:"userid" binding:"required,objectid"`
	Dates  []TeamMemberDatesRequest `json:"dates" binding:"required,min=1,dive"`
}

// CreateProjectTeamRequest defines the roster of a project.
type CreateProjectTeamRequest struct {
	Project     string              `json:"project" binding:"required,objectid"`
	TeamMembers []TeamMemberRequest `json:"team_members" binding:"required,min=1,dive"`
	Status      string              `json:"status" binding:"omitempty,oneof=active inactive"`
}
