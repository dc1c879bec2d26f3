package dto

import (
	"io"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// ProjectForm is the multipart form used to create or update a project.
// The optional logo arrives as the "projectLogo" file part.
type ProjectForm struct {
	ClientName       string `form:"clientName" binding:"required,max=100"`
	ProjectName      string `form:"projectName" binding:"required,max=100"`
	Description      string `form:"description" binding:"max=2000"`
	PlannedStartDate Date   `form:"plannedStartDate"`
	PlannedEndDate   Date   `form:"plannedEndDate"`
	ActualStartDate  Date   `form:"actualStartDate"`
	ActualEndDate    Date   `form:"actualEndDate"`
	ProjectLead      string `form:"projectLead" binding:"required,objectid"`
	BillingModel     string `form:"billingModel"`
	OpenForTimeEntry string `form:"openForTimeEntry" binding:"omitempty,oneof=opened closed"`
	Status           string `form:"status" binding:"required,oneof='Not Started' 'In Progress' Completed 'On Hold' Cancelled"`
}

// ListProjectsRequest filters and pages the project listing.
type ListProjectsRequest struct {
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
	Status      string `json:"status"`
	ClientName  string `json:"clientName"`
	ProjectName string `json:"projectName"`
}

// Filter extracts the domain filter from the request.
func (r ListProjectsRequest) Filter() domain.ProjectFilter {
	return domain.ProjectFilter{Status: r.Status, ClientName: r.ClientName, ProjectName: r.ProjectName}
}

// ListProjectsResponse is a page of projects.
type ListProjectsResponse struct {
	Projects   []domain.Project `json:"projects"`
	Pagination domain.PageInfo  `json:"pagination"`
}

// FileUpload is an uploaded file handed from a handler to a service.
type FileUpload struct {
	Filename string
	Body     io.Reader
}
