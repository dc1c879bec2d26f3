package mapping

import (
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
)

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) (models.Project, error) {
	m := models.Project{
		ClientName:       d.ClientName,
		ProjectName:      d.ProjectName,
		Description:      d.Description,
		PlannedStartDate: d.PlannedStartDate,
		PlannedEndDate:   d.PlannedEndDate,
		ActualStartDate:  d.ActualStartDate,
		ActualEndDate:    d.ActualEndDate,
		BillingModel:     d.BillingModel,
		ProjectLogo:      d.ProjectLogo,
		OpenForTimeEntry: string(d.OpenForTimeEntry),
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	var err error
	if d.ID != "" {
		if m.ID, err = ToObjectID("id", d.ID); err != nil {
			return m, err
		}
	}
	if m.ProjectLead, err = ToObjectID("projectLead", d.ProjectLeadID); err != nil {
		return m, err
	}
	return m, nil
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ID:               m.ID.Hex(),
		ClientName:       m.ClientName,
		ProjectName:      m.ProjectName,
		Description:      m.Description,
		PlannedStartDate: m.PlannedStartDate,
		PlannedEndDate:   m.PlannedEndDate,
		ActualStartDate:  m.ActualStartDate,
		ActualEndDate:    m.ActualEndDate,
		ProjectLeadID:    m.ProjectLead.Hex(),
		BillingModel:     m.BillingModel,
		ProjectLogo:      m.ProjectLogo,
		OpenForTimeEntry: domain.TimeEntryState(m.OpenForTimeEntry),
		Status:           domain.ProjectStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects to a slice of domain Projects
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}

// ToModelProjectTeam converts a domain ProjectTeam to a model ProjectTeam
func ToModelProjectTeam(d domain.ProjectTeam) (models.ProjectTeam, error) {
	project, err := ToObjectID("project", d.ProjectID)
	if err != nil {
		return models.ProjectTeam{}, err
	}
	members := make([]models.TeamMember, 0, len(d.TeamMembers))
	for _, tm := range d.TeamMembers {
		userID, err := ToObjectID("userid", tm.UserID)
		if err != nil {
			return models.ProjectTeam{}, err
		}
		dates := make([]models.MemberDates, 0, len(tm.Dates))
		for _, md := range tm.Dates {
			dates = append(dates, models.MemberDates{StartDate: md.StartDate, EndDate: md.EndDate})
		}
		members = append(members, models.TeamMember{UserID: userID, Dates: dates})
	}
	return models.ProjectTeam{
		Project:     project,
		TeamMembers: members,
		Status:      d.Status,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainProjectTeam converts a model ProjectTeam to a domain ProjectTeam
func ToDomainProjectTeam(m models.ProjectTeam) domain.ProjectTeam {
	members := make([]domain.TeamMember, 0, len(m.TeamMembers))
	for _, tm := range m.TeamMembers {
		dates := make([]domain.MemberDates, 0, len(tm.Dates))
		for _, md := range tm.Dates {
			dates = append(dates, domain.MemberDates{StartDate: md.StartDate, EndDate: md.EndDate})
		}
		members = append(members, domain.TeamMember{UserID: tm.UserID.Hex(), Dates: dates})
	}
	return domain.ProjectTeam{
		ID:          m.ID.Hex(),
		ProjectID:   m.Project.Hex(),
		TeamMembers: members,
		Status:      m.Status,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTeamMemberView converts a joined roster row.
func ToDomainTeamMemberView(m models.TeamMemberView) domain.TeamMemberView {
	return domain.TeamMemberView{
		ID:             m.ID.Hex(),
		FullName:       m.FullName,
		Email:          m.Email,
		ProfilePicPath: m.ProfilePicPath,
	}
}

// ToModelStatusReport converts a domain ProjectStatusReport to a model ProjectStatusReport
func ToModelStatusReport(d domain.ProjectStatusReport) (models.ProjectStatusReport, error) {
	m := models.ProjectStatusReport{
		ReportingPeriod: d.ReportingPeriod,
		Progress:        d.Progress,
		OverallStatus:   d.OverallStatus,
		Accomplishments: d.Accomplishments,
		Goals:           d.Goals,
		Blockers:        d.Blockers,
		Comments:        d.Comments,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	var err error
	if d.ID != "" {
		if m.ID, err = ToObjectID("id", d.ID); err != nil {
			return m, err
		}
	}
	if m.ProjectName, err = ToObjectID("projectId", d.ProjectID); err != nil {
		return m, err
	}
	if m.ProjectLead, err = ToObjectID("projectLeadId", d.ProjectLeadID); err != nil {
		return m, err
	}
	return m, nil
}

// ToDomainStatusReport converts a model ProjectStatusReport to a domain ProjectStatusReport
func ToDomainStatusReport(m models.ProjectStatusReport) domain.ProjectStatusReport {
	return domain.ProjectStatusReport{
		ID:              m.ID.Hex(),
		ProjectID:       m.ProjectName.Hex(),
		ProjectName:     m.ProjectTitle,
		ProjectLeadID:   m.ProjectLead.Hex(),
		ProjectLeadName: m.LeadName,
		ReportingPeriod: m.ReportingPeriod.UTC(),
		Progress:        m.Progress,
		OverallStatus:   m.OverallStatus,
		Accomplishments: m.Accomplishments,
		Goals:           m.Goals,
		Blockers:        m.Blockers,
		Comments:        m.Comments,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
