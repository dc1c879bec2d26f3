package mongodb

import (
	"context"
	"fmt"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoProjectRepository implements portsrepo.ProjectRepositoryFacade
type MongoProjectRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewProjectRepository creates a new repository for projects
func NewProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(projectsCollection),
	}
}

var _ portsrepo.ProjectRepositoryFacade = (*MongoProjectRepository)(nil)

func (r *MongoProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	oid, err := lookupID("project", projectID)
	if err != nil {
		return nil, err
	}
	var doc models.Project
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr("project", projectID, err)
	}
	project := mapping.ToDomainProject(doc)
	return &project, nil
}

func (r *MongoProjectRepository) FindProjectsByLead(ctx context.Context, leadUserID string) ([]domain.Project, error) {
	oid, err := lookupID("user", leadUserID)
	if err != nil {
		return []domain.Project{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"projectLead": oid}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query projects led by %s: %w", leadUserID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Project
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return mapping.ToDomainProjectSlice(docs), nil
}

func (r *MongoProjectRepository) FindProjects(ctx context.Context, filter domain.ProjectFilter, limit, offset int) ([]domain.Project, int64, error) {
	match := projectListFilter(filter)
	total, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}
	cursor, err := r.coll.Find(ctx, match, pageOptions(limit, offset, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query projects: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Project
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode projects: %w", err)
	}
	return mapping.ToDomainProjectSlice(docs), total, nil
}

func (r *MongoProjectRepository) FindProjectNames(ctx context.Context) ([]domain.DropdownItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "projectName", Value: 1}}).
		SetProjection(bson.M{"projectName": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query project names: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Project
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode project names: %w", err)
	}
	items := make([]domain.DropdownItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, domain.DropdownItem{ID: d.ID.Hex(), Name: d.ProjectName})
	}
	return items, nil
}

func (r *MongoProjectRepository) SaveProject(ctx context.Context, project domain.Project) (*domain.Project, error) {
	project.ID = ""
	doc, err := mapping.ToModelProject(project)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc.CreatedAt, doc.UpdatedAt = ts, ts

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("project", err)
	}
	doc.ID = insertedID(res)
	saved := mapping.ToDomainProject(doc)
	return &saved, nil
}

func (r *MongoProjectRepository) UpdateProject(ctx context.Context, project domain.Project) (*domain.Project, error) {
	doc, err := mapping.ToModelProject(project)
	if err != nil {
		return nil, err
	}
	doc.UpdatedAt = now()
	set := bson.M{
		"clientName":       doc.ClientName,
		"projectName":      doc.ProjectName,
		"description":      doc.Description,
		"plannedStartDate": doc.PlannedStartDate,
		"plannedEndDate":   doc.PlannedEndDate,
		"actualStartDate":  doc.ActualStartDate,
		"actualEndDate":    doc.ActualEndDate,
		"projectLead":      doc.ProjectLead,
		"billingModel":     doc.BillingModel,
		"projectLogo":      doc.ProjectLogo,
		"openForTimeEntry": doc.OpenForTimeEntry,
		"status":           doc.Status,
		"updatedAt":        doc.UpdatedAt,
	}
	var updated models.Project
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, mapFindErr("project", project.ID, err)
	}
	out := mapping.ToDomainProject(updated)
	return &out, nil
}

func (r *MongoProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	oid, err := lookupID("project", projectID)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}
	return nil
}

// MongoProjectTeamRepository implements portsrepo.ProjectTeamRepositoryFacade
type MongoProjectTeamRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewProjectTeamRepository creates a new repository for project teams
func NewProjectTeamRepository(db *mongo.Database) *MongoProjectTeamRepository {
	return &MongoProjectTeamRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(projectTeamsCollection),
	}
}

var _ portsrepo.ProjectTeamRepositoryFacade = (*MongoProjectTeamRepository)(nil)

func (r *MongoProjectTeamRepository) SaveProjectTeam(ctx context.Context, team domain.ProjectTeam) (*domain.ProjectTeam, error) {
	doc, err := mapping.ToModelProjectTeam(team)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc.CreatedAt, doc.UpdatedAt = ts, ts

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("project team", err)
	}
	doc.ID = insertedID(res)
	saved := mapping.ToDomainProjectTeam(doc)
	return &saved, nil
}

func (r *MongoProjectTeamRepository) FindProjectTeamByProjectID(ctx context.Context, projectID string) (*domain.ProjectTeam, error) {
	oid, err := lookupID("project", projectID)
	if err != nil {
		return nil, err
	}
	var doc models.ProjectTeam
	if err := r.coll.FindOne(ctx, bson.M{"project": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr("project team for project", projectID, err)
	}
	team := mapping.ToDomainProjectTeam(doc)
	return &team, nil
}

func (r *MongoProjectTeamRepository) FindExpandedTeamPage(ctx context.Context, projectID string, limit, offset int) ([]domain.TeamMemberView, error) {
	oid, err := lookupID("project", projectID)
	if err != nil {
		return []domain.TeamMemberView{}, nil
	}
	cursor, err := r.coll.Aggregate(ctx, expandedTeamPagePipeline(oid, limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to expand team of project %s: %w", projectID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.TeamMemberView
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode team members: %w", err)
	}
	views := make([]domain.TeamMemberView, 0, len(docs))
	for _, d := range docs {
		views = append(views, mapping.ToDomainTeamMemberView(d))
	}
	return views, nil
}

func (r *MongoProjectTeamRepository) FindProjectTeams(ctx context.Context, limit, offset int) ([]domain.ProjectTeam, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count project teams: %w", err)
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, pageOptions(limit, offset, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query project teams: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.ProjectTeam
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode project teams: %w", err)
	}
	teams := make([]domain.ProjectTeam, 0, len(docs))
	for _, d := range docs {
		teams = append(teams, mapping.ToDomainProjectTeam(d))
	}
	return teams, total, nil
}

// MongoStatusReportRepository implements portsrepo.ProjectStatusReportRepositoryFacade
type MongoStatusReportRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewStatusReportRepository creates a new repository for project status reports
func NewStatusReportRepository(db *mongo.Database) *MongoStatusReportRepository {
	return &MongoStatusReportRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(statusReportsCollection),
	}
}

var _ portsrepo.ProjectStatusReportRepositoryFacade = (*MongoStatusReportRepository)(nil)

func (r *MongoStatusReportRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]domain.ProjectStatusReport, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query status reports: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.ProjectStatusReport
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode status reports: %w", err)
	}
	reports := make([]domain.ProjectStatusReport, 0, len(docs))
	for _, d := range docs {
		reports = append(reports, mapping.ToDomainStatusReport(d))
	}
	return reports, nil
}

func (r *MongoStatusReportRepository) SaveStatusReport(ctx context.Context, report domain.ProjectStatusReport) (*domain.ProjectStatusReport, error) {
	report.ID = ""
	doc, err := mapping.ToModelStatusReport(report)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc.CreatedAt, doc.UpdatedAt = ts, ts

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("status report", err)
	}
	return r.FindStatusReportByID(ctx, insertedID(res).Hex())
}

func (r *MongoStatusReportRepository) FindStatusReportByID(ctx context.Context, reportID string) (*domain.ProjectStatusReport, error) {
	oid, err := lookupID("status report", reportID)
	if err != nil {
		return nil, err
	}
	reports, err := r.aggregate(ctx, statusReportsPipeline(bson.M{"_id": oid}, 0, 0))
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("status report %s: %w", reportID, apperrors.ErrNotFound)
	}
	return &reports[0], nil
}

func (r *MongoStatusReportRepository) FindStatusReports(ctx context.Context, limit, offset int) ([]domain.ProjectStatusReport, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count status reports: %w", err)
	}
	reports, err := r.aggregate(ctx, statusReportsPipeline(bson.M{}, limit, offset))
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *MongoStatusReportRepository) UpdateStatusReport(ctx context.Context, report domain.ProjectStatusReport) (*domain.ProjectStatusReport, error) {
	doc, err := mapping.ToModelStatusReport(report)
	if err != nil {
		return nil, err
	}
	set := bson.M{
		"project_name":     doc.ProjectName,
		"project_lead":     doc.ProjectLead,
		"reporting_period": doc.ReportingPeriod,
		"progress":         doc.Progress,
		"overall_status":   doc.OverallStatus,
		"accomplishments":  doc.Accomplishments,
		"goals":            doc.Goals,
		"blockers":         doc.Blockers,
		"comments":         doc.Comments,
		"updatedAt":        now(),
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update status report %s: %w", report.ID, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("status report %s: %w", report.ID, apperrors.ErrNotFound)
	}
	return r.FindStatusReportByID(ctx, report.ID)
}
