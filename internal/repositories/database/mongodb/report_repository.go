package mongodb

import (
	"context"
	"fmt"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoReportRepository runs the reporting aggregations over the timesheets collection.
type MongoReportRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewReportRepository creates a new repository for report aggregations
func NewReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(timesheetsCollection),
	}
}

var _ portsrepo.ReportRepository = (*MongoReportRepository)(nil)

func (r *MongoReportRepository) match(q domain.ReportQuery) (bson.M, error) {
	projects, err := mapping.ToObjectIDs("projectIds", q.ProjectIDs)
	if err != nil {
		return nil, err
	}
	users, err := mapping.ToObjectIDs("userIds", q.UserIDs)
	if err != nil {
		return nil, err
	}
	return reportMatch(q.Range, projects, users), nil
}

func (r *MongoReportRepository) UserProjectHours(ctx context.Context, q domain.ReportQuery) ([]domain.ProjectHours, error) {
	match, err := r.match(q)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Aggregate(ctx, userProjectHoursPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate project hours: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.UserProjectHours
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode project hours: %w", err)
	}
	out := make([]domain.ProjectHours, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapping.ToDomainProjectHours(row))
	}
	return out, nil
}

func (r *MongoReportRepository) CategoryHours(ctx context.Context, q domain.ReportQuery) ([]domain.CategoryHoursRow, error) {
	match, err := r.match(q)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Aggregate(ctx, categoryHoursPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category hours: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.CategoryHours
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode category hours: %w", err)
	}
	out := make([]domain.CategoryHoursRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapping.ToDomainCategoryHoursRow(row))
	}
	return out, nil
}

func (r *MongoReportRepository) StatusCounts(ctx context.Context, userID string, dr domain.DateRange) ([]domain.StatusCount, error) {
	oid, err := mapping.ToObjectID("userId", userID)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Aggregate(ctx, statusCountPipeline(oid, dr))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate status counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.StatusCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}
	out := make([]domain.StatusCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.StatusCount{Status: domain.TimesheetStatus(row.Status), Count: row.Count})
	}
	return out, nil
}
