package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoTimesheetRepository implements portsrepo.TimesheetRepositoryFacade
type MongoTimesheetRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewTimesheetRepository creates a new repository for timesheets
func NewTimesheetRepository(db *mongo.Database) *MongoTimesheetRepository {
	return &MongoTimesheetRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(timesheetsCollection),
	}
}

var _ portsrepo.TimesheetRepositoryFacade = (*MongoTimesheetRepository)(nil)

func (r *MongoTimesheetRepository) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]domain.Timesheet, error) {
	defer cursor.Close(ctx)
	var docs []models.Timesheet
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode timesheets: %w", err)
	}
	return mapping.ToDomainTimesheetSlice(docs)
}

func (r *MongoTimesheetRepository) FindTimesheetByID(ctx context.Context, timesheetID string) (*domain.Timesheet, error) {
	oid, err := lookupID("timesheet", timesheetID)
	if err != nil {
		return nil, err
	}
	var doc models.Timesheet
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr("timesheet", timesheetID, err)
	}
	ts, err := mapping.ToDomainTimesheet(doc)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *MongoTimesheetRepository) FindUserTimesheets(ctx context.Context, userID string) ([]domain.Timesheet, error) {
	oid, err := lookupID("user", userID)
	if err != nil {
		return []domain.Timesheet{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": oid}, options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheets of user %s: %w", userID, err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *MongoTimesheetRepository) FindWeeklyTimesheets(ctx context.Context, userID string, week domain.DateRange) ([]domain.Timesheet, error) {
	oid, err := lookupID("user", userID)
	if err != nil {
		return []domain.Timesheet{}, nil
	}
	cursor, err := r.coll.Aggregate(ctx, timesheetsWithNamesPipeline(weeklyFilter(oid, week)))
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly timesheets of user %s: %w", userID, err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *MongoTimesheetRepository) FindTimesheetsWithEntryBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Timesheet, error) {
	oid, err := lookupID("user", userID)
	if err != nil {
		return []domain.Timesheet{}, nil
	}
	cursor, err := r.coll.Aggregate(ctx, timesheetsWithNamesPipeline(entryBetweenFilter(oid, from, to)))
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheets with entries for user %s: %w", userID, err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *MongoTimesheetRepository) FindPastDue(ctx context.Context, userID string, before time.Time, statuses []domain.TimesheetStatus) ([]domain.Timesheet, error) {
	var user *bson.ObjectID
	if userID != "" {
		oid, err := lookupID("user", userID)
		if err != nil {
			return []domain.Timesheet{}, nil
		}
		user = &oid
	}
	cursor, err := r.coll.Aggregate(ctx, timesheetsWithNamesPipeline(pastDueFilter(user, before, statuses)))
	if err != nil {
		return nil, fmt.Errorf("failed to query past due timesheets: %w", err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *MongoTimesheetRepository) SaveTimesheet(ctx context.Context, timesheet domain.Timesheet) (*domain.Timesheet, error) {
	doc, err := mapping.ToModelTimesheet(timesheet)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc.ID = bson.NilObjectID
	doc.CreatedAt, doc.UpdatedAt = ts, ts

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("timesheet", err)
	}
	doc.ID = insertedID(res)
	saved, err := mapping.ToDomainTimesheet(doc)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *MongoTimesheetRepository) UpdateTimesheetEntries(ctx context.Context, timesheet domain.Timesheet, expected domain.TimesheetStatus) (*domain.Timesheet, error) {
	oid, err := lookupID("timesheet", timesheet.ID)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"data_sheet":  mapping.ToModelDataSheet(timesheet.DataSheet),
		"task_detail": timesheet.TaskDetail,
		"status":      string(timesheet.Status),
		"updatedAt":   now(),
	}}
	var doc models.Timesheet
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "status": string(expected)}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// The status moved since the owner read it, usually a reviewer decision.
		n, countErr := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if countErr != nil {
			return nil, fmt.Errorf("failed to check timesheet %s: %w", timesheet.ID, countErr)
		}
		if n == 0 {
			return nil, fmt.Errorf("timesheet %s: %w", timesheet.ID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("timesheet %s is no longer %s: %w", timesheet.ID, expected, apperrors.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update timesheet %s: %w", timesheet.ID, err)
	}
	updated, err := mapping.ToDomainTimesheet(doc)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoTimesheetRepository) UpdateTimesheetStatus(ctx context.Context, timesheetID string, from []domain.TimesheetStatus, to domain.TimesheetStatus) (*domain.Timesheet, error) {
	oid, err := lookupID("timesheet", timesheetID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"_id": oid, "status": bson.M{"$in": statusStrings(from)}}
	update := bson.M{"$set": bson.M{"status": string(to), "updatedAt": now()}}

	var doc models.Timesheet
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Tell a missing timesheet apart from one in a status that cannot move to the target.
		n, countErr := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if countErr != nil {
			return nil, fmt.Errorf("failed to check timesheet %s: %w", timesheetID, countErr)
		}
		if n == 0 {
			return nil, fmt.Errorf("timesheet %s: %w", timesheetID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("timesheet %s cannot move to %s: %w", timesheetID, to, apperrors.ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update status of timesheet %s: %w", timesheetID, err)
	}
	updated, err := mapping.ToDomainTimesheet(doc)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoTimesheetRepository) UpdateWeekStatus(ctx context.Context, userID string, week domain.DateRange, from []domain.TimesheetStatus, to domain.TimesheetStatus) (int64, error) {
	oid, err := lookupID("user", userID)
	if err != nil {
		return 0, nil
	}
	update := bson.M{"$set": bson.M{"status": string(to), "updatedAt": now()}}
	res, err := r.coll.UpdateMany(ctx, weekStatusFilter(oid, week, from), update)
	if err != nil {
		return 0, fmt.Errorf("failed to update week status for user %s: %w", userID, err)
	}
	return res.ModifiedCount, nil
}
