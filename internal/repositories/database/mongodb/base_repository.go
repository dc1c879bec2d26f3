package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names
const (
	timesheetsCollection     = "timesheets"
	rejectionNotesCollection = "rejection_notes"
	usersCollection          = "users"
	rolesCollection          = "roles"
	permissionsCollection    = "permissions"
	projectsCollection       = "projects"
	projectTeamsCollection   = "projectteams"
	statusReportsCollection  = "projectstatusreports"
	categoriesCollection     = "categories"
	subscriptionsCollection  = "subscriptions"
	notificationsCollection  = "notifications"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *mongo.Database
}

// now returns the timestamp written to audit fields. Mongo keeps millisecond precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// lookupID parses an id used to find a record. A malformed id cannot match anything.
func lookupID(kind, id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%s %q: %w", kind, id, apperrors.ErrNotFound)
	}
	return oid, nil
}

// mapFindErr turns a missing document into apperrors.ErrNotFound.
func mapFindErr(kind, id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
	}
	return fmt.Errorf("failed to find %s %s: %w", kind, id, err)
}

// mapWriteErr turns a unique index violation into apperrors.ErrDuplicate.
func mapWriteErr(kind string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, kind)
	}
	return fmt.Errorf("failed to save %s: %w", kind, err)
}

// insertedID extracts the generated id of an insert.
func insertedID(res *mongo.InsertOneResult) bson.ObjectID {
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		return oid
	}
	return bson.NilObjectID
}

// pageOptions applies skip and limit with the given sort.
func pageOptions(limit, offset int, sort bson.D) *options.FindOptionsBuilder {
	return options.Find().SetSort(sort).SetSkip(int64(offset)).SetLimit(int64(limit))
}

// caseInsensitive is the collation used for name uniqueness and lookups.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// EnsureIndexes creates the indexes the repositories rely on. It is safe to run on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{rejectionNotesCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_week"),
		}},
		{timesheetsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index().SetName("user_window"),
		}},
		{timesheetsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "endDate", Value: 1}},
			Options: options.Index().SetName("end_date"),
		}},
		{categoriesCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(caseInsensitive).SetName("uniq_category"),
		}},
		{subscriptionsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "subscription_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_subscription"),
		}},
		{rolesCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "users", Value: 1}},
			Options: options.Index().SetName("role_users"),
		}},
		{projectsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "projectLead", Value: 1}},
			Options: options.Index().SetName("project_lead"),
		}},
		{notificationsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created"),
		}},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}
