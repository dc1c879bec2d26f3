package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/models"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoRejectionNoteRepository stores at most one rejection note per user and week.
// The unique index from EnsureIndexes backs that rule.
type MongoRejectionNoteRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewRejectionNoteRepository creates a new repository for rejection notes
func NewRejectionNoteRepository(db *mongo.Database) *MongoRejectionNoteRepository {
	return &MongoRejectionNoteRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(rejectionNotesCollection),
	}
}

var _ portsrepo.RejectionNoteRepositoryFacade = (*MongoRejectionNoteRepository)(nil)

func (r *MongoRejectionNoteRepository) FindByWeek(ctx context.Context, userID string, week domain.DateRange) (*domain.RejectionNote, error) {
	oid, err := lookupID("user", userID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"user_id": oid, "start_date": week.Start, "end_date": week.End}

	var doc models.RejectionNote
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rejection note for user %s: %w", userID, err)
	}
	note := mapping.ToDomainRejectionNote(doc)
	return &note, nil
}

func (r *MongoRejectionNoteRepository) CreateRejectionNote(ctx context.Context, note domain.RejectionNote) (*domain.RejectionNote, error) {
	doc, err := mapping.ToModelRejectionNote(note)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc.CreatedAt, doc.UpdatedAt = ts, ts

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("rejection note", err)
	}
	doc.ID = insertedID(res)
	created := mapping.ToDomainRejectionNote(doc)
	return &created, nil
}

func (r *MongoRejectionNoteRepository) UpdateRejectionNotes(ctx context.Context, noteID string, notes string) error {
	oid, err := lookupID("rejection note", noteID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"notes": notes, "updatedAt": now()}})
	if err != nil {
		return fmt.Errorf("failed to update rejection note %s: %w", noteID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("rejection note %s: %w", noteID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoRejectionNoteRepository) DeleteRejectionNote(ctx context.Context, noteID string) error {
	oid, err := lookupID("rejection note", noteID)
	if err != nil {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete rejection note %s: %w", noteID, err)
	}
	return nil
}
