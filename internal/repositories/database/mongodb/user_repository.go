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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoUserRepository implements portsrepo.UserRepositoryFacade
type MongoUserRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewUserRepository creates a new repository for users
func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(usersCollection),
	}
}

var _ portsrepo.UserRepositoryFacade = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	oid, err := lookupID("user", userID)
	if err != nil {
		return nil, err
	}
	var doc models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr("user", userID, err)
	}
	user := mapping.ToDomainUser(doc)
	return &user, nil
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}, options.FindOne().SetCollation(caseInsensitive)).Decode(&doc)
	if err != nil {
		return nil, mapFindErr("user", email, err)
	}
	user := mapping.ToDomainUser(doc)
	return &user, nil
}

func (r *MongoUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) ([]domain.User, error) {
	oids := make([]bson.ObjectID, 0, len(userIDs))
	for _, id := range userIDs {
		if oid, err := bson.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []domain.User{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.User
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	byID := make(map[bson.ObjectID]models.User, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	users := make([]domain.User, 0, len(docs))
	for _, oid := range oids {
		if d, ok := byID[oid]; ok {
			users = append(users, mapping.ToDomainUser(d))
		}
	}
	return users, nil
}

func (r *MongoUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, pageOptions(limit, offset, bson.D{{Key: "full_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.User
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return mapping.ToDomainUserSlice(docs), nil
}
