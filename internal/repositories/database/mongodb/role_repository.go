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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoRoleRepository implements portsrepo.RoleRepositoryFacade
type MongoRoleRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewRoleRepository creates a new repository for roles
func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(rolesCollection),
	}
}

var _ portsrepo.RoleRepositoryFacade = (*MongoRoleRepository)(nil)

func (r *MongoRoleRepository) findOne(ctx context.Context, filter bson.M, what string) (*domain.Role, error) {
	var doc models.Role
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapFindErr("role", what, err)
	}
	role := mapping.ToDomainRole(doc)
	return &role, nil
}

func (r *MongoRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	oid, err := lookupID("role", roleID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid}, roleID)
}

func (r *MongoRoleRepository) FindRoleByUserID(ctx context.Context, userID string) (*domain.Role, error) {
	oid, err := lookupID("user", userID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"users": oid}, "for user "+userID)
}

func (r *MongoRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"role": name}, name)
}

func (r *MongoRoleRepository) FindRoles(ctx context.Context) ([]domain.Role, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Role
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode roles: %w", err)
	}
	roles := make([]domain.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, mapping.ToDomainRole(d))
	}
	return roles, nil
}

func (r *MongoRoleRepository) SaveRole(ctx context.Context, role domain.Role) (*domain.Role, error) {
	role.ID = ""
	doc, err := mapping.ToModelRole(role)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc.CreatedAt, doc.UpdatedAt = ts, ts
	if doc.Users == nil {
		doc.Users = []bson.ObjectID{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("role", err)
	}
	doc.ID = insertedID(res)
	saved := mapping.ToDomainRole(doc)
	return &saved, nil
}

// UpdateRole replaces the role's name, department, permissions and status. Users are left untouched.
func (r *MongoRoleRepository) UpdateRole(ctx context.Context, role domain.Role) (*domain.Role, error) {
	doc, err := mapping.ToModelRole(role)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"role":        doc.Role,
		"department":  doc.Department,
		"permissions": doc.Permissions,
		"status":      doc.Status,
		"updatedAt":   now(),
	}}
	var updated models.Role
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": doc.ID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, mapFindErr("role", role.ID, err)
	}
	out := mapping.ToDomainRole(updated)
	return &out, nil
}

func (r *MongoRoleRepository) AddUsersToRole(ctx context.Context, roleID string, userIDs []string) (*domain.Role, error) {
	oid, err := lookupID("role", roleID)
	if err != nil {
		return nil, err
	}
	users, err := mapping.ToObjectIDs("userIds", userIDs)
	if err != nil {
		return nil, err
	}

	var updated models.Role
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"users": bson.M{"$each": users}}, "$set": bson.M{"updatedAt": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, mapFindErr("role", roleID, err)
	}

	// A user holds one role at a time.
	_, err = r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": oid}, "users": bson.M{"$in": users}},
		bson.M{"$pull": bson.M{"users": bson.M{"$in": users}}, "$set": bson.M{"updatedAt": now()}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to unmap users from previous roles: %w", err)
	}

	out := mapping.ToDomainRole(updated)
	return &out, nil
}

func (r *MongoRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	oid, err := lookupID("role", roleID)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete role %s: %w", roleID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("role %s: %w", roleID, apperrors.ErrNotFound)
	}
	return nil
}

// MongoPermissionRepository implements portsrepo.PermissionRepositoryFacade
type MongoPermissionRepository struct {
	BaseRepository
	coll  *mongo.Collection
	roles *mongo.Collection
}

// NewPermissionRepository creates a new repository for permissions
func NewPermissionRepository(db *mongo.Database) *MongoPermissionRepository {
	return &MongoPermissionRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(permissionsCollection),
		roles:          db.Collection(rolesCollection),
	}
}

var _ portsrepo.PermissionRepositoryFacade = (*MongoPermissionRepository)(nil)

func (r *MongoPermissionRepository) SavePermission(ctx context.Context, permission domain.Permission) (*domain.Permission, error) {
	doc := models.Permission{Category: permission.Category, Actions: permission.Actions}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("permission", err)
	}
	doc.ID = insertedID(res)
	saved := mapping.ToDomainPermission(doc)
	return &saved, nil
}

func (r *MongoPermissionRepository) UpdatePermissionActions(ctx context.Context, permissionID string, actions []string) error {
	oid, err := lookupID("permission", permissionID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"actions": actions}})
	if err != nil {
		return fmt.Errorf("failed to update permission %s: %w", permissionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("permission %s: %w", permissionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoPermissionRepository) FindPermissionsByIDs(ctx context.Context, ids []string) ([]domain.Permission, error) {
	oids, err := mapping.ToObjectIDs("permissions", ids)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Permission
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}
	out := make([]domain.Permission, 0, len(docs))
	for _, d := range docs {
		out = append(out, mapping.ToDomainPermission(d))
	}
	return out, nil
}

func (r *MongoPermissionRepository) DeletePermissions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	oids, err := mapping.ToObjectIDs("permissions", ids)
	if err != nil {
		return err
	}

	var referenced []bson.ObjectID
	err = r.roles.Distinct(ctx, "permissions", bson.M{"permissions": bson.M{"$in": oids}}).Decode(&referenced)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check permission references: %w", err)
	}
	inUse := make(map[bson.ObjectID]struct{}, len(referenced))
	for _, id := range referenced {
		inUse[id] = struct{}{}
	}
	unused := make([]bson.ObjectID, 0, len(oids))
	for _, id := range oids {
		if _, ok := inUse[id]; !ok {
			unused = append(unused, id)
		}
	}
	if len(unused) == 0 {
		return nil
	}
	if _, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": unused}}); err != nil {
		return fmt.Errorf("failed to delete permissions: %w", err)
	}
	return nil
}
