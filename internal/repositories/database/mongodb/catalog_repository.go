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

// MongoCategoryRepository implements portsrepo.CategoryRepositoryFacade
type MongoCategoryRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewCategoryRepository creates a new repository for task categories
func NewCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(categoriesCollection),
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*MongoCategoryRepository)(nil)

func (r *MongoCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	ts := now()
	doc := models.Category{
		Category:    category.Name,
		TimeEntry:   string(category.TimeEntry),
		AuditFields: models.AuditFields{CreatedAt: ts, UpdatedAt: ts},
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("category", err)
	}
	doc.ID = insertedID(res)
	saved := mapping.ToDomainCategory(doc)
	return &saved, nil
}

func (r *MongoCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	oid, err := lookupID("category", categoryID)
	if err != nil {
		return nil, err
	}
	var doc models.Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr("category", categoryID, err)
	}
	category := mapping.ToDomainCategory(doc)
	return &category, nil
}

func (r *MongoCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var doc models.Category
	err := r.coll.FindOne(ctx, bson.M{"category": name}, options.FindOne().SetCollation(caseInsensitive)).Decode(&doc)
	if err != nil {
		return nil, mapFindErr("category", name, err)
	}
	category := mapping.ToDomainCategory(doc)
	return &category, nil
}

func (r *MongoCategoryRepository) FindCategories(ctx context.Context) ([]domain.Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "category", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Category
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	out := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, mapping.ToDomainCategory(d))
	}
	return out, nil
}

func (r *MongoCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	oid, err := lookupID("category", category.ID)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"category":   category.Name,
		"time_entry": string(category.TimeEntry),
		"updatedAt":  now(),
	}}
	var doc models.Category
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, mapWriteErr("category", err)
		}
		return nil, mapFindErr("category", category.ID, err)
	}
	updated := mapping.ToDomainCategory(doc)
	return &updated, nil
}

// MongoSubscriptionRepository implements portsrepo.SubscriptionRepositoryFacade
type MongoSubscriptionRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewSubscriptionRepository creates a new repository for subscriptions
func NewSubscriptionRepository(db *mongo.Database) *MongoSubscriptionRepository {
	return &MongoSubscriptionRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(subscriptionsCollection),
	}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*MongoSubscriptionRepository)(nil)

func (r *MongoSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error) {
	doc, err := mapping.ToModelSubscription(sub)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc.CreatedAt, doc.UpdatedAt = ts, ts

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("subscription", err)
	}
	doc.ID = insertedID(res)
	saved := mapping.ToDomainSubscription(doc)
	return &saved, nil
}

func (r *MongoSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	oid, err := lookupID("subscription", subscriptionID)
	if err != nil {
		return nil, err
	}
	var doc models.Subscription
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr("subscription", subscriptionID, err)
	}
	sub := mapping.ToDomainSubscription(doc)
	return &sub, nil
}

func (r *MongoSubscriptionRepository) FindSubscriptionByName(ctx context.Context, name string) (*domain.Subscription, error) {
	var doc models.Subscription
	if err := r.coll.FindOne(ctx, bson.M{"subscription_name": name}).Decode(&doc); err != nil {
		return nil, mapFindErr("subscription", name, err)
	}
	sub := mapping.ToDomainSubscription(doc)
	return &sub, nil
}

func (r *MongoSubscriptionRepository) FindSubscriptions(ctx context.Context, limit, offset int) ([]domain.Subscription, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, pageOptions(limit, offset, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Subscription
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode subscriptions: %w", err)
	}
	out := make([]domain.Subscription, 0, len(docs))
	for _, d := range docs {
		out = append(out, mapping.ToDomainSubscription(d))
	}
	return out, total, nil
}

// MongoNotificationRepository implements portsrepo.NotificationRepositoryFacade
type MongoNotificationRepository struct {
	BaseRepository
	coll *mongo.Collection
}

// NewNotificationRepository creates a new repository for notifications
func NewNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{
		BaseRepository: BaseRepository{DB: db},
		coll:           db.Collection(notificationsCollection),
	}
}

var _ portsrepo.NotificationRepositoryFacade = (*MongoNotificationRepository)(nil)

func (r *MongoNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	userID, err := mapping.ToObjectID("userId", n.UserID)
	if err != nil {
		return nil, err
	}
	doc := models.Notification{
		UserID:    userID,
		Message:   n.Message,
		Type:      string(n.Severity),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now()
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapWriteErr("notification", err)
	}
	doc.ID = insertedID(res)
	saved := mapping.ToDomainNotification(doc)
	return &saved, nil
}

func (r *MongoNotificationRepository) FindUserNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	oid, err := lookupID("user", userID)
	if err != nil {
		return []domain.Notification{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": oid}, pageOptions(limit, offset, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications of user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Notification
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	out := make([]domain.Notification, 0, len(docs))
	for _, d := range docs {
		out = append(out, mapping.ToDomainNotification(d))
	}
	return out, nil
}
