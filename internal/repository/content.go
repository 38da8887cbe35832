package repository

import (
	"context"
	"time"

	"admindash/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentFilter narrows content listings. Zero values match everything.
type ContentFilter struct {
	Status      model.ContentStatus
	ContentType model.ContentType
}

// ContentRepository is the persistence boundary for content items.
// Lookups return (nil, nil) when no document matches.
type ContentRepository interface {
	Create(ctx context.Context, content *model.Content) error
	GetByID(ctx context.Context, id string) (*model.Content, error)
	IncrementViews(ctx context.Context, id string) (*model.Content, error)
	List(ctx context.Context, filter ContentFilter, page, limit int64) ([]model.Content, int64, error)
	Update(ctx context.Context, content *model.Content) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (model.ContentStats, error)
}

type MongoContentRepository struct {
	collection *mongo.Collection
}

func NewMongoContentRepository(db *mongo.Database) *MongoContentRepository {
	return &MongoContentRepository{collection: db.Collection("content")}
}

func (r *MongoContentRepository) Create(ctx context.Context, content *model.Content) error {
	now := time.Now().UTC()
	if content.ID.IsZero() {
		content.ID = primitive.NewObjectID()
	}
	content.CreatedAt = now
	content.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, content)
	return err
}

func (r *MongoContentRepository) GetByID(ctx context.Context, id string) (*model.Content, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var content model.Content
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&content)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// IncrementViews atomically bumps the view counter and returns the
// updated document.
func (r *MongoContentRepository) IncrementViews(ctx context.Context, id string) (*model.Content, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	update := bson.M{"$inc": bson.M{"views": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var content model.Content
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&content)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *MongoContentRepository) List(ctx context.Context, filter ContentFilter, page, limit int64) ([]model.Content, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ContentType != "" {
		query["contentType"] = filter.ContentType
	}

	skip := (page - 1) * limit
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := []model.Content{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoContentRepository) Update(ctx context.Context, content *model.Content) error {
	content.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": content.ID}, content)
	return err
}

func (r *MongoContentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *MongoContentRepository) Stats(ctx context.Context) (model.ContentStats, error) {
	var stats model.ContentStats
	var err error

	if stats.TotalContent, err = r.collection.CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}
	if stats.PublishedContent, err = r.collection.CountDocuments(ctx, bson.M{"status": model.StatusPublished}); err != nil {
		return stats, err
	}
	if stats.DraftContent, err = r.collection.CountDocuments(ctx, bson.M{"status": model.StatusDraft}); err != nil {
		return stats, err
	}
	if stats.ArchivedContent, err = r.collection.CountDocuments(ctx, bson.M{"status": model.StatusArchived}); err != nil {
		return stats, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "totalViews": bson.M{"$sum": "$views"}}}},
	}
	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return stats, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		TotalViews int64 `bson:"totalViews"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return stats, err
	}
	if len(rows) > 0 {
		stats.TotalViews = rows[0].TotalViews
	}
	return stats, nil
}
