package repository

import (
	"context"
	"time"

	"admindash/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsRepository is the persistence boundary for metric events.
// Events are append-only; there are no update or delete operations.
type AnalyticsRepository interface {
	Insert(ctx context.Context, event *model.AnalyticsEvent) error
	CountSince(ctx context.Context, metric model.MetricType, since time.Time) (int64, error)
	SumAll(ctx context.Context, metric model.MetricType) (float64, error)
	CountTrend(ctx context.Context, metric model.MetricType, since time.Time) ([]model.TrendPoint, error)
	SumTrend(ctx context.Context, metric model.MetricType, since time.Time) ([]model.SalesTrendPoint, error)
}

type MongoAnalyticsRepository struct {
	collection *mongo.Collection
}

func NewMongoAnalyticsRepository(db *mongo.Database) *MongoAnalyticsRepository {
	return &MongoAnalyticsRepository{collection: db.Collection("analytics")}
}

// EnsureIndexes creates the compound index used by trend queries.
func (r *MongoAnalyticsRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "metricType", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}

func (r *MongoAnalyticsRepository) Insert(ctx context.Context, event *model.AnalyticsEvent) error {
	now := time.Now().UTC()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Date.IsZero() {
		event.Date = now
	}
	event.CreatedAt = now
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

func (r *MongoAnalyticsRepository) CountSince(ctx context.Context, metric model.MetricType, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"metricType": metric,
		"date":       bson.M{"$gte": since},
	})
}

func (r *MongoAnalyticsRepository) SumAll(ctx context.Context, metric model.MetricType) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"metricType": metric}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$value"}}}},
	}
	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoAnalyticsRepository) CountTrend(ctx context.Context, metric model.MetricType, since time.Time) ([]model.TrendPoint, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"metricType": metric, "date": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	points := []model.TrendPoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *MongoAnalyticsRepository) SumTrend(ctx context.Context, metric model.MetricType, since time.Time) ([]model.SalesTrendPoint, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"metricType": metric, "date": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
			"totalSales": bson.M{"$sum": "$value"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	points := []model.SalesTrendPoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}
