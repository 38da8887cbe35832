package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"admindash/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryAnalyticsRepository is an in-process AnalyticsRepository used by
// tests and local development without a MongoDB instance.
type MemoryAnalyticsRepository struct {
	mu     sync.RWMutex
	events []model.AnalyticsEvent
}

func NewMemoryAnalyticsRepository() *MemoryAnalyticsRepository {
	return &MemoryAnalyticsRepository{}
}

func (r *MemoryAnalyticsRepository) Insert(ctx context.Context, event *model.AnalyticsEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Date.IsZero() {
		event.Date = now
	}
	event.CreatedAt = now
	r.events = append(r.events, *event)
	return nil
}

func (r *MemoryAnalyticsRepository) CountSince(ctx context.Context, metric model.MetricType, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, e := range r.events {
		if e.MetricType == metric && !e.Date.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryAnalyticsRepository) SumAll(ctx context.Context, metric model.MetricType) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, e := range r.events {
		if e.MetricType == metric {
			total += e.Value
		}
	}
	return total, nil
}

func (r *MemoryAnalyticsRepository) CountTrend(ctx context.Context, metric model.MetricType, since time.Time) ([]model.TrendPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	buckets := map[string]int64{}
	for _, e := range r.events {
		if e.MetricType != metric || e.Date.Before(since) {
			continue
		}
		buckets[e.Date.UTC().Format("2006-01-02")]++
	}
	return sortTrendBuckets(buckets), nil
}

func (r *MemoryAnalyticsRepository) SumTrend(ctx context.Context, metric model.MetricType, since time.Time) ([]model.SalesTrendPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	buckets := map[string]float64{}
	for _, e := range r.events {
		if e.MetricType != metric || e.Date.Before(since) {
			continue
		}
		buckets[e.Date.UTC().Format("2006-01-02")] += e.Value
	}

	points := make([]model.SalesTrendPoint, 0, len(buckets))
	for day, total := range buckets {
		points = append(points, model.SalesTrendPoint{Day: day, TotalSales: total})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points, nil
}
