package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"admindash/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryContentRepository is an in-process ContentRepository used by
// tests and local development without a MongoDB instance.
type MemoryContentRepository struct {
	mu    sync.RWMutex
	items map[string]model.Content
}

func NewMemoryContentRepository() *MemoryContentRepository {
	return &MemoryContentRepository{items: make(map[string]model.Content)}
}

func (r *MemoryContentRepository) Create(ctx context.Context, content *model.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if content.ID.IsZero() {
		content.ID = primitive.NewObjectID()
	}
	content.CreatedAt = now
	content.UpdatedAt = now
	r.items[content.ID.Hex()] = *content
	return nil
}

func (r *MemoryContentRepository) GetByID(ctx context.Context, id string) (*model.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *MemoryContentRepository) IncrementViews(ctx context.Context, id string) (*model.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	c.Views++
	r.items[id] = c
	return &c, nil
}

func (r *MemoryContentRepository) List(ctx context.Context, filter ContentFilter, page, limit int64) ([]model.Content, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []model.Content{}
	for _, c := range r.items {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.ContentType != "" && c.ContentType != filter.ContentType {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= total {
		return []model.Content{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *MemoryContentRepository) Update(ctx context.Context, content *model.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	content.UpdatedAt = time.Now().UTC()
	r.items[content.ID.Hex()] = *content
	return nil
}

func (r *MemoryContentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *MemoryContentRepository) Stats(ctx context.Context) (model.ContentStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats model.ContentStats
	for _, c := range r.items {
		stats.TotalContent++
		stats.TotalViews += c.Views
		switch c.Status {
		case model.StatusPublished:
			stats.PublishedContent++
		case model.StatusDraft:
			stats.DraftContent++
		case model.StatusArchived:
			stats.ArchivedContent++
		}
	}
	return stats, nil
}
