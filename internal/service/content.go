package service

import (
	"context"
	"strings"

	"admindash/internal/model"
	"admindash/internal/repository"
)

type ContentService struct {
	content repository.ContentRepository
	users   repository.UserRepository
}

func NewContentService(content repository.ContentRepository, users repository.UserRepository) *ContentService {
	return &ContentService{content: content, users: users}
}

func (s *ContentService) List(ctx context.Context, filter repository.ContentFilter, page, limit int64) ([]model.Content, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, Pagination{}, invalidRequest("invalid status filter")
	}
	if filter.ContentType != "" && !filter.ContentType.Valid() {
		return nil, Pagination{}, invalidRequest("invalid contentType filter")
	}

	items, total, err := s.content.List(ctx, filter, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	if err := s.populateAuthors(ctx, items); err != nil {
		return nil, Pagination{}, err
	}
	return items, paginate(page, limit, total), nil
}

// Get fetches one content item and increments its view counter as an
// observable side effect. Repeated reads keep incrementing.
func (s *ContentService) Get(ctx context.Context, id string) (*model.Content, error) {
	content, err := s.content.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, notFound("Content not found")
	}
	items := []model.Content{*content}
	if err := s.populateAuthors(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

type CreateContentInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ContentType model.ContentType   `json:"contentType"`
	Status      model.ContentStatus `json:"status"`
}

func (s *ContentService) Create(ctx context.Context, authorID string, in CreateContentInput) (*model.Content, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidRequest("title required")
	}
	if !in.ContentType.Valid() {
		return nil, invalidRequest("invalid contentType")
	}
	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !status.Valid() {
		return nil, invalidRequest("invalid status")
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, notFound("User not found")
	}

	content := &model.Content{
		Title:       title,
		Description: in.Description,
		ContentType: in.ContentType,
		Status:      status,
		AuthorID:    author.ID,
		IsActive:    true,
	}
	if err := s.content.Create(ctx, content); err != nil {
		return nil, err
	}
	content.Author = &model.AuthorRef{ID: author.ID, Name: author.Name, Email: author.Email}
	return content, nil
}

type UpdateContentInput struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	ContentType *model.ContentType   `json:"contentType"`
	Status      *model.ContentStatus `json:"status"`
	IsActive    *bool                `json:"isActive"`
}

func (s *ContentService) Update(ctx context.Context, id string, in UpdateContentInput) (*model.Content, error) {
	content, err := s.content.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, notFound("Content not found")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, invalidRequest("title cannot be empty")
		}
		content.Title = title
	}
	if in.Description != nil {
		content.Description = *in.Description
	}
	if in.ContentType != nil {
		if !in.ContentType.Valid() {
			return nil, invalidRequest("invalid contentType")
		}
		content.ContentType = *in.ContentType
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalidRequest("invalid status")
		}
		content.Status = *in.Status
	}
	if in.IsActive != nil {
		content.IsActive = *in.IsActive
	}

	if err := s.content.Update(ctx, content); err != nil {
		return nil, err
	}
	items := []model.Content{*content}
	if err := s.populateAuthors(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *ContentService) Delete(ctx context.Context, id string) error {
	content, err := s.content.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if content == nil {
		return notFound("Content not found")
	}
	return s.content.Delete(ctx, id)
}

func (s *ContentService) Stats(ctx context.Context) (model.ContentStats, error) {
	return s.content.Stats(ctx)
}

// populateAuthors resolves the author reference on each item to its
// name/email projection. Deleted authors leave the field empty.
func (s *ContentService) populateAuthors(ctx context.Context, items []model.Content) error {
	refs := map[string]*model.AuthorRef{}
	for i := range items {
		id := items[i].AuthorID.Hex()
		ref, seen := refs[id]
		if !seen {
			author, err := s.users.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if author != nil {
				ref = &model.AuthorRef{ID: author.ID, Name: author.Name, Email: author.Email}
			}
			refs[id] = ref
		}
		items[i].Author = ref
	}
	return nil
}
