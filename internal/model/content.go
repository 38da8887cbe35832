package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentStatus is the publication state of a content item.
// There is no enforced transition graph; any status may be set directly.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ContentType categorizes a content item.
type ContentType string

const (
	TypeArticle ContentType = "article"
	TypeVideo   ContentType = "video"
	TypePodcast ContentType = "podcast"
	TypeCourse  ContentType = "course"
)

func (t ContentType) Valid() bool {
	switch t {
	case TypeArticle, TypeVideo, TypePodcast, TypeCourse:
		return true
	}
	return false
}

// Content is a managed content item. Views is monotonic and incremented
// on every detail fetch.
type Content struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	ContentType ContentType        `bson:"contentType" json:"contentType"`
	Status      ContentStatus      `bson:"status" json:"status"`
	AuthorID    primitive.ObjectID `bson:"author" json:"-"`
	Author      *AuthorRef         `bson:"-" json:"author,omitempty"`
	Views       int64              `bson:"views" json:"views"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AuthorRef is the populated author projection returned with content items.
type AuthorRef struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// ContentStats aggregates content counters for the admin dashboard.
type ContentStats struct {
	TotalContent     int64 `json:"totalContent"`
	PublishedContent int64 `json:"publishedContent"`
	DraftContent     int64 `json:"draftContent"`
	ArchivedContent  int64 `json:"archivedContent"`
	TotalViews       int64 `json:"totalViews"`
}
