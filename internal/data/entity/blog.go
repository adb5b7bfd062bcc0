package entity

import (
	"time"

	"github.com/google/uuid"
)

type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

type Blog struct {
	Base
	AuthorID     uuid.UUID  `db:"author_id"`
	Title        string     `db:"title"`
	Slug         string     `db:"slug"`
	Summary      *string    `db:"summary"`
	Content      string     `db:"content"`
	ThumbnailURL *string    `db:"thumbnail_url"`
	Status       BlogStatus `db:"status"`
	PublishedAt  *time.Time `db:"published_at"`

	AuthorName string `db:"-"`
}

type BlogFilter struct {
	Keyword       string
	Status        string
	PublishedOnly bool
}
