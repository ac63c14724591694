package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContentStatus is the publication state shared by procedures and blog posts.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

// stampPublished sets publishedAt the first time content becomes published.
func stampPublished(status ContentStatus, publishedAt **time.Time, now time.Time) {
	if status == ContentStatusPublished && *publishedAt == nil {
		t := now
		*publishedAt = &t
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
