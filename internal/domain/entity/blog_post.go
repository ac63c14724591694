package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost is an article on the public blog.
type BlogPost struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID      *uuid.UUID    `gorm:"type:uuid;index" json:"category_id,omitempty"`
	AuthorID        *uuid.UUID    `gorm:"type:uuid;index" json:"author_id,omitempty"`
	Title           string        `gorm:"type:varchar(200);not null" json:"title"`
	Slug            string        `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Excerpt         string        `gorm:"type:text" json:"excerpt"`
	Content         string        `gorm:"type:text" json:"content"`
	CoverImageURL   string        `gorm:"type:varchar(500)" json:"cover_image_url"`
	Status          ContentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	MetaTitle       string        `gorm:"type:varchar(200)" json:"meta_title"`
	MetaDescription string        `gorm:"type:varchar(500)" json:"meta_description"`
	PublishedAt     *time.Time    `gorm:"index" json:"published_at,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

func (b *BlogPost) IsPublished() bool {
	return b.Status == ContentStatusPublished
}

// StampPublished records the first publication time.
func (b *BlogPost) StampPublished(now time.Time) {
	stampPublished(b.Status, &b.PublishedAt, now)
}
