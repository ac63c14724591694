package dto

import (
	"time"

	"github.com/google/uuid"
)

type BlogPostRequest struct {
	CategoryID      *uuid.UUID `json:"category_id"`
	Title           string     `json:"title" validate:"required,min=2,max=200"`
	Slug            string     `json:"slug" validate:"omitempty,max=200,slug"`
	Excerpt         string     `json:"excerpt" validate:"max=1000"`
	Content         string     `json:"content"`
	CoverImageURL   string     `json:"cover_image_url" validate:"omitempty,url,max=500"`
	Status          string     `json:"status" validate:"required,oneof=draft published archived"`
	MetaTitle       string     `json:"meta_title" validate:"max=200"`
	MetaDescription string     `json:"meta_description" validate:"max=500"`
}

type BlogPostResponse struct {
	ID              uuid.UUID        `json:"id"`
	CategoryID      *uuid.UUID       `json:"category_id,omitempty"`
	Category        *CategorySummary `json:"category,omitempty"`
	AuthorID        *uuid.UUID       `json:"author_id,omitempty"`
	AuthorName      string           `json:"author_name,omitempty"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Excerpt         string           `json:"excerpt"`
	Content         string           `json:"content"`
	CoverImageURL   string           `json:"cover_image_url"`
	Status          string           `json:"status"`
	MetaTitle       string           `json:"meta_title"`
	MetaDescription string           `json:"meta_description"`
	PublishedAt     *time.Time       `json:"published_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
