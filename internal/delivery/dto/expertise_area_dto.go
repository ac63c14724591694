package dto

import (
	"time"

	"github.com/google/uuid"
)

type ExpertiseAreaRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Slug        string `json:"slug" validate:"omitempty,max=200,slug"`
	Description string `json:"description" validate:"max=2000"`
	Icon        string `json:"icon" validate:"max=100"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
}

type ExpertiseAreaResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ExpertiseAreaSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}
