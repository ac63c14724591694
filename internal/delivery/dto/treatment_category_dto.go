package dto

import (
	"time"

	"github.com/google/uuid"
)

type TreatmentCategoryRequest struct {
	ExpertiseAreaID *uuid.UUID `json:"expertise_area_id"`
	Name            string     `json:"name" validate:"required,min=2,max=150"`
	Slug            string     `json:"slug" validate:"omitempty,max=200,slug"`
	Description     string     `json:"description" validate:"max=2000"`
	SortOrder       int        `json:"sort_order" validate:"gte=0"`
}

type TreatmentCategoryResponse struct {
	ID              uuid.UUID             `json:"id"`
	ExpertiseAreaID *uuid.UUID            `json:"expertise_area_id,omitempty"`
	ExpertiseArea   *ExpertiseAreaSummary `json:"expertise_area,omitempty"`
	Name            string                `json:"name"`
	Slug            string                `json:"slug"`
	Description     string                `json:"description"`
	SortOrder       int                   `json:"sort_order"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

type TreatmentCategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}
