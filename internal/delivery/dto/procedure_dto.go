package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// ProcedureRequest is used for both create and full update.
type ProcedureRequest struct {
	TreatmentCategoryID *uuid.UUID       `json:"treatment_category_id"`
	Title               string           `json:"title" validate:"required,min=2,max=200"`
	Slug                string           `json:"slug" validate:"omitempty,max=200,slug"`
	Summary             string           `json:"summary" validate:"max=1000"`
	Content             string           `json:"content"`
	ImageURL            string           `json:"image_url" validate:"omitempty,url,max=500"`
	Duration            string           `json:"duration" validate:"max=100"`
	RecoveryTime        string           `json:"recovery_time" validate:"max=100"`
	PriceFrom           *decimal.Decimal `json:"price_from"`
	Status              string           `json:"status" validate:"required,oneof=draft published archived"`
	IsFeatured          bool             `json:"is_featured"`
	SortOrder           int              `json:"sort_order" validate:"gte=0"`
	MetaTitle           string           `json:"meta_title" validate:"max=200"`
	MetaDescription     string           `json:"meta_description" validate:"max=500"`
}

// Response DTOs

type ProcedureResponse struct {
	ID                  uuid.UUID                 `json:"id"`
	TreatmentCategoryID *uuid.UUID                `json:"treatment_category_id,omitempty"`
	TreatmentCategory   *TreatmentCategorySummary `json:"treatment_category,omitempty"`
	Title               string                    `json:"title"`
	Slug                string                    `json:"slug"`
	Summary             string                    `json:"summary"`
	Content             string                    `json:"content"`
	ImageURL            string                    `json:"image_url"`
	Duration            string                    `json:"duration"`
	RecoveryTime        string                    `json:"recovery_time"`
	PriceFrom           *decimal.Decimal          `json:"price_from,omitempty"`
	Status              string                    `json:"status"`
	IsFeatured          bool                      `json:"is_featured"`
	SortOrder           int                       `json:"sort_order"`
	MetaTitle           string                    `json:"meta_title"`
	MetaDescription     string                    `json:"meta_description"`
	PublishedAt         *time.Time                `json:"published_at,omitempty"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

type ProcedureSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}
