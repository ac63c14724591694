package dto

import (
	"time"

	"github.com/google/uuid"
)

type FAQRequest struct {
	ProcedureID *uuid.UUID `json:"procedure_id"`
	Question    string     `json:"question" validate:"required,min=3,max=500"`
	Answer      string     `json:"answer" validate:"required,max=5000"`
	SortOrder   int        `json:"sort_order" validate:"gte=0"`
	IsPublished bool       `json:"is_published"`
}

type FAQResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProcedureID *uuid.UUID        `json:"procedure_id,omitempty"`
	Procedure   *ProcedureSummary `json:"procedure,omitempty"`
	Question    string            `json:"question"`
	Answer      string            `json:"answer"`
	SortOrder   int               `json:"sort_order"`
	IsPublished bool              `json:"is_published"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
