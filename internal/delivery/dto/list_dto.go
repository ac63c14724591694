package dto

import "github.com/google/uuid"

// ListQuery carries the pagination and search parameters shared by every
// admin list endpoint.
type ListQuery struct {
	Page   int    `json:"page" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=0,lte=100"`
	Search string `json:"search" validate:"max=200"`
}

type ProcedureListQuery struct {
	ListQuery
	Status     string     `json:"status" validate:"omitempty,oneof=draft published archived"`
	CategoryID *uuid.UUID `json:"category_id"`
	Featured   *bool      `json:"featured"`
}

type TreatmentCategoryListQuery struct {
	ListQuery
	ExpertiseAreaID *uuid.UUID `json:"expertise_area_id"`
}

type BlogPostListQuery struct {
	ListQuery
	Status     string     `json:"status" validate:"omitempty,oneof=draft published archived"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type FAQListQuery struct {
	ListQuery
	ProcedureID *uuid.UUID `json:"procedure_id"`
	Global      bool       `json:"global"`
}

type AppointmentRequestListQuery struct {
	ListQuery
	Status string `json:"status" validate:"omitempty,oneof=new contacted scheduled completed cancelled"`
}

type AuditLogListQuery struct {
	ListQuery
	Action string `json:"action" validate:"max=100"`
}
