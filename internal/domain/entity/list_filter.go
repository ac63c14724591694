package entity

import "github.com/google/uuid"

// Pagination is the page window shared by every admin list.
type Pagination struct {
	Page  int
	Limit int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = 10000
)

// Normalize clamps page and limit into their valid ranges.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ProcedureFilter is a domain-level filter for querying procedures.
// Used by repository layer to avoid coupling with delivery DTOs.
type ProcedureFilter struct {
	Pagination
	Search              string
	Status              ContentStatus
	TreatmentCategoryID *uuid.UUID
	Featured            *bool
}

type TreatmentCategoryFilter struct {
	Pagination
	Search          string
	ExpertiseAreaID *uuid.UUID
}

type ExpertiseAreaFilter struct {
	Pagination
	Search string
}

type BlogPostFilter struct {
	Pagination
	Search     string
	Status     ContentStatus
	CategoryID *uuid.UUID
}

type CategoryFilter struct {
	Pagination
	Search string
}

type FAQFilter struct {
	Pagination
	Search      string
	ProcedureID *uuid.UUID
	GlobalOnly  bool
	Published   *bool
}

type AppointmentRequestFilter struct {
	Pagination
	Search string
	Status AppointmentRequestStatus
}

type UserFilter struct {
	Pagination
	Search string
}

type AuditLogFilter struct {
	Pagination
	Action string
}
