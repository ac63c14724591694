package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateAppointmentRequest is submitted by the public JSON API and the
// contact form. Website is a honeypot that real visitors never fill in.
type CreateAppointmentRequest struct {
	FullName      string     `json:"full_name" form:"full_name" validate:"required,min=2,max=120"`
	Email         string     `json:"email" form:"email" validate:"required,email,max=255"`
	Phone         string     `json:"phone" form:"phone" validate:"required,min=6,max=30"`
	ProcedureID   *uuid.UUID `json:"procedure_id" form:"procedure_id"`
	PreferredDate string     `json:"preferred_date" form:"preferred_date" validate:"omitempty,date"`
	Message       string     `json:"message" form:"message" validate:"max=2000"`
	Consent       bool       `json:"consent" form:"consent" validate:"required"`
	Website       string     `json:"website" form:"website"`
}

type UpdateAppointmentRequest struct {
	Status     string `json:"status" validate:"required,oneof=new contacted scheduled completed cancelled"`
	AdminNotes string `json:"admin_notes" validate:"max=5000"`
}

type AppointmentRequestResponse struct {
	ID            uuid.UUID         `json:"id"`
	FullName      string            `json:"full_name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	ProcedureID   *uuid.UUID        `json:"procedure_id,omitempty"`
	Procedure     *ProcedureSummary `json:"procedure,omitempty"`
	PreferredDate string            `json:"preferred_date,omitempty"`
	Message       string            `json:"message"`
	Status        string            `json:"status"`
	AdminNotes    string            `json:"admin_notes"`
	Source        string            `json:"source"`
	IPAddress     string            `json:"ip_address"`
	UserAgent     string            `json:"user_agent"`
	ContactedAt   *time.Time        `json:"contacted_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// AppointmentReceipt is the public acknowledgement of a submission.
type AppointmentReceipt struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
}
