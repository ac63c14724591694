package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRequestStatus tracks a lead through the front desk workflow.
type AppointmentRequestStatus string

const (
	AppointmentStatusNew       AppointmentRequestStatus = "new"
	AppointmentStatusContacted AppointmentRequestStatus = "contacted"
	AppointmentStatusScheduled AppointmentRequestStatus = "scheduled"
	AppointmentStatusCompleted AppointmentRequestStatus = "completed"
	AppointmentStatusCancelled AppointmentRequestStatus = "cancelled"
)

// AppointmentStatuses lists every status in workflow order.
var AppointmentStatuses = []AppointmentRequestStatus{
	AppointmentStatusNew,
	AppointmentStatusContacted,
	AppointmentStatusScheduled,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

func (s AppointmentRequestStatus) Valid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

const (
	AppointmentSourceWeb = "web"
	AppointmentSourceAPI = "api"
)

// AppointmentRequest is a lead captured from the public contact form.
type AppointmentRequest struct {
	ID            uuid.UUID                `gorm:"type:uuid;primaryKey" json:"id"`
	FullName      string                   `gorm:"type:varchar(120);not null" json:"full_name"`
	Email         string                   `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone         string                   `gorm:"type:varchar(30);not null" json:"phone"`
	ProcedureID   *uuid.UUID               `gorm:"type:uuid;index" json:"procedure_id,omitempty"`
	PreferredDate *time.Time               `gorm:"type:date" json:"preferred_date,omitempty"`
	Message       string                   `gorm:"type:text" json:"message"`
	Status        AppointmentRequestStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminNotes    string                   `gorm:"type:text" json:"admin_notes"`
	Source        string                   `gorm:"type:varchar(20);not null" json:"source"`
	IPAddress     string                   `gorm:"type:varchar(64)" json:"ip_address"`
	UserAgent     string                   `gorm:"type:varchar(500)" json:"user_agent"`
	ContactedAt   *time.Time               `json:"contacted_at,omitempty"`
	CreatedAt     time.Time                `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time                `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Procedure *Procedure `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`
}

func (AppointmentRequest) TableName() string {
	return "appointment_requests"
}

func (a *AppointmentRequest) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

// SetStatus changes the status and stamps ContactedAt the first time the
// request leaves "new".
func (a *AppointmentRequest) SetStatus(status AppointmentRequestStatus, now time.Time) {
	a.Status = status
	if status != AppointmentStatusNew && a.ContactedAt == nil {
		t := now
		a.ContactedAt = &t
	}
}
