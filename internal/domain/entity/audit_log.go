package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog records an admin action with before/after values
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit actions recorded by the admin panel
const (
	AuditActionUserLogin          = "user.login"
	AuditActionUserLogout         = "user.logout"
	AuditActionUserPasswordChange = "user.password_change"
	AuditActionUserCreate         = "user.create"
	AuditActionUserUpdate         = "user.update"
	AuditActionUserDelete         = "user.delete"

	AuditActionProcedureCreate = "procedure.create"
	AuditActionProcedureUpdate = "procedure.update"
	AuditActionProcedureDelete = "procedure.delete"

	AuditActionTreatmentCategoryCreate = "treatment_category.create"
	AuditActionTreatmentCategoryUpdate = "treatment_category.update"
	AuditActionTreatmentCategoryDelete = "treatment_category.delete"

	AuditActionExpertiseAreaCreate = "expertise_area.create"
	AuditActionExpertiseAreaUpdate = "expertise_area.update"
	AuditActionExpertiseAreaDelete = "expertise_area.delete"

	AuditActionBlogPostCreate = "blog_post.create"
	AuditActionBlogPostUpdate = "blog_post.update"
	AuditActionBlogPostDelete = "blog_post.delete"

	AuditActionCategoryCreate = "category.create"
	AuditActionCategoryUpdate = "category.update"
	AuditActionCategoryDelete = "category.delete"

	AuditActionFAQCreate = "faq.create"
	AuditActionFAQUpdate = "faq.update"
	AuditActionFAQDelete = "faq.delete"

	AuditActionAppointmentUpdate = "appointment_request.update"
	AuditActionAppointmentDelete = "appointment_request.delete"

	AuditActionSettingsUpdate = "settings.update"
	AuditActionScriptRun      = "script.run"
)
