package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FAQ is a question/answer pair. A nil ProcedureID marks a global FAQ.
type FAQ struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProcedureID *uuid.UUID `gorm:"type:uuid;index" json:"procedure_id,omitempty"`
	Question    string     `gorm:"type:varchar(500);not null" json:"question"`
	Answer      string     `gorm:"type:text;not null" json:"answer"`
	SortOrder   int        `gorm:"not null;default:0;index" json:"sort_order"`
	IsPublished bool       `gorm:"not null;index" json:"is_published"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Procedure *Procedure `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`
}

func (FAQ) TableName() string {
	return "faqs"
}

func (f *FAQ) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

func (f *FAQ) IsGlobal() bool {
	return f.ProcedureID == nil
}
