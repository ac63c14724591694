package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TreatmentCategory groups procedures, optionally under an expertise area.
type TreatmentCategory struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ExpertiseAreaID *uuid.UUID `gorm:"type:uuid;index" json:"expertise_area_id,omitempty"`
	Name            string     `gorm:"type:varchar(150);not null" json:"name"`
	Slug            string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Description     string     `gorm:"type:text" json:"description"`
	SortOrder       int        `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	ExpertiseArea *ExpertiseArea `gorm:"foreignKey:ExpertiseAreaID" json:"expertise_area,omitempty"`
	Procedures    []Procedure    `gorm:"foreignKey:TreatmentCategoryID" json:"procedures,omitempty"`
}

func (TreatmentCategory) TableName() string {
	return "treatment_categories"
}

func (c *TreatmentCategory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
