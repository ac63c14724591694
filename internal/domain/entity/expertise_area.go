package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpertiseArea is the top-level grouping shown on the home page, for
// example "Plastic Surgery" or "Dental".
type ExpertiseArea struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:varchar(100)" json:"icon"`
	SortOrder   int       `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	TreatmentCategories []TreatmentCategory `gorm:"foreignKey:ExpertiseAreaID" json:"treatment_categories,omitempty"`
}

func (ExpertiseArea) TableName() string {
	return "expertise_areas"
}

func (e *ExpertiseArea) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}
