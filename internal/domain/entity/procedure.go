package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Procedure is a treatment or service offered by the clinic.
type Procedure struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TreatmentCategoryID *uuid.UUID       `gorm:"type:uuid;index" json:"treatment_category_id,omitempty"`
	Title               string           `gorm:"type:varchar(200);not null" json:"title"`
	Slug                string           `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Summary             string           `gorm:"type:text" json:"summary"`
	Content             string           `gorm:"type:text" json:"content"`
	ImageURL            string           `gorm:"type:varchar(500)" json:"image_url"`
	Duration            string           `gorm:"type:varchar(100)" json:"duration"`
	RecoveryTime        string           `gorm:"type:varchar(100)" json:"recovery_time"`
	PriceFrom           *decimal.Decimal `gorm:"type:decimal(12,2)" json:"price_from,omitempty"`
	Status              ContentStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	IsFeatured          bool             `gorm:"not null;index" json:"is_featured"`
	SortOrder           int              `gorm:"not null;default:0;index" json:"sort_order"`
	MetaTitle           string           `gorm:"type:varchar(200)" json:"meta_title"`
	MetaDescription     string           `gorm:"type:varchar(500)" json:"meta_description"`
	PublishedAt         *time.Time       `gorm:"index" json:"published_at,omitempty"`
	CreatedAt           time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	TreatmentCategory *TreatmentCategory `gorm:"foreignKey:TreatmentCategoryID" json:"treatment_category,omitempty"`
	FAQs              []FAQ              `gorm:"foreignKey:ProcedureID" json:"faqs,omitempty"`
}

func (Procedure) TableName() string {
	return "procedures"
}

func (p *Procedure) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (p *Procedure) IsPublished() bool {
	return p.Status == ContentStatusPublished
}

// StampPublished records the first publication time.
func (p *Procedure) StampPublished(now time.Time) {
	stampPublished(p.Status, &p.PublishedAt, now)
}
