package repository

import (
	"clinic-cms/internal/domain/entity"

	"gorm.io/gorm"
)

type SiteSettingsRepository interface {
	// Get returns the settings row, creating it with defaults when missing.
	Get(db *gorm.DB) (*entity.SiteSettings, error)
	Save(db *gorm.DB, settings *entity.SiteSettings) error
}
