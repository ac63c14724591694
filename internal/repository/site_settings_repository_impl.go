package repository

import (
	"errors"

	"clinic-cms/internal/domain/entity"
	domainRepo "clinic-cms/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type siteSettingsRepository struct{}

func NewSiteSettingsRepository() domainRepo.SiteSettingsRepository {
	return &siteSettingsRepository{}
}

func (r *siteSettingsRepository) Get(db *gorm.DB) (*entity.SiteSettings, error) {
	var settings entity.SiteSettings
	err := db.Where("id = ?", entity.SiteSettingsID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = entity.DefaultSiteSettings()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *siteSettingsRepository) Save(db *gorm.DB, settings *entity.SiteSettings) error {
	settings.ID = entity.SiteSettingsID
	return db.Save(settings).Error
}
