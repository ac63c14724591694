package repository

import (
	"clinic-cms/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpertiseAreaRepository interface {
	Create(db *gorm.DB, area *entity.ExpertiseArea) error
	FindAll(db *gorm.DB, filter entity.ExpertiseAreaFilter) ([]entity.ExpertiseArea, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ExpertiseArea, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.ExpertiseArea, error)
	FindBySlugWithCatalog(db *gorm.DB, slug string) (*entity.ExpertiseArea, error)
	FindAllWithCategories(db *gorm.DB) ([]entity.ExpertiseArea, error)
	SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error)
	Update(db *gorm.DB, area *entity.ExpertiseArea) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
