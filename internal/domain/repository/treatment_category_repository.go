package repository

import (
	"clinic-cms/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentCategoryRepository interface {
	Create(db *gorm.DB, category *entity.TreatmentCategory) error
	FindAll(db *gorm.DB, filter entity.TreatmentCategoryFilter) ([]entity.TreatmentCategory, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TreatmentCategory, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.TreatmentCategory, error)
	FindAllWithPublishedProcedures(db *gorm.DB) ([]entity.TreatmentCategory, error)
	SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error)
	CountByExpertiseArea(db *gorm.DB, areaID uuid.UUID) (int64, error)
	Update(db *gorm.DB, category *entity.TreatmentCategory) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
