package repository

import (
	"clinic-cms/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(db *gorm.DB, category *entity.Category) error
	FindAll(db *gorm.DB, filter entity.CategoryFilter) ([]entity.Category, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Category, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.Category, error)
	SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error)
	Update(db *gorm.DB, category *entity.Category) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
