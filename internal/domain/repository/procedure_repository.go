package repository

import (
	"clinic-cms/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcedureRepository interface {
	Create(db *gorm.DB, procedure *entity.Procedure) error
	FindAll(db *gorm.DB, filter entity.ProcedureFilter) ([]entity.Procedure, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Procedure, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.Procedure, error)
	FindPublished(db *gorm.DB, filter entity.ProcedureFilter) ([]entity.Procedure, error)
	FindPublishedBySlug(db *gorm.DB, slug string) (*entity.Procedure, error)
	FindRelated(db *gorm.DB, procedure *entity.Procedure, limit int) ([]entity.Procedure, error)
	SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error)
	CountByCategory(db *gorm.DB, categoryID uuid.UUID) (int64, error)
	CountByStatus(db *gorm.DB) (map[entity.ContentStatus]int64, error)
	Update(db *gorm.DB, procedure *entity.Procedure) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
