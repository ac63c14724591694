package repository

import (
	"clinic-cms/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FAQRepository interface {
	Create(db *gorm.DB, faq *entity.FAQ) error
	FindAll(db *gorm.DB, filter entity.FAQFilter) ([]entity.FAQ, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.FAQ, error)
	FindByQuestion(db *gorm.DB, procedureID *uuid.UUID, question string) (*entity.FAQ, error)
	FindPublished(db *gorm.DB, procedureID *uuid.UUID) ([]entity.FAQ, error)
	FindPublishedForProcedures(db *gorm.DB) ([]entity.FAQ, error)
	Count(db *gorm.DB) (int64, error)
	Update(db *gorm.DB, faq *entity.FAQ) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByProcedure(db *gorm.DB, procedureID uuid.UUID) error
}
