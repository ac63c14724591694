package repository

import (
	"clinic-cms/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPostRepository interface {
	Create(db *gorm.DB, post *entity.BlogPost) error
	FindAll(db *gorm.DB, filter entity.BlogPostFilter) ([]entity.BlogPost, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.BlogPost, error)
	FindPublished(db *gorm.DB, filter entity.BlogPostFilter) ([]entity.BlogPost, int64, error)
	FindPublishedBySlug(db *gorm.DB, slug string) (*entity.BlogPost, error)
	SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error)
	CountByCategory(db *gorm.DB, categoryID uuid.UUID) (int64, error)
	CountByStatus(db *gorm.DB) (map[entity.ContentStatus]int64, error)
	Update(db *gorm.DB, post *entity.BlogPost) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
