package repository

import (
	"errors"

	"clinic-cms/internal/domain/entity"
	domainRepo "clinic-cms/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryRepository struct{}

func NewCategoryRepository() domainRepo.CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(db *gorm.DB, category *entity.Category) error {
	return db.Create(category).Error
}

func (r *categoryRepository) FindAll(db *gorm.DB, filter entity.CategoryFilter) ([]entity.Category, int64, error) {
	var categories []entity.Category
	var total int64

	query := db.Model(&entity.Category{}).
		Scopes(search(filter.Search, "name")).
		Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(paginate(filter.Pagination)).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(db *gorm.DB, slug string) (*entity.Category, error) {
	var category entity.Category
	err := db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error) {
	var total int64
	query := db.Model(&entity.Category{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *categoryRepository) Update(db *gorm.DB, category *entity.Category) error {
	return db.Save(category).Error
}

func (r *categoryRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Category{})
	return result.RowsAffected, result.Error
}
