package repository

import (
	"errors"

	"clinic-cms/internal/domain/entity"
	domainRepo "clinic-cms/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type treatmentCategoryRepository struct{}

func NewTreatmentCategoryRepository() domainRepo.TreatmentCategoryRepository {
	return &treatmentCategoryRepository{}
}

func (r *treatmentCategoryRepository) Create(db *gorm.DB, category *entity.TreatmentCategory) error {
	return db.Omit(clause.Associations).Create(category).Error
}

func (r *treatmentCategoryRepository) FindAll(db *gorm.DB, filter entity.TreatmentCategoryFilter) ([]entity.TreatmentCategory, int64, error) {
	var categories []entity.TreatmentCategory
	var total int64

	query := db.Model(&entity.TreatmentCategory{}).Scopes(search(filter.Search, "name"))
	if filter.ExpertiseAreaID != nil {
		query = query.Where("expertise_area_id = ?", *filter.ExpertiseAreaID)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("ExpertiseArea").
		Scopes(paginate(filter.Pagination)).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *treatmentCategoryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TreatmentCategory, error) {
	var category entity.TreatmentCategory
	err := db.Preload("ExpertiseArea").Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *treatmentCategoryRepository) FindBySlug(db *gorm.DB, slug string) (*entity.TreatmentCategory, error) {
	var category entity.TreatmentCategory
	err := db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// FindAllWithPublishedProcedures loads every category with only its
// published procedures attached.
func (r *treatmentCategoryRepository) FindAllWithPublishedProcedures(db *gorm.DB) ([]entity.TreatmentCategory, error) {
	var categories []entity.TreatmentCategory
	err := db.Preload("Procedures", func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", entity.ContentStatusPublished).Order("sort_order ASC, title ASC")
	}).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *treatmentCategoryRepository) SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error) {
	var total int64
	query := db.Model(&entity.TreatmentCategory{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *treatmentCategoryRepository) CountByExpertiseArea(db *gorm.DB, areaID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.TreatmentCategory{}).Where("expertise_area_id = ?", areaID).Count(&total).Error
	return total, err
}

func (r *treatmentCategoryRepository) Update(db *gorm.DB, category *entity.TreatmentCategory) error {
	return db.Omit(clause.Associations).Save(category).Error
}

func (r *treatmentCategoryRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.TreatmentCategory{})
	return result.RowsAffected, result.Error
}
