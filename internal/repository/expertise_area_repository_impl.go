package repository

import (
	"errors"

	"clinic-cms/internal/domain/entity"
	domainRepo "clinic-cms/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type expertiseAreaRepository struct{}

func NewExpertiseAreaRepository() domainRepo.ExpertiseAreaRepository {
	return &expertiseAreaRepository{}
}

func (r *expertiseAreaRepository) Create(db *gorm.DB, area *entity.ExpertiseArea) error {
	return db.Omit(clause.Associations).Create(area).Error
}

func (r *expertiseAreaRepository) FindAll(db *gorm.DB, filter entity.ExpertiseAreaFilter) ([]entity.ExpertiseArea, int64, error) {
	var areas []entity.ExpertiseArea
	var total int64

	query := db.Model(&entity.ExpertiseArea{}).
		Scopes(search(filter.Search, "name")).
		Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(paginate(filter.Pagination)).
		Order("sort_order ASC, name ASC").
		Find(&areas).Error
	if err != nil {
		return nil, 0, err
	}
	return areas, total, nil
}

func (r *expertiseAreaRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ExpertiseArea, error) {
	var area entity.ExpertiseArea
	err := db.Where("id = ?", id).First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

func (r *expertiseAreaRepository) FindBySlug(db *gorm.DB, slug string) (*entity.ExpertiseArea, error) {
	var area entity.ExpertiseArea
	err := db.Where("slug = ?", slug).First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

// FindBySlugWithCatalog loads the area with its treatment categories and
// their published procedures.
func (r *expertiseAreaRepository) FindBySlugWithCatalog(db *gorm.DB, slug string) (*entity.ExpertiseArea, error) {
	var area entity.ExpertiseArea
	err := db.Preload("TreatmentCategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, name ASC")
	}).
		Preload("TreatmentCategories.Procedures", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", entity.ContentStatusPublished).Order("sort_order ASC, title ASC")
		}).
		Where("slug = ?", slug).
		First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

func (r *expertiseAreaRepository) FindAllWithCategories(db *gorm.DB) ([]entity.ExpertiseArea, error) {
	var areas []entity.ExpertiseArea
	err := db.Preload("TreatmentCategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, name ASC")
	}).
		Order("sort_order ASC, name ASC").
		Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *expertiseAreaRepository) SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error) {
	var total int64
	query := db.Model(&entity.ExpertiseArea{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *expertiseAreaRepository) Update(db *gorm.DB, area *entity.ExpertiseArea) error {
	return db.Omit(clause.Associations).Save(area).Error
}

func (r *expertiseAreaRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.ExpertiseArea{})
	return result.RowsAffected, result.Error
}
