package repository

import (
	"errors"

	"clinic-cms/internal/domain/entity"
	domainRepo "clinic-cms/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type procedureRepository struct{}

func NewProcedureRepository() domainRepo.ProcedureRepository {
	return &procedureRepository{}
}

func (r *procedureRepository) Create(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Omit(clause.Associations).Create(procedure).Error
}

func (r *procedureRepository) applyFilter(db *gorm.DB, filter entity.ProcedureFilter) *gorm.DB {
	db = db.Scopes(search(filter.Search, "title", "summary"))
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.TreatmentCategoryID != nil {
		db = db.Where("treatment_category_id = ?", *filter.TreatmentCategoryID)
	}
	if filter.Featured != nil {
		db = db.Where("is_featured = ?", *filter.Featured)
	}
	return db
}

func (r *procedureRepository) FindAll(db *gorm.DB, filter entity.ProcedureFilter) ([]entity.Procedure, int64, error) {
	var procedures []entity.Procedure
	var total int64

	query := r.applyFilter(db.Model(&entity.Procedure{}), filter).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("TreatmentCategory").
		Scopes(paginate(filter.Pagination)).
		Order("sort_order ASC, created_at DESC").
		Find(&procedures).Error
	if err != nil {
		return nil, 0, err
	}

	return procedures, total, nil
}

func (r *procedureRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Procedure, error) {
	var procedure entity.Procedure
	err := db.Preload("TreatmentCategory").Where("id = ?", id).First(&procedure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &procedure, nil
}

func (r *procedureRepository) FindBySlug(db *gorm.DB, slug string) (*entity.Procedure, error) {
	var procedure entity.Procedure
	err := db.Where("slug = ?", slug).First(&procedure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &procedure, nil
}

// FindPublished ignores the filter's status and pagination; public listings
// always show every published procedure.
func (r *procedureRepository) FindPublished(db *gorm.DB, filter entity.ProcedureFilter) ([]entity.Procedure, error) {
	var procedures []entity.Procedure
	filter.Status = entity.ContentStatusPublished

	err := r.applyFilter(db, filter).
		Preload("TreatmentCategory").
		Order("sort_order ASC, title ASC").
		Find(&procedures).Error
	if err != nil {
		return nil, err
	}
	return procedures, nil
}

func (r *procedureRepository) FindPublishedBySlug(db *gorm.DB, slug string) (*entity.Procedure, error) {
	var procedure entity.Procedure
	err := db.Preload("TreatmentCategory.ExpertiseArea").
		Preload("FAQs", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("sort_order ASC, created_at ASC")
		}).
		Where("slug = ? AND status = ?", slug, entity.ContentStatusPublished).
		First(&procedure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &procedure, nil
}

// FindRelated returns other published procedures of the same treatment category.
func (r *procedureRepository) FindRelated(db *gorm.DB, procedure *entity.Procedure, limit int) ([]entity.Procedure, error) {
	var procedures []entity.Procedure
	if procedure.TreatmentCategoryID == nil {
		return procedures, nil
	}
	err := db.Where("treatment_category_id = ? AND id <> ? AND status = ?",
		*procedure.TreatmentCategoryID, procedure.ID, entity.ContentStatusPublished).
		Order("sort_order ASC, title ASC").
		Limit(limit).
		Find(&procedures).Error
	if err != nil {
		return nil, err
	}
	return procedures, nil
}

func (r *procedureRepository) SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error) {
	var total int64
	query := db.Model(&entity.Procedure{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *procedureRepository) CountByCategory(db *gorm.DB, categoryID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.Procedure{}).Where("treatment_category_id = ?", categoryID).Count(&total).Error
	return total, err
}

func (r *procedureRepository) CountByStatus(db *gorm.DB) (map[entity.ContentStatus]int64, error) {
	var rows []struct {
		Status entity.ContentStatus
		Total  int64
	}
	err := db.Model(&entity.Procedure{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.ContentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *procedureRepository) Update(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Omit(clause.Associations).Save(procedure).Error
}

func (r *procedureRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Procedure{})
	return result.RowsAffected, result.Error
}
