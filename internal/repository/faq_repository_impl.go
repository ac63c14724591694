package repository

import (
	"errors"

	"clinic-cms/internal/domain/entity"
	domainRepo "clinic-cms/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type faqRepository struct{}

func NewFAQRepository() domainRepo.FAQRepository {
	return &faqRepository{}
}

func (r *faqRepository) Create(db *gorm.DB, faq *entity.FAQ) error {
	return db.Omit(clause.Associations).Create(faq).Error
}

func (r *faqRepository) FindAll(db *gorm.DB, filter entity.FAQFilter) ([]entity.FAQ, int64, error) {
	var faqs []entity.FAQ
	var total int64

	query := db.Model(&entity.FAQ{}).Scopes(search(filter.Search, "question", "answer"))
	switch {
	case filter.GlobalOnly:
		query = query.Where("procedure_id IS NULL")
	case filter.ProcedureID != nil:
		query = query.Where("procedure_id = ?", *filter.ProcedureID)
	}
	if filter.Published != nil {
		query = query.Where("is_published = ?", *filter.Published)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Procedure").
		Scopes(paginate(filter.Pagination)).
		Order("sort_order ASC, created_at ASC").
		Find(&faqs).Error
	if err != nil {
		return nil, 0, err
	}
	return faqs, total, nil
}

func (r *faqRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.FAQ, error) {
	var faq entity.FAQ
	err := db.Preload("Procedure").Where("id = ?", id).First(&faq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &faq, nil
}

func (r *faqRepository) FindByQuestion(db *gorm.DB, procedureID *uuid.UUID, question string) (*entity.FAQ, error) {
	var faq entity.FAQ
	query := db.Where("question = ?", question)
	if procedureID == nil {
		query = query.Where("procedure_id IS NULL")
	} else {
		query = query.Where("procedure_id = ?", *procedureID)
	}
	err := query.First(&faq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &faq, nil
}

// FindPublished returns published FAQs for one procedure, or the global
// ones when procedureID is nil.
func (r *faqRepository) FindPublished(db *gorm.DB, procedureID *uuid.UUID) ([]entity.FAQ, error) {
	var faqs []entity.FAQ
	query := db.Where("is_published = ?", true)
	if procedureID == nil {
		query = query.Where("procedure_id IS NULL")
	} else {
		query = query.Where("procedure_id = ?", *procedureID)
	}
	if err := query.Order("sort_order ASC, created_at ASC").Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// FindPublishedForProcedures returns published FAQs attached to published
// procedures, grouped by procedure order.
func (r *faqRepository) FindPublishedForProcedures(db *gorm.DB) ([]entity.FAQ, error) {
	var faqs []entity.FAQ
	err := db.Joins("Procedure").
		Where("faqs.is_published = ? AND faqs.procedure_id IS NOT NULL", true).
		Where(`"Procedure"."status" = ?`, entity.ContentStatusPublished).
		Order(`"Procedure"."sort_order" ASC, "Procedure"."title" ASC, faqs.sort_order ASC, faqs.created_at ASC`).
		Find(&faqs).Error
	if err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *faqRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.FAQ{}).Count(&total).Error
	return total, err
}

func (r *faqRepository) Update(db *gorm.DB, faq *entity.FAQ) error {
	return db.Omit(clause.Associations).Save(faq).Error
}

func (r *faqRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.FAQ{})
	return result.RowsAffected, result.Error
}

func (r *faqRepository) DeleteByProcedure(db *gorm.DB, procedureID uuid.UUID) error {
	return db.Where("procedure_id = ?", procedureID).Delete(&entity.FAQ{}).Error
}
