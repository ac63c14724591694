package repository

import (
	"errors"

	"clinic-cms/internal/domain/entity"
	domainRepo "clinic-cms/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blogPostRepository struct{}

func NewBlogPostRepository() domainRepo.BlogPostRepository {
	return &blogPostRepository{}
}

func (r *blogPostRepository) Create(db *gorm.DB, post *entity.BlogPost) error {
	return db.Omit(clause.Associations).Create(post).Error
}

func (r *blogPostRepository) applyFilter(db *gorm.DB, filter entity.BlogPostFilter) *gorm.DB {
	db = db.Scopes(search(filter.Search, "title", "excerpt"))
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}
	return db
}

func (r *blogPostRepository) FindAll(db *gorm.DB, filter entity.BlogPostFilter) ([]entity.BlogPost, int64, error) {
	var posts []entity.BlogPost
	var total int64

	query := r.applyFilter(db.Model(&entity.BlogPost{}), filter).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").Preload("Author").
		Scopes(paginate(filter.Pagination)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *blogPostRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.BlogPost, error) {
	var post entity.BlogPost
	err := db.Preload("Category").Preload("Author").Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// FindPublished pages through published posts, newest publication first.
func (r *blogPostRepository) FindPublished(db *gorm.DB, filter entity.BlogPostFilter) ([]entity.BlogPost, int64, error) {
	var posts []entity.BlogPost
	var total int64
	filter.Status = entity.ContentStatusPublished

	query := r.applyFilter(db.Model(&entity.BlogPost{}), filter).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").
		Scopes(paginate(filter.Pagination)).
		Order("published_at DESC, created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *blogPostRepository) FindPublishedBySlug(db *gorm.DB, slug string) (*entity.BlogPost, error) {
	var post entity.BlogPost
	err := db.Preload("Category").Preload("Author").
		Where("slug = ? AND status = ?", slug, entity.ContentStatusPublished).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) SlugExists(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error) {
	var total int64
	query := db.Model(&entity.BlogPost{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *blogPostRepository) CountByCategory(db *gorm.DB, categoryID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.BlogPost{}).Where("category_id = ?", categoryID).Count(&total).Error
	return total, err
}

func (r *blogPostRepository) CountByStatus(db *gorm.DB) (map[entity.ContentStatus]int64, error) {
	var rows []struct {
		Status entity.ContentStatus
		Total  int64
	}
	err := db.Model(&entity.BlogPost{}).
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

func (r *blogPostRepository) Update(db *gorm.DB, post *entity.BlogPost) error {
	return db.Omit(clause.Associations).Save(post).Error
}

func (r *blogPostRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.BlogPost{})
	return result.RowsAffected, result.Error
}
