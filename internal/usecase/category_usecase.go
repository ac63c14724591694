package usecase

import (
	"context"
	"errors"

	"clinic-cms/internal/converter"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/domain/repository"
	"clinic-cms/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has blog posts")
)

type CategoryUsecase interface {
	Create(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.CategoryResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	categoryRepo repository.CategoryRepository
	postRepo     repository.BlogPostRepository
	auditService service.AuditService
	cache        CacheInvalidator
}

func NewCategoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	categoryRepo repository.CategoryRepository,
	postRepo repository.BlogPostRepository,
	auditService service.AuditService,
	cache CacheInvalidator,
) CategoryUsecase {
	return &categoryUsecase{
		db:           db,
		log:          log,
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
		auditService: auditService,
		cache:        cache,
	}
}

func (u *categoryUsecase) Create(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slug, err := uniqueSlug(tx, req.Slug, req.Name, nil, u.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}

	if err := u.categoryRepo.Create(tx, category); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		u.log.Warnf("Failed to create category: %+v", err)
		return nil, err
	}

	resp := converter.CategoryToResponse(category)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionCategoryCreate, "category", category.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return resp, nil
}

func (u *categoryUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.CategoryResponse, int64, error) {
	categories, total, err := u.categoryRepo.FindAll(u.db.WithContext(ctx), converter.CategoryFilterFromQuery(query))
	if err != nil {
		u.log.Warnf("Failed to find categories: %+v", err)
		return nil, 0, err
	}

	return converter.CategoriesToResponses(categories), total, nil
}

func (u *categoryUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := u.categoryRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find category by ID: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	return converter.CategoryToResponse(category), nil
}

func (u *categoryUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find category by ID: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	oldValue := converter.CategoryToResponse(category)

	slug, err := uniqueSlug(tx, req.Slug, req.Name, &category.ID, u.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Slug = slug
	category.Description = req.Description

	if err := u.categoryRepo.Update(tx, category); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		u.log.Warnf("Failed to update category: %+v", err)
		return nil, err
	}

	newValue := converter.CategoryToResponse(category)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionCategoryUpdate, "category", category.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return newValue, nil
}

func (u *categoryUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find category by ID: %+v", err)
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	inUse, err := u.postRepo.CountByCategory(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count posts of category: %+v", err)
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	if _, err := u.categoryRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err, "category") {
			return ErrCategoryInUse
		}
		u.log.Warnf("Failed to delete category: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionCategoryDelete, "category", id.String(), converter.CategoryToResponse(category)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return nil
}
