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
	ErrTreatmentCategoryNotFound = errors.New("treatment category not found")
	ErrTreatmentCategoryInUse    = errors.New("treatment category still has procedures")
	ErrInvalidExpertiseArea      = errors.New("expertise area does not exist")
)

type TreatmentCategoryUsecase interface {
	Create(ctx context.Context, req *dto.TreatmentCategoryRequest) (*dto.TreatmentCategoryResponse, error)
	GetAll(ctx context.Context, query dto.TreatmentCategoryListQuery) ([]dto.TreatmentCategoryResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.TreatmentCategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.TreatmentCategoryRequest) (*dto.TreatmentCategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type treatmentCategoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	categoryRepo  repository.TreatmentCategoryRepository
	areaRepo      repository.ExpertiseAreaRepository
	procedureRepo repository.ProcedureRepository
	auditService  service.AuditService
	cache         CacheInvalidator
}

func NewTreatmentCategoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	categoryRepo repository.TreatmentCategoryRepository,
	areaRepo repository.ExpertiseAreaRepository,
	procedureRepo repository.ProcedureRepository,
	auditService service.AuditService,
	cache CacheInvalidator,
) TreatmentCategoryUsecase {
	return &treatmentCategoryUsecase{
		db:            db,
		log:           log,
		categoryRepo:  categoryRepo,
		areaRepo:      areaRepo,
		procedureRepo: procedureRepo,
		auditService:  auditService,
		cache:         cache,
	}
}

func (u *treatmentCategoryUsecase) Create(ctx context.Context, req *dto.TreatmentCategoryRequest) (*dto.TreatmentCategoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	area, err := u.loadArea(tx, req.ExpertiseAreaID)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(tx, req.Slug, req.Name, nil, u.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	category := &entity.TreatmentCategory{
		ExpertiseAreaID: req.ExpertiseAreaID,
		Name:            req.Name,
		Slug:            slug,
		Description:     req.Description,
		SortOrder:       req.SortOrder,
	}

	if err := u.categoryRepo.Create(tx, category); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		if isForeignKeyError(err, "expertise_area") {
			return nil, ErrInvalidExpertiseArea
		}
		u.log.Warnf("Failed to create treatment category: %+v", err)
		return nil, err
	}
	category.ExpertiseArea = area

	resp := converter.TreatmentCategoryToResponse(category)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionTreatmentCategoryCreate, "treatment_category", category.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return resp, nil
}

func (u *treatmentCategoryUsecase) GetAll(ctx context.Context, query dto.TreatmentCategoryListQuery) ([]dto.TreatmentCategoryResponse, int64, error) {
	categories, total, err := u.categoryRepo.FindAll(u.db.WithContext(ctx), converter.TreatmentCategoryFilterFromQuery(query))
	if err != nil {
		u.log.Warnf("Failed to find treatment categories: %+v", err)
		return nil, 0, err
	}

	return converter.TreatmentCategoriesToResponses(categories), total, nil
}

func (u *treatmentCategoryUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.TreatmentCategoryResponse, error) {
	category, err := u.categoryRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find treatment category by ID: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrTreatmentCategoryNotFound
	}

	return converter.TreatmentCategoryToResponse(category), nil
}

func (u *treatmentCategoryUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.TreatmentCategoryRequest) (*dto.TreatmentCategoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment category by ID: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrTreatmentCategoryNotFound
	}

	oldValue := converter.TreatmentCategoryToResponse(category)

	area, err := u.loadArea(tx, req.ExpertiseAreaID)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(tx, req.Slug, req.Name, &category.ID, u.categoryRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	category.ExpertiseAreaID = req.ExpertiseAreaID
	category.Name = req.Name
	category.Slug = slug
	category.Description = req.Description
	category.SortOrder = req.SortOrder

	if err := u.categoryRepo.Update(tx, category); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		if isForeignKeyError(err, "expertise_area") {
			return nil, ErrInvalidExpertiseArea
		}
		u.log.Warnf("Failed to update treatment category: %+v", err)
		return nil, err
	}
	category.ExpertiseArea = area

	newValue := converter.TreatmentCategoryToResponse(category)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionTreatmentCategoryUpdate, "treatment_category", category.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return newValue, nil
}

func (u *treatmentCategoryUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment category by ID: %+v", err)
		return err
	}
	if category == nil {
		return ErrTreatmentCategoryNotFound
	}

	inUse, err := u.procedureRepo.CountByCategory(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count procedures of category: %+v", err)
		return err
	}
	if inUse > 0 {
		return ErrTreatmentCategoryInUse
	}

	if _, err := u.categoryRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err, "treatment_category") {
			return ErrTreatmentCategoryInUse
		}
		u.log.Warnf("Failed to delete treatment category: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionTreatmentCategoryDelete, "treatment_category", id.String(), converter.TreatmentCategoryToResponse(category)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return nil
}

func (u *treatmentCategoryUsecase) loadArea(db *gorm.DB, id *uuid.UUID) (*entity.ExpertiseArea, error) {
	if id == nil {
		return nil, nil
	}
	area, err := u.areaRepo.FindByID(db, *id)
	if err != nil {
		u.log.Warnf("Failed to find expertise area by ID: %+v", err)
		return nil, err
	}
	if area == nil {
		return nil, ErrInvalidExpertiseArea
	}
	return area, nil
}
