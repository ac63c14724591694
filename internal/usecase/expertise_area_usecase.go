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
	ErrExpertiseAreaNotFound = errors.New("expertise area not found")
	ErrExpertiseAreaInUse    = errors.New("expertise area still has treatment categories")
)

type ExpertiseAreaUsecase interface {
	Create(ctx context.Context, req *dto.ExpertiseAreaRequest) (*dto.ExpertiseAreaResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.ExpertiseAreaResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ExpertiseAreaResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.ExpertiseAreaRequest) (*dto.ExpertiseAreaResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expertiseAreaUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	areaRepo     repository.ExpertiseAreaRepository
	categoryRepo repository.TreatmentCategoryRepository
	auditService service.AuditService
	cache        CacheInvalidator
}

func NewExpertiseAreaUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	areaRepo repository.ExpertiseAreaRepository,
	categoryRepo repository.TreatmentCategoryRepository,
	auditService service.AuditService,
	cache CacheInvalidator,
) ExpertiseAreaUsecase {
	return &expertiseAreaUsecase{
		db:           db,
		log:          log,
		areaRepo:     areaRepo,
		categoryRepo: categoryRepo,
		auditService: auditService,
		cache:        cache,
	}
}

func (u *expertiseAreaUsecase) Create(ctx context.Context, req *dto.ExpertiseAreaRequest) (*dto.ExpertiseAreaResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slug, err := uniqueSlug(tx, req.Slug, req.Name, nil, u.areaRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	area := &entity.ExpertiseArea{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
	}

	if err := u.areaRepo.Create(tx, area); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		u.log.Warnf("Failed to create expertise area: %+v", err)
		return nil, err
	}

	resp := converter.ExpertiseAreaToResponse(area)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionExpertiseAreaCreate, "expertise_area", area.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return resp, nil
}

func (u *expertiseAreaUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.ExpertiseAreaResponse, int64, error) {
	areas, total, err := u.areaRepo.FindAll(u.db.WithContext(ctx), converter.ExpertiseAreaFilterFromQuery(query))
	if err != nil {
		u.log.Warnf("Failed to find expertise areas: %+v", err)
		return nil, 0, err
	}

	return converter.ExpertiseAreasToResponses(areas), total, nil
}

func (u *expertiseAreaUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ExpertiseAreaResponse, error) {
	area, err := u.areaRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find expertise area by ID: %+v", err)
		return nil, err
	}
	if area == nil {
		return nil, ErrExpertiseAreaNotFound
	}

	return converter.ExpertiseAreaToResponse(area), nil
}

func (u *expertiseAreaUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.ExpertiseAreaRequest) (*dto.ExpertiseAreaResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	area, err := u.areaRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find expertise area by ID: %+v", err)
		return nil, err
	}
	if area == nil {
		return nil, ErrExpertiseAreaNotFound
	}

	oldValue := converter.ExpertiseAreaToResponse(area)

	slug, err := uniqueSlug(tx, req.Slug, req.Name, &area.ID, u.areaRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	area.Name = req.Name
	area.Slug = slug
	area.Description = req.Description
	area.Icon = req.Icon
	area.SortOrder = req.SortOrder

	if err := u.areaRepo.Update(tx, area); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		u.log.Warnf("Failed to update expertise area: %+v", err)
		return nil, err
	}

	newValue := converter.ExpertiseAreaToResponse(area)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionExpertiseAreaUpdate, "expertise_area", area.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return newValue, nil
}

func (u *expertiseAreaUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	area, err := u.areaRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find expertise area by ID: %+v", err)
		return err
	}
	if area == nil {
		return ErrExpertiseAreaNotFound
	}

	inUse, err := u.categoryRepo.CountByExpertiseArea(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count categories of expertise area: %+v", err)
		return err
	}
	if inUse > 0 {
		return ErrExpertiseAreaInUse
	}

	if _, err := u.areaRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err, "expertise_area") {
			return ErrExpertiseAreaInUse
		}
		u.log.Warnf("Failed to delete expertise area: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionExpertiseAreaDelete, "expertise_area", id.String(), converter.ExpertiseAreaToResponse(area)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return nil
}
