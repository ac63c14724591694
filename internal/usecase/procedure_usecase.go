package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrProcedureNotFound        = errors.New("procedure not found")
	ErrInvalidTreatmentCategory = errors.New("treatment category does not exist")
)

type ProcedureUsecase interface {
	Create(ctx context.Context, req *dto.ProcedureRequest) (*dto.ProcedureResponse, error)
	GetAll(ctx context.Context, query dto.ProcedureListQuery) ([]dto.ProcedureResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProcedureResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.ProcedureRequest) (*dto.ProcedureResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type procedureUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	procedureRepo   repository.ProcedureRepository
	categoryRepo    repository.TreatmentCategoryRepository
	faqRepo         repository.FAQRepository
	appointmentRepo repository.AppointmentRequestRepository
	auditService    service.AuditService
	cache           CacheInvalidator
}

func NewProcedureUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	procedureRepo repository.ProcedureRepository,
	categoryRepo repository.TreatmentCategoryRepository,
	faqRepo repository.FAQRepository,
	appointmentRepo repository.AppointmentRequestRepository,
	auditService service.AuditService,
	cache CacheInvalidator,
) ProcedureUsecase {
	return &procedureUsecase{
		db:              db,
		log:             log,
		procedureRepo:   procedureRepo,
		categoryRepo:    categoryRepo,
		faqRepo:         faqRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		cache:           cache,
	}
}

func (u *procedureUsecase) Create(ctx context.Context, req *dto.ProcedureRequest) (*dto.ProcedureResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.loadCategory(tx, req.TreatmentCategoryID)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(tx, req.Slug, req.Title, nil, u.procedureRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	procedure := &entity.Procedure{Slug: slug}
	applyProcedureRequest(procedure, req)
	procedure.StampPublished(time.Now())

	if err := u.procedureRepo.Create(tx, procedure); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		if isForeignKeyError(err, "treatment_category") {
			return nil, ErrInvalidTreatmentCategory
		}
		u.log.Warnf("Failed to create procedure: %+v", err)
		return nil, err
	}
	procedure.TreatmentCategory = category

	resp := converter.ProcedureToResponse(procedure)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionProcedureCreate, "procedure", procedure.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return resp, nil
}

func (u *procedureUsecase) GetAll(ctx context.Context, query dto.ProcedureListQuery) ([]dto.ProcedureResponse, int64, error) {
	procedures, total, err := u.procedureRepo.FindAll(u.db.WithContext(ctx), converter.ProcedureFilterFromQuery(query))
	if err != nil {
		u.log.Warnf("Failed to find procedures: %+v", err)
		return nil, 0, err
	}

	return converter.ProceduresToResponses(procedures), total, nil
}

func (u *procedureUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProcedureResponse, error) {
	procedure, err := u.procedureRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find procedure by ID: %+v", err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	return converter.ProcedureToResponse(procedure), nil
}

func (u *procedureUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.ProcedureRequest) (*dto.ProcedureResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	procedure, err := u.procedureRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find procedure by ID: %+v", err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	oldValue := converter.ProcedureToResponse(procedure)

	category, err := u.loadCategory(tx, req.TreatmentCategoryID)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(tx, req.Slug, req.Title, &procedure.ID, u.procedureRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	procedure.Slug = slug
	applyProcedureRequest(procedure, req)
	procedure.StampPublished(time.Now())

	if err := u.procedureRepo.Update(tx, procedure); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugAlreadyExists
		}
		if isForeignKeyError(err, "treatment_category") {
			return nil, ErrInvalidTreatmentCategory
		}
		u.log.Warnf("Failed to update procedure: %+v", err)
		return nil, err
	}
	procedure.TreatmentCategory = category

	newValue := converter.ProcedureToResponse(procedure)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionProcedureUpdate, "procedure", procedure.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return newValue, nil
}

// Delete removes the procedure together with its FAQs and detaches any
// appointment requests that referenced it.
func (u *procedureUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	procedure, err := u.procedureRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find procedure by ID: %+v", err)
		return err
	}
	if procedure == nil {
		return ErrProcedureNotFound
	}

	oldValue := converter.ProcedureToResponse(procedure)

	if err := u.faqRepo.DeleteByProcedure(tx, id); err != nil {
		u.log.Warnf("Failed to delete procedure FAQs: %+v", err)
		return err
	}

	if err := u.appointmentRepo.ClearProcedure(tx, id); err != nil {
		u.log.Warnf("Failed to detach appointment requests: %+v", err)
		return err
	}

	rows, err := u.procedureRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete procedure: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrProcedureNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionProcedureDelete, "procedure", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return nil
}

func (u *procedureUsecase) loadCategory(db *gorm.DB, id *uuid.UUID) (*entity.TreatmentCategory, error) {
	if id == nil {
		return nil, nil
	}
	category, err := u.categoryRepo.FindByID(db, *id)
	if err != nil {
		u.log.Warnf("Failed to find treatment category by ID: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrInvalidTreatmentCategory
	}
	return category, nil
}

func applyProcedureRequest(procedure *entity.Procedure, req *dto.ProcedureRequest) {
	procedure.TreatmentCategoryID = req.TreatmentCategoryID
	procedure.Title = req.Title
	procedure.Summary = req.Summary
	procedure.Content = req.Content
	procedure.ImageURL = req.ImageURL
	procedure.Duration = req.Duration
	procedure.RecoveryTime = req.RecoveryTime
	procedure.PriceFrom = req.PriceFrom
	procedure.Status = entity.ContentStatus(req.Status)
	procedure.IsFeatured = req.IsFeatured
	procedure.SortOrder = req.SortOrder
	procedure.MetaTitle = req.MetaTitle
	procedure.MetaDescription = req.MetaDescription
}
