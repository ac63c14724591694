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
	ErrFAQNotFound      = errors.New("faq not found")
	ErrInvalidProcedure = errors.New("procedure does not exist")
)

type FAQUsecase interface {
	Create(ctx context.Context, req *dto.FAQRequest) (*dto.FAQResponse, error)
	GetAll(ctx context.Context, query dto.FAQListQuery) ([]dto.FAQResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.FAQResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.FAQRequest) (*dto.FAQResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type faqUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	faqRepo       repository.FAQRepository
	procedureRepo repository.ProcedureRepository
	auditService  service.AuditService
	cache         CacheInvalidator
}

func NewFAQUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	faqRepo repository.FAQRepository,
	procedureRepo repository.ProcedureRepository,
	auditService service.AuditService,
	cache CacheInvalidator,
) FAQUsecase {
	return &faqUsecase{
		db:            db,
		log:           log,
		faqRepo:       faqRepo,
		procedureRepo: procedureRepo,
		auditService:  auditService,
		cache:         cache,
	}
}

func (u *faqUsecase) Create(ctx context.Context, req *dto.FAQRequest) (*dto.FAQResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	procedure, err := u.loadProcedure(tx, req.ProcedureID)
	if err != nil {
		return nil, err
	}

	faq := &entity.FAQ{}
	applyFAQRequest(faq, req)

	if err := u.faqRepo.Create(tx, faq); err != nil {
		if isForeignKeyError(err, "procedure") {
			return nil, ErrInvalidProcedure
		}
		u.log.Warnf("Failed to create faq: %+v", err)
		return nil, err
	}
	faq.Procedure = procedure

	resp := converter.FAQToResponse(faq)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionFAQCreate, "faq", faq.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return resp, nil
}

func (u *faqUsecase) GetAll(ctx context.Context, query dto.FAQListQuery) ([]dto.FAQResponse, int64, error) {
	faqs, total, err := u.faqRepo.FindAll(u.db.WithContext(ctx), converter.FAQFilterFromQuery(query))
	if err != nil {
		u.log.Warnf("Failed to find faqs: %+v", err)
		return nil, 0, err
	}

	return converter.FAQsToResponses(faqs), total, nil
}

func (u *faqUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.FAQResponse, error) {
	faq, err := u.faqRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find faq by ID: %+v", err)
		return nil, err
	}
	if faq == nil {
		return nil, ErrFAQNotFound
	}

	return converter.FAQToResponse(faq), nil
}

func (u *faqUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.FAQRequest) (*dto.FAQResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	faq, err := u.faqRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find faq by ID: %+v", err)
		return nil, err
	}
	if faq == nil {
		return nil, ErrFAQNotFound
	}

	oldValue := converter.FAQToResponse(faq)

	procedure, err := u.loadProcedure(tx, req.ProcedureID)
	if err != nil {
		return nil, err
	}

	applyFAQRequest(faq, req)

	if err := u.faqRepo.Update(tx, faq); err != nil {
		if isForeignKeyError(err, "procedure") {
			return nil, ErrInvalidProcedure
		}
		u.log.Warnf("Failed to update faq: %+v", err)
		return nil, err
	}
	faq.Procedure = procedure

	newValue := converter.FAQToResponse(faq)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionFAQUpdate, "faq", faq.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return newValue, nil
}

func (u *faqUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	faq, err := u.faqRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find faq by ID: %+v", err)
		return err
	}
	if faq == nil {
		return ErrFAQNotFound
	}

	if _, err := u.faqRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete faq: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionFAQDelete, "faq", id.String(), converter.FAQToResponse(faq)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	purgePublicCache(ctx, u.cache, u.log)
	return nil
}

func (u *faqUsecase) loadProcedure(db *gorm.DB, id *uuid.UUID) (*entity.Procedure, error) {
	if id == nil {
		return nil, nil
	}
	procedure, err := u.procedureRepo.FindByID(db, *id)
	if err != nil {
		u.log.Warnf("Failed to find procedure by ID: %+v", err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrInvalidProcedure
	}
	return procedure, nil
}

func applyFAQRequest(faq *entity.FAQ, req *dto.FAQRequest) {
	faq.ProcedureID = req.ProcedureID
	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.SortOrder = req.SortOrder
	faq.IsPublished = req.IsPublished
}
