package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"clinic-cms/internal/converter"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/domain/repository"
	"clinic-cms/internal/service"
	"clinic-cms/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentRequestNotFound = errors.New("appointment request not found")
	ErrPreferredDateInPast        = errors.New("preferred date cannot be in the past")
	ErrConsentRequired            = errors.New("consent is required")
)

const appointmentReceivedMessage = "Thank you, we will contact you shortly."

// SubmissionMeta describes where a public appointment request came from.
type SubmissionMeta struct {
	Source    string
	IPAddress string
	UserAgent string
}

type AppointmentRequestUsecase interface {
	Submit(ctx context.Context, req *dto.CreateAppointmentRequest, meta SubmissionMeta) (*dto.AppointmentReceipt, error)
	GetAll(ctx context.Context, query dto.AppointmentRequestListQuery) ([]dto.AppointmentRequestResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentRequestResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentRequestResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentRequestUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRequestRepository
	procedureRepo   repository.ProcedureRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewAppointmentRequestUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRequestRepository,
	procedureRepo repository.ProcedureRepository,
	auditService service.AuditService,
) AppointmentRequestUsecase {
	return &appointmentRequestUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		procedureRepo:   procedureRepo,
		auditService:    auditService,
		now:             time.Now,
	}
}

// Submit stores a lead from the public site. Submissions with the honeypot
// filled in get the same receipt but are dropped.
func (u *appointmentRequestUsecase) Submit(ctx context.Context, req *dto.CreateAppointmentRequest, meta SubmissionMeta) (*dto.AppointmentReceipt, error) {
	if strings.TrimSpace(req.Website) != "" {
		u.log.WithField("ip", meta.IPAddress).Info("Dropped appointment request caught by honeypot")
		return &dto.AppointmentReceipt{Reference: uuid.NewString(), Message: appointmentReceivedMessage}, nil
	}

	if !req.Consent {
		return nil, ErrConsentRequired
	}

	preferredDate, err := u.parsePreferredDate(req.PreferredDate)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	if req.ProcedureID != nil {
		procedure, err := u.procedureRepo.FindByID(db, *req.ProcedureID)
		if err != nil {
			u.log.Warnf("Failed to find procedure by ID: %+v", err)
			return nil, err
		}
		if procedure == nil || !procedure.IsPublished() {
			return nil, ErrInvalidProcedure
		}
	}

	source := meta.Source
	if source == "" {
		source = entity.AppointmentSourceWeb
	}

	request := &entity.AppointmentRequest{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		ProcedureID:   req.ProcedureID,
		PreferredDate: preferredDate,
		Message:       strings.TrimSpace(req.Message),
		Status:        entity.AppointmentStatusNew,
		Source:        source,
		IPAddress:     truncate(meta.IPAddress, 64),
		UserAgent:     truncate(meta.UserAgent, 500),
	}

	if err := u.appointmentRepo.Create(db, request); err != nil {
		if isForeignKeyError(err, "procedure") {
			return nil, ErrInvalidProcedure
		}
		u.log.Warnf("Failed to create appointment request: %+v", err)
		return nil, err
	}

	u.log.WithField("appointment_request_id", request.ID.String()).Info("Appointment request received")

	return &dto.AppointmentReceipt{Reference: request.ID.String(), Message: appointmentReceivedMessage}, nil
}

func (u *appointmentRequestUsecase) parsePreferredDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	date, err := time.Parse(validator.DateLayout, value)
	if err != nil {
		return nil, err
	}

	now := u.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, ErrPreferredDateInPast
	}
	return &date, nil
}

func (u *appointmentRequestUsecase) GetAll(ctx context.Context, query dto.AppointmentRequestListQuery) ([]dto.AppointmentRequestResponse, int64, error) {
	requests, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), converter.AppointmentRequestFilterFromQuery(query))
	if err != nil {
		u.log.Warnf("Failed to find appointment requests: %+v", err)
		return nil, 0, err
	}

	return converter.AppointmentRequestsToResponses(requests), total, nil
}

func (u *appointmentRequestUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentRequestResponse, error) {
	request, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment request by ID: %+v", err)
		return nil, err
	}
	if request == nil {
		return nil, ErrAppointmentRequestNotFound
	}

	return converter.AppointmentRequestToResponse(request), nil
}

func (u *appointmentRequestUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentRequestResponse, error) {
	status := entity.AppointmentRequestStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment request by ID: %+v", err)
		return nil, err
	}
	if request == nil {
		return nil, ErrAppointmentRequestNotFound
	}

	oldValue := converter.AppointmentRequestToResponse(request)

	request.SetStatus(status, u.now())
	request.AdminNotes = req.AdminNotes

	if err := u.appointmentRepo.Update(tx, request); err != nil {
		u.log.Warnf("Failed to update appointment request: %+v", err)
		return nil, err
	}

	newValue := converter.AppointmentRequestToResponse(request)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionAppointmentUpdate, "appointment_request", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *appointmentRequestUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment request by ID: %+v", err)
		return err
	}
	if request == nil {
		return ErrAppointmentRequestNotFound
	}

	if _, err := u.appointmentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment request: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionAppointmentDelete, "appointment_request", id.String(), converter.AppointmentRequestToResponse(request)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// truncate cuts s to at most max bytes without splitting a character.
// Invalid UTF-8 from request headers is dropped first.
func truncate(s string, max int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
