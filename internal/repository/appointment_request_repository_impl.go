package repository

import (
	"errors"

	"clinic-cms/internal/domain/entity"
	domainRepo "clinic-cms/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRequestRepository struct{}

func NewAppointmentRequestRepository() domainRepo.AppointmentRequestRepository {
	return &appointmentRequestRepository{}
}

func (r *appointmentRequestRepository) Create(db *gorm.DB, request *entity.AppointmentRequest) error {
	return db.Omit(clause.Associations).Create(request).Error
}

func (r *appointmentRequestRepository) FindAll(db *gorm.DB, filter entity.AppointmentRequestFilter) ([]entity.AppointmentRequest, int64, error) {
	var requests []entity.AppointmentRequest
	var total int64

	query := db.Model(&entity.AppointmentRequest{}).
		Scopes(search(filter.Search, "full_name", "email", "phone"))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Procedure").
		Scopes(paginate(filter.Pagination)).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *appointmentRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AppointmentRequest, error) {
	var request entity.AppointmentRequest
	err := db.Preload("Procedure").Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *appointmentRequestRepository) FindRecent(db *gorm.DB, limit int) ([]entity.AppointmentRequest, error) {
	var requests []entity.AppointmentRequest
	err := db.Preload("Procedure").Order("created_at DESC").Limit(limit).Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *appointmentRequestRepository) CountByStatus(db *gorm.DB) (map[entity.AppointmentRequestStatus]int64, error) {
	var rows []struct {
		Status entity.AppointmentRequestStatus
		Total  int64
	}
	err := db.Model(&entity.AppointmentRequest{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.AppointmentRequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// ClearProcedure detaches requests from a procedure that is being deleted.
func (r *appointmentRequestRepository) ClearProcedure(db *gorm.DB, procedureID uuid.UUID) error {
	return db.Model(&entity.AppointmentRequest{}).
		Where("procedure_id = ?", procedureID).
		Update("procedure_id", nil).Error
}

func (r *appointmentRequestRepository) Update(db *gorm.DB, request *entity.AppointmentRequest) error {
	return db.Omit(clause.Associations).Save(request).Error
}

func (r *appointmentRequestRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.AppointmentRequest{})
	return result.RowsAffected, result.Error
}
