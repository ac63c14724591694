package repository

import (
	"clinic-cms/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRequestRepository interface {
	Create(db *gorm.DB, request *entity.AppointmentRequest) error
	FindAll(db *gorm.DB, filter entity.AppointmentRequestFilter) ([]entity.AppointmentRequest, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.AppointmentRequest, error)
	FindRecent(db *gorm.DB, limit int) ([]entity.AppointmentRequest, error)
	CountByStatus(db *gorm.DB) (map[entity.AppointmentRequestStatus]int64, error)
	ClearProcedure(db *gorm.DB, procedureID uuid.UUID) error
	Update(db *gorm.DB, request *entity.AppointmentRequest) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
