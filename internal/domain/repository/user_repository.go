package repository

import (
	"clinic-cms/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindAll(db *gorm.DB, filter entity.UserFilter) ([]entity.User, int64, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdateLastLogin(db *gorm.DB, id uuid.UUID) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
