package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-cms/internal/converter"
	"clinic-cms/internal/delivery/dto"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/domain/repository"
	"clinic-cms/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrRoleNotFound         = errors.New("role not found")
	ErrCannotDeleteSelf     = errors.New("you cannot delete your own account")
	ErrCannotDeactivateSelf = errors.New("you cannot deactivate your own account")
)

type UserUsecase interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	sessions     service.SessionStore
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessions service.SessionStore,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		sessions:     sessions,
		auditService: auditService,
	}
}

func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	roleID, ok := entity.RoleIDByName(req.Role)
	if !ok {
		return nil, ErrRoleNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := u.ensureEmailFree(tx, email, nil); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &entity.User{
		RoleID:   roleID,
		Email:    email,
		Password: string(hashedPassword),
		FullName: strings.TrimSpace(req.FullName),
		IsActive: isActive,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrRoleNotFound
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	resp := converter.UserToResponse(user)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionUserCreate, "user", user.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *userUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.UserResponse, int64, error) {
	users, total, err := u.userRepo.FindAll(u.db.WithContext(ctx), converter.UserFilterFromQuery(query))
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// Update applies the fields present in req. Deactivating a user or changing
// their password ends every session they hold.
func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	actor := actorID(ctx)
	if actor != nil && *actor == id && req.IsActive != nil && !*req.IsActive {
		return nil, ErrCannotDeactivateSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldValue := converter.UserToResponse(user)
	revokeSessions := false

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if err := u.ensureEmailFree(tx, email, &user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		roleID, ok := entity.RoleIDByName(*req.Role)
		if !ok {
			return nil, ErrRoleNotFound
		}
		if roleID != user.RoleID {
			user.RoleID = roleID
			user.Role = entity.Role{}
			revokeSessions = true
		}
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
		revokeSessions = true
	}
	if req.IsActive != nil {
		if user.IsActive && !*req.IsActive {
			revokeSessions = true
		}
		user.IsActive = *req.IsActive
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	newValue := converter.UserToResponse(user)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionUserUpdate, "user", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if revokeSessions {
		if _, err := u.sessions.RevokeAll(ctx, id); err != nil {
			u.log.Warnf("Failed to revoke user sessions: %+v", err)
		}
	}

	return newValue, nil
}

func (u *userUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor := actorID(ctx)
	if actor != nil && *actor == id {
		return ErrCannotDeleteSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.userRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionUserDelete, "user", id.String(), converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if _, err := u.sessions.RevokeAll(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke user sessions: %+v", err)
	}

	return nil
}

func (u *userUsecase) ensureEmailFree(db *gorm.DB, email string, excludeID *uuid.UUID) error {
	existing, err := u.userRepo.FindByEmail(db, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if existing != nil && (excludeID == nil || existing.ID != *excludeID) {
		return ErrEmailAlreadyExists
	}
	return nil
}
