package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-cms/internal/delivery/http/middleware"
	"clinic-cms/pkg/slug"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlugAlreadyExists = errors.New("slug already exists")
	ErrInvalidSlug       = errors.New("slug could not be derived, please provide one")
	ErrInvalidStatus     = errors.New("invalid status")
)

// CacheInvalidator drops cached public pages after a content write.
type CacheInvalidator interface {
	Purge(ctx context.Context) (int, error)
}

type slugExistsFunc func(db *gorm.DB, slug string, excludeID *uuid.UUID) (bool, error)

// uniqueSlug resolves the explicit slug or derives one from source and
// checks that no other row (besides excludeID) uses it.
func uniqueSlug(db *gorm.DB, explicit, source string, excludeID *uuid.UUID, exists slugExistsFunc) (string, error) {
	s := slug.Resolve(explicit, source)
	if !slug.Valid(s) {
		return "", ErrInvalidSlug
	}

	taken, err := exists(db, s, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSlugAlreadyExists
	}
	return s, nil
}

// purgePublicCache runs after commit. A failed purge only leaves stale pages
// until the TTL expires, so it is logged and not returned.
func purgePublicCache(ctx context.Context, cache CacheInvalidator, log *logrus.Logger) {
	if cache == nil {
		return
	}
	if _, err := cache.Purge(ctx); err != nil {
		log.Warnf("Failed to purge public cache: %+v", err)
	}
}

// actorID is the signed-in user recorded on audit entries.
func actorID(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}

// isDuplicateKeyError checks if the error is a unique constraint violation
// containing the specified constraint name. SQLite errors are translated by
// gorm and carry no constraint name.
func isDuplicateKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
