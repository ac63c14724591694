package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-cms/internal/delivery/http/middleware"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/internal/infrastructure/database"
	"clinic-cms/internal/repository"
	"clinic-cms/internal/service"
	"clinic-cms/pkg/jwt"
	"clinic-cms/pkg/markdown"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db    *gorm.DB
	log   *logrus.Logger
	mr    *miniredis.Miniredis
	redis *redis.Client
	cache *service.ContentCache
	audit service.AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewSQLiteConnection(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := service.NewContentCache(client, time.Minute, log)
	t.Cleanup(cache.Stop)

	return &testEnv{
		db:    db,
		log:   log,
		mr:    mr,
		redis: client,
		cache: cache,
		audit: service.NewAuditService(log, repository.NewAuditLogRepository()),
	}
}

// actorContext returns a context carrying the claims of a signed-in admin.
func actorContext(userID uuid.UUID) context.Context {
	return middleware.WithClaims(context.Background(), &jwt.Claims{
		UserID:  userID,
		Email:   "admin@clinic.test",
		RoleID:  entity.RoleIDAdmin,
		TokenID: "test-token",
	})
}

func (e *testEnv) auditCount(t *testing.T, action string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&entity.AuditLog{}).Where("action = ?", action).Count(&count).Error)
	return count
}

func (e *testEnv) lastAudit(t *testing.T, action string) entity.AuditLog {
	t.Helper()
	var log entity.AuditLog
	require.NoError(t, e.db.Where("action = ?", action).Order("id DESC").First(&log).Error)
	return log
}

// primeCache stores a marker page so tests can tell whether a write purged it.
func (e *testEnv) primeCache(t *testing.T) string {
	t.Helper()
	key := service.PublicKey("home")
	require.NoError(t, e.cache.Set(context.Background(), key, map[string]string{"marker": "stale"}))
	require.True(t, e.mr.Exists(key))
	return key
}

func (e *testEnv) newProcedureUsecase() ProcedureUsecase {
	return NewProcedureUsecase(
		e.db, e.log,
		repository.NewProcedureRepository(),
		repository.NewTreatmentCategoryRepository(),
		repository.NewFAQRepository(),
		repository.NewAppointmentRequestRepository(),
		e.audit, e.cache,
	)
}

func (e *testEnv) newTreatmentCategoryUsecase() TreatmentCategoryUsecase {
	return NewTreatmentCategoryUsecase(
		e.db, e.log,
		repository.NewTreatmentCategoryRepository(),
		repository.NewExpertiseAreaRepository(),
		repository.NewProcedureRepository(),
		e.audit, e.cache,
	)
}

func (e *testEnv) newExpertiseAreaUsecase() ExpertiseAreaUsecase {
	return NewExpertiseAreaUsecase(
		e.db, e.log,
		repository.NewExpertiseAreaRepository(),
		repository.NewTreatmentCategoryRepository(),
		e.audit, e.cache,
	)
}

func (e *testEnv) newAppointmentRequestUsecase(now time.Time) AppointmentRequestUsecase {
	uc := NewAppointmentRequestUsecase(
		e.db, e.log,
		repository.NewAppointmentRequestRepository(),
		repository.NewProcedureRepository(),
		e.audit,
	).(*appointmentRequestUsecase)
	uc.now = func() time.Time { return now }
	return uc
}

func (e *testEnv) newPublicSiteUsecase(cache *service.ContentCache) PublicSiteUsecase {
	return NewPublicSiteUsecase(e.db, e.log, PublicRepositories{
		Settings:          repository.NewSiteSettingsRepository(),
		ExpertiseArea:     repository.NewExpertiseAreaRepository(),
		TreatmentCategory: repository.NewTreatmentCategoryRepository(),
		Procedure:         repository.NewProcedureRepository(),
		Category:          repository.NewCategoryRepository(),
		BlogPost:          repository.NewBlogPostRepository(),
		FAQ:               repository.NewFAQRepository(),
	}, markdown.NewRenderer(), cache, "https://clinic.test")
}
