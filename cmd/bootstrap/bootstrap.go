package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-cms/config"
	deliveryHttp "clinic-cms/internal/delivery/http"
	"clinic-cms/internal/delivery/http/handler"
	"clinic-cms/internal/delivery/http/middleware"
	"clinic-cms/internal/delivery/web"
	"clinic-cms/internal/infrastructure/cache"
	"clinic-cms/internal/infrastructure/database"
	"clinic-cms/internal/repository"
	"clinic-cms/internal/service"
	"clinic-cms/internal/usecase"
	"clinic-cms/pkg/jwt"
	"clinic-cms/pkg/logger"
	"clinic-cms/pkg/markdown"
	"clinic-cms/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application. CLI commands that do not
// serve HTTP only fill the parts they need.
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Cache       *service.ContentCache
	Limiters    deliveryHttp.RateLimiters
	Server      *http.Server

	publicSite usecase.PublicSiteUsecase
}

// Init loads configuration, sets up logging and opens the database.
func Init() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{Config: cfg, Log: logger.Setup(cfg.Log)}
	app.Log.Info("Configuration loaded successfully")

	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.WithField("driver", cfg.DB.Driver).Info("Database connected successfully")

	return app, nil
}

// ConnectRedis opens the Redis client and the public page cache on top of it.
func (app *App) ConnectRedis() error {
	if app.RedisClient != nil {
		return nil
	}

	redisClient, err := cache.NewRedisClient(app.Config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Cache = service.NewContentCache(redisClient, app.Config.Cache.TTL, app.Log)
	app.Log.Info("Redis connected successfully")

	return nil
}

// New creates an App ready to serve HTTP.
func New() (*App, error) {
	app, err := Init()
	if err != nil {
		return nil, err
	}

	if err := app.ConnectRedis(); err != nil {
		app.Close()
		return nil, err
	}

	// An SQLite file is usually a local or demo setup; keep its schema current.
	if app.Config.DB.Driver == config.DriverSQLite {
		if err := database.AutoMigrate(app.DB); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate SQLite schema: %w", err)
		}
	}

	templates, err := web.NewTemplates()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app.Server = app.initializeServer(templates)
	return app, nil
}

// Migrator runs schema migrations for the configured driver.
func (app *App) Migrator() *database.Migrator {
	return database.NewMigrator(app.DB, app.Config.DB.Driver, app.Log)
}

// Seeder inserts the baseline roles, admin user, settings and sample content.
func (app *App) Seeder() *service.Seeder {
	return service.NewSeeder(app.DB, app.Log, service.SeedRepositories{
		Role:              repository.NewRoleRepository(),
		User:              repository.NewUserRepository(),
		Settings:          repository.NewSiteSettingsRepository(),
		ExpertiseArea:     repository.NewExpertiseAreaRepository(),
		TreatmentCategory: repository.NewTreatmentCategoryRepository(),
		Procedure:         repository.NewProcedureRepository(),
		FAQ:               repository.NewFAQRepository(),
		Category:          repository.NewCategoryRepository(),
	})
}

// PublicSite returns the read side of the site, backed by the content cache
// when Redis is connected.
func (app *App) PublicSite() usecase.PublicSiteUsecase {
	if app.publicSite == nil {
		app.publicSite = usecase.NewPublicSiteUsecase(app.DB, app.Log, usecase.PublicRepositories{
			Settings:          repository.NewSiteSettingsRepository(),
			ExpertiseArea:     repository.NewExpertiseAreaRepository(),
			TreatmentCategory: repository.NewTreatmentCategoryRepository(),
			Procedure:         repository.NewProcedureRepository(),
			Category:          repository.NewCategoryRepository(),
			BlogPost:          repository.NewBlogPostRepository(),
			FAQ:               repository.NewFAQRepository(),
		}, markdown.NewRenderer(), app.Cache, app.Config.App.BaseURL)
	}
	return app.publicSite
}

// cacheInvalidator avoids handing a typed nil to the usecases.
func (app *App) cacheInvalidator() usecase.CacheInvalidator {
	if app.Cache == nil {
		return nil
	}
	return app.Cache
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(templates *web.Templates) *http.Server {
	cfg := app.Config
	db := app.DB
	log := app.Log

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository()
	expertiseAreaRepo := repository.NewExpertiseAreaRepository()
	treatmentCategoryRepo := repository.NewTreatmentCategoryRepository()
	procedureRepo := repository.NewProcedureRepository()
	categoryRepo := repository.NewCategoryRepository()
	blogPostRepo := repository.NewBlogPostRepository()
	faqRepo := repository.NewFAQRepository()
	appointmentRepo := repository.NewAppointmentRequestRepository()
	settingsRepo := repository.NewSiteSettingsRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	sessions := service.NewSessionStore(app.RedisClient, log)
	auditService := service.NewAuditService(log, auditLogRepo)
	scriptRunner := service.NewScriptRunner(cfg.Script.Binary, cfg.Script.Timeout, service.DefaultScripts(), log)
	contentCache := app.cacheInvalidator()

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, sessions, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, sessions, auditService)
	expertiseAreaUsecase := usecase.NewExpertiseAreaUsecase(db, log, expertiseAreaRepo, treatmentCategoryRepo, auditService, contentCache)
	treatmentCategoryUsecase := usecase.NewTreatmentCategoryUsecase(db, log, treatmentCategoryRepo, expertiseAreaRepo, procedureRepo, auditService, contentCache)
	procedureUsecase := usecase.NewProcedureUsecase(db, log, procedureRepo, treatmentCategoryRepo, faqRepo, appointmentRepo, auditService, contentCache)
	categoryUsecase := usecase.NewCategoryUsecase(db, log, categoryRepo, blogPostRepo, auditService, contentCache)
	blogPostUsecase := usecase.NewBlogPostUsecase(db, log, blogPostRepo, categoryRepo, auditService, contentCache)
	faqUsecase := usecase.NewFAQUsecase(db, log, faqRepo, procedureRepo, auditService, contentCache)
	appointmentUsecase := usecase.NewAppointmentRequestUsecase(db, log, appointmentRepo, procedureRepo, auditService)
	settingsUsecase := usecase.NewSiteSettingsUsecase(db, log, settingsRepo, auditService, contentCache)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, procedureRepo, blogPostRepo, faqRepo, appointmentRepo)
	scriptUsecase := usecase.NewScriptUsecase(db, log, scriptRunner, auditService)
	publicSiteUsecase := app.PublicSite()

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessions, cfg.Cookie.Name, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.BaseURL)
	app.Limiters = deliveryHttp.RateLimiters{
		Auth: middleware.NewRateLimiter(cfg.RateLimit),
		Lead: middleware.NewRateLimiter(cfg.RateLimit),
	}

	// Handlers
	handlers := deliveryHttp.Handlers{
		Auth:               handler.NewAuthHandler(authUsecase, customValidator, cfg.Cookie),
		Procedure:          handler.NewProcedureHandler(procedureUsecase, customValidator),
		TreatmentCategory:  handler.NewTreatmentCategoryHandler(treatmentCategoryUsecase, customValidator),
		ExpertiseArea:      handler.NewExpertiseAreaHandler(expertiseAreaUsecase, customValidator),
		BlogPost:           handler.NewBlogPostHandler(blogPostUsecase, customValidator),
		Category:           handler.NewCategoryHandler(categoryUsecase, customValidator),
		FAQ:                handler.NewFAQHandler(faqUsecase, customValidator),
		AppointmentRequest: handler.NewAppointmentRequestHandler(appointmentUsecase, customValidator, cfg.RateLimit.TrustProxy),
		SiteSettings:       handler.NewSiteSettingsHandler(settingsUsecase, customValidator),
		User:               handler.NewUserHandler(userUsecase, customValidator),
		AuditLog:           handler.NewAuditLogHandler(auditLogUsecase, customValidator),
		Dashboard:          handler.NewDashboardHandler(dashboardUsecase),
		Script:             handler.NewScriptHandler(scriptUsecase),
		PublicPage:         handler.NewPublicPageHandler(publicSiteUsecase, appointmentUsecase, templates, customValidator, log, cfg.RateLimit.TrustProxy),
		AdminPage:          handler.NewAdminPageHandler(authUsecase, dashboardUsecase, appointmentUsecase, authMiddleware, templates, customValidator, cfg.Cookie, log),
	}

	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, app.Limiters, log, cfg.RateLimit.TrustProxy)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Script.Timeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops background workers and closes the database and Redis.
func (app *App) Close() {
	for _, limiter := range []*middleware.RateLimiter{app.Limiters.Auth, app.Limiters.Lead} {
		if limiter != nil {
			limiter.Stop()
		}
	}

	if app.Cache != nil {
		app.Cache.Stop()
	}

	if app.DB != nil {
		if err := database.Close(app.DB); err != nil {
			app.Log.Warnf("Failed to close database: %+v", err)
		}
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis: %+v", err)
		}
	}
}
