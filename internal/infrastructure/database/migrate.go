package database

import (
	"errors"
	"fmt"

	"clinic-cms/config"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/migrations"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUnsupportedMigration = errors.New("only \"migrate up\" is supported with the sqlite driver")

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&entity.Role{},
		&entity.User{},
		&entity.ExpertiseArea{},
		&entity.TreatmentCategory{},
		&entity.Procedure{},
		&entity.Category{},
		&entity.BlogPost{},
		&entity.FAQ{},
		&entity.AppointmentRequest{},
		&entity.SiteSettings{},
		&entity.AuditLog{},
	}
}

// AutoMigrate creates the schema from the gorm models and inserts the fixed
// role rows. Used for SQLite and in tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	for _, role := range entity.DefaultRoles() {
		role := role
		if err := db.Where("id = ?", role.ID).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to insert role %s: %w", role.RoleName, err)
		}
	}
	return nil
}

// Migrator runs the embedded SQL migrations, or AutoMigrate for SQLite.
type Migrator struct {
	db     *gorm.DB
	driver string
	log    *logrus.Logger
}

func NewMigrator(db *gorm.DB, driver string, log *logrus.Logger) *Migrator {
	return &Migrator{db: db, driver: driver, log: log}
}

func (m *Migrator) newMigrate() (*migrate.Migrate, error) {
	sqlDB, err := m.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	drv, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, "pgx5", drv)
}

func (m *Migrator) Up() error {
	if m.driver == config.DriverSQLite {
		m.log.Info("Running gorm AutoMigrate for SQLite")
		return AutoMigrate(m.db)
	}

	mg, err := m.newMigrate()
	if err != nil {
		return err
	}
	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	m.logVersion(mg)
	return nil
}

// Down rolls back a single migration step.
func (m *Migrator) Down() error {
	if m.driver == config.DriverSQLite {
		return ErrUnsupportedMigration
	}

	mg, err := m.newMigrate()
	if err != nil {
		return err
	}
	if err := mg.Steps(-1); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	m.logVersion(mg)
	return nil
}

func (m *Migrator) Version() (uint, bool, error) {
	if m.driver == config.DriverSQLite {
		return 0, false, ErrUnsupportedMigration
	}

	mg, err := m.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Migrator) logVersion(mg *migrate.Migrate) {
	version, dirty, err := mg.Version()
	if err != nil {
		m.log.Warnf("Failed to read migration version: %+v", err)
		return
	}
	m.log.WithField("version", version).WithField("dirty", dirty).Info("Database schema migrated")
}
