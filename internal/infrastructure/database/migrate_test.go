package database

import (
	"io"
	"testing"

	"clinic-cms/config"
	"clinic-cms/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestAutoMigrate_CreatesSchemaAndRoles(t *testing.T) {
	db, err := NewSQLiteConnection(":memory:", logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, AutoMigrate(db))
	// second run is a no-op
	require.NoError(t, AutoMigrate(db))

	var roles []entity.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, entity.RoleAdmin, roles[0].RoleName)
	assert.Equal(t, entity.RoleEditor, roles[1].RoleName)

	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestMigrator_SQLiteOnlySupportsUp(t *testing.T) {
	db, err := NewSQLiteConnection(":memory:", logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	log := logrus.New()
	log.SetOutput(io.Discard)
	m := NewMigrator(db, config.DriverSQLite, log)

	require.NoError(t, m.Up())
	assert.ErrorIs(t, m.Down(), ErrUnsupportedMigration)
	_, _, err = m.Version()
	assert.ErrorIs(t, err, ErrUnsupportedMigration)
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := NewConnection(&config.Config{DB: config.DBConfig{Driver: "oracle"}})
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "clinic", SSLMode: "disable", TimeZone: "UTC",
	})
	assert.Equal(t, "host=db user=u password=p dbname=clinic port=5432 sslmode=disable TimeZone=UTC", dsn)
}
