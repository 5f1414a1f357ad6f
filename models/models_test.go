package models

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Cherry/wildebeest/internal/snowflake"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockActor creates a new actor in the database.
func MockActor(t *testing.T, tx *gorm.DB, name, domain string) *Actor {
	t.Helper()
	require := require.New(t)

	actor := &Actor{
		ID:     snowflake.Now(),
		Name:   name,
		Domain: domain,
	}
	require.NoError(tx.Create(actor).Error)
	return actor
}

// MockApplication registers a new application in the database.
func MockApplication(t *testing.T, tx *gorm.DB, name string) *Application {
	t.Helper()
	require := require.New(t)

	app, err := NewApplications(tx).Create(ApplicationRequest{
		ClientName:   name,
		RedirectURIs: fmt.Sprintf("%s://oauth", name),
	})
	require.NoError(err)
	return app
}

// MockInstance configures the instance.
func MockInstance(t *testing.T, tx *gorm.DB, domain string) *Instance {
	t.Helper()
	require := require.New(t)

	instance, err := NewInstances(tx).Configure(InstanceSettings{
		Domain:      domain,
		Title:       "Casa del Cheese",
		Email:       "admin@" + domain,
		Description: "🧀",
	})
	require.NoError(err)
	return instance
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	require := require.New(t)
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger: logger.Default.LogMode(func() logger.LogLevel {
			return logger.Warn
		}()),
	})
	require.NoError(err)

	err = db.AutoMigrate(AllTables()...)
	require.NoError(err)

	// enable foreign key constraints
	err = db.Exec("PRAGMA foreign_keys = ON").Error
	require.NoError(err)

	return db
}

// setupFileDB returns a migrated database backed by a file, so concurrent
// callers each get their own connection.
func setupFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	require := require.New(t)

	dsn := "file:" + filepath.Join(t.TempDir(), "wildebeest.db") + "?_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(err)
	require.NoError(db.AutoMigrate(AllTables()...))
	sqlDB, err := db.DB()
	require.NoError(err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}
