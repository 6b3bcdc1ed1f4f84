package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taxrenew/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newSQLiteDB opens an in-memory SQLite database with the renewal tables.
// The pool is pinned to one connection so every statement sees the same
// in-memory database.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.DailySnapshotModel{},
		&models.DailySnapshotEntryModel{},
		&models.NotificationStatusModel{},
		&models.CustomerTaxRecordModel{},
	))
	return db
}
