// Package dbtest opens throwaway in-memory databases carrying the full
// schema, for tests of the store and the HTTP handlers.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"school-backend/database"
)

// Open returns an sqlx handle on a fresh in-memory sqlite database migrated
// with the production models. The pool holds a single connection so that
// every statement sees the same in-memory database.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	gdb := OpenGorm(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	return sqlx.NewDb(sqlDB, "sqlite3")
}

// OpenGorm is Open without the sqlx wrapper.
func OpenGorm(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(gdb))
	return gdb
}
