package testhelpers

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var sqliteSeq atomic.Int64

// SetupSQLiteDatabase opens an isolated in-memory database and migrates the
// schema into it. This is the fast path for service tests; anything that
// exercises Postgres-only behavior needs SetupTestDatabase instead.
func SetupSQLiteDatabase(t *testing.T) *gorm.DB {
	// cache=shared keeps the database alive across the pool's connections;
	// the unique name keeps tests isolated from each other.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", sqliteSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	if err := migrateModels(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}
