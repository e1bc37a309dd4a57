// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"testing"

	"github.com/Luismorlan/newsagg/model"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	TestDBNameCharLength = 8

	defaultSqliteFile = "newsagg.db"
)

// GormTransaction is the callback function used during db.Transaction in Gorm.
type GormTransaction func(tx *gorm.DB) error

// GetDBConnection gets a connection to the database specified by env. When no
// DB_PASS is configured it falls back to a local sqlite file, which keeps
// development runnable without a Postgres instance.
func GetDBConnection() (*gorm.DB, error) {
	if os.Getenv("DB_PASS") == "" {
		dbFile := os.Getenv("DB_FILE")
		if dbFile == "" {
			dbFile = defaultSqliteFile
		}
		return gorm.Open(sqlite.Open(dbFile), &gorm.Config{})
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// InitTables creates or migrates all tables managed by this process. Call
// exactly once per process, right after the connection is established.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&model.StoredPost{})
}

// CreateTempDB creates an isolated in-memory DB for testing, note that this
// function should only be called in a testing environment with test state
// manager testing.T. The database lives as long as the connection pool and
// needs no explicit cleanup.
func CreateTempDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache memory DB so that every connection in the pool
	// sees the same database. Open connections are capped at 1 to avoid
	// sqlite write contention from concurrent workers under test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", RandomAlphabetString(TestDBNameCharLength))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal("cannot connect to test DB: ", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal("cannot get test DB handle: ", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := InitTables(db); err != nil {
		t.Fatal("cannot migrate test DB: ", err)
	}
	return db
}
