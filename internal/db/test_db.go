package db

import (
	"fmt"
	"testing"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing and
// closes it when the test finishes.
func SetupTestDB(t *testing.T) (*gorm.DB, error) {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.Rating{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	t.Cleanup(func() {
		sqlDB, err := testDB.DB()
		if err != nil {
			return
		}
		sqlDB.Close()
	})

	return testDB, nil
}
