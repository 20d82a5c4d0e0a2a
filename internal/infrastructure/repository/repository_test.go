package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/user"
	"lumina/internal/infrastructure/persistence/models"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/logger"
)

// setupTestDB opens an in-memory sqlite database with the schema applied.
// A single connection keeps concurrent writes serialized the way a real
// database would with row locks.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.BundleModel{},
		&models.UsageModel{},
		&models.MessageModel{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTestUser(t *testing.T, repo user.Repository, username string) *user.User {
	t.Helper()
	u, err := user.NewUser(username, username+"@example.com", biztime.NowUTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func createTestBundle(t *testing.T, repo bundle.Repository, userID uint, tier bundle.Tier, start time.Time) *bundle.Bundle {
	t.Helper()
	b, err := bundle.NewBundle(userID, tier, bundle.BillingCycleMonthly, true, uuid.NewString(), start)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}
