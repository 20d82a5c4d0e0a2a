package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/internal/domain/bundle"
)

func TestUsageRepository_EnsureRow(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, testLogger())
	usageRepo := NewUsageRepository(db, testLogger())
	ctx := context.Background()

	owner := createTestUser(t, userRepo, "alice")

	row, err := usageRepo.EnsureRow(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 0, row.MessagesUsed())

	// Calling again does not reset an existing row.
	ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)
	require.True(t, ok)

	row, err = usageRepo.EnsureRow(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 1, row.MessagesUsed())
}

func TestUsageRepository_FreeCeiling(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, testLogger())
	usageRepo := NewUsageRepository(db, testLogger())
	ctx := context.Background()

	owner := createTestUser(t, userRepo, "alice")
	_, err := usageRepo.EnsureRow(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)

	for i := 0; i < bundle.FreeMonthlyMessageLimit; i++ {
		ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-01")
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)
	assert.False(t, ok, "the fourth free message of a month is rejected")
}

func TestUsageRepository_NewMonthStartsFresh(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, testLogger())
	usageRepo := NewUsageRepository(db, testLogger())
	ctx := context.Background()

	owner := createTestUser(t, userRepo, "alice")

	_, err := usageRepo.EnsureRow(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)
	for i := 0; i < bundle.FreeMonthlyMessageLimit; i++ {
		ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-01")
		require.NoError(t, err)
		require.True(t, ok)
	}

	// January is exhausted; February has the full allowance again.
	row, err := usageRepo.EnsureRow(ctx, owner.ID(), "2024-02")
	require.NoError(t, err)
	assert.Equal(t, 0, row.MessagesUsed())

	ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-02")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUsageRepository_ResetMonthlyQuota(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, testLogger())
	usageRepo := NewUsageRepository(db, testLogger())
	ctx := context.Background()

	owner := createTestUser(t, userRepo, "alice")
	created, err := usageRepo.EnsureRow(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)

	for i := 0; i < bundle.FreeMonthlyMessageLimit; i++ {
		ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-01")
		require.NoError(t, err)
		require.True(t, ok)
	}

	require.NoError(t, usageRepo.ResetMonthlyQuota(ctx, owner.ID(), "2024-01"))

	row, err := usageRepo.GetByUserAndMonth(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 0, row.MessagesUsed())
	assert.True(t, row.LastResetDate().After(created.LastResetDate()))

	ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-01")
	require.NoError(t, err)
	assert.True(t, ok, "allowance is usable again after a reset")

	// Resetting a month that has no row is a no-op.
	require.NoError(t, usageRepo.ResetMonthlyQuota(ctx, owner.ID(), "2030-12"))
}

func TestUsageRepository_ConcurrentLastFreeSlot(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, testLogger())
	usageRepo := NewUsageRepository(db, testLogger())
	ctx := context.Background()

	owner := createTestUser(t, userRepo, "alice")
	_, err := usageRepo.EnsureRow(ctx, owner.ID(), "2024-03")
	require.NoError(t, err)

	// Burn down to the last free slot.
	for i := 0; i < bundle.FreeMonthlyMessageLimit-1; i++ {
		ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-03")
		require.NoError(t, err)
		require.True(t, ok)
	}

	const workers = 8
	var successes atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			ok, err := usageRepo.ConsumeFreeMessage(ctx, owner.ID(), "2024-03")
			if err == nil && ok {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())

	row, err := usageRepo.GetByUserAndMonth(ctx, owner.ID(), "2024-03")
	require.NoError(t, err)
	assert.Equal(t, bundle.FreeMonthlyMessageLimit, row.MessagesUsed())
}
