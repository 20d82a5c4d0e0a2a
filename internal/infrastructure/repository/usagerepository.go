package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lumina/internal/domain/bundle"
	"lumina/internal/infrastructure/persistence/mappers"
	"lumina/internal/infrastructure/persistence/models"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/logger"
)

type usageRepository struct {
	db     *gorm.DB
	mapper *mappers.UsageMapper
	logger logger.Interface
}

// NewUsageRepository creates a gorm-backed monthly usage repository.
func NewUsageRepository(db *gorm.DB, log logger.Interface) bundle.UsageRepository {
	return &usageRepository{
		db:     db,
		mapper: mappers.NewUsageMapper(),
		logger: log,
	}
}

func (r *usageRepository) GetByUserAndMonth(ctx context.Context, userID uint, month string) (*bundle.MonthlyUsage, error) {
	var model models.UsageModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get monthly usage", "error", err, "user_id", userID, "month", month)
		return nil, fmt.Errorf("failed to get monthly usage: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

// EnsureRow inserts the month's row if missing. The unique (user_id, month)
// key makes concurrent inserts collapse into one row.
func (r *usageRepository) EnsureRow(ctx context.Context, userID uint, month string) (*bundle.MonthlyUsage, error) {
	now := biztime.NowUTC()
	model := models.UsageModel{
		UserID:        userID,
		Month:         month,
		MessagesUsed:  0,
		LastResetDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error
	if err != nil {
		r.logger.Errorw("failed to ensure monthly usage row", "error", err, "user_id", userID, "month", month)
		return nil, fmt.Errorf("failed to ensure monthly usage row: %w", err)
	}

	usage, err := r.GetByUserAndMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if usage == nil {
		return nil, fmt.Errorf("monthly usage row missing after insert for user %d month %s", userID, month)
	}
	return usage, nil
}

// ConsumeFreeMessage is a single conditional UPDATE against the free
// ceiling, mirroring the bundle consumption path.
func (r *usageRepository) ConsumeFreeMessage(ctx context.Context, userID uint, month string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.UsageModel{}).
		Where("user_id = ? AND month = ? AND messages_used < ?",
			userID, month, bundle.FreeMonthlyMessageLimit).
		Updates(map[string]interface{}{
			"messages_used": gorm.Expr("messages_used + 1"),
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to consume free message", "error", result.Error, "user_id", userID, "month", month)
		return false, fmt.Errorf("failed to consume free message: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *usageRepository) ResetMonthlyQuota(ctx context.Context, userID uint, month string) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Model(&models.UsageModel{}).
		Where("user_id = ? AND month = ?", userID, month).
		Updates(map[string]interface{}{
			"messages_used":   0,
			"last_reset_date": now,
			"updated_at":      now,
		}).Error
	if err != nil {
		r.logger.Errorw("failed to reset monthly quota", "error", err, "user_id", userID, "month", month)
		return fmt.Errorf("failed to reset monthly quota: %w", err)
	}
	return nil
}
