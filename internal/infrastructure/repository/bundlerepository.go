package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lumina/internal/domain/bundle"
	"lumina/internal/infrastructure/persistence/mappers"
	"lumina/internal/infrastructure/persistence/models"
	"lumina/internal/shared/logger"
)

type bundleRepository struct {
	db     *gorm.DB
	mapper *mappers.BundleMapper
	logger logger.Interface
}

// NewBundleRepository creates a gorm-backed bundle repository.
func NewBundleRepository(db *gorm.DB, log logger.Interface) bundle.Repository {
	return &bundleRepository{
		db:     db,
		mapper: mappers.NewBundleMapper(),
		logger: log,
	}
}

func (r *bundleRepository) Create(ctx context.Context, b *bundle.Bundle) error {
	model, err := r.mapper.ToModel(b)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create bundle", "error", err, "user_id", b.UserID(), "tier", b.Tier())
		return fmt.Errorf("failed to create bundle: %w", err)
	}
	b.SetID(model.ID)
	return nil
}

func (r *bundleRepository) GetByID(ctx context.Context, bundleID uint) (*bundle.Bundle, error) {
	var model models.BundleModel
	err := r.db.WithContext(ctx).Where("id = ?", bundleID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get bundle by ID", "error", err, "bundle_id", bundleID)
		return nil, fmt.Errorf("failed to get bundle by ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *bundleRepository) GetBySID(ctx context.Context, sid string) (*bundle.Bundle, error) {
	var model models.BundleModel
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get bundle by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get bundle by SID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *bundleRepository) GetByUserID(ctx context.Context, userID uint) ([]*bundle.Bundle, error) {
	var bundleModels []*models.BundleModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bundleModels).Error
	if err != nil {
		r.logger.Errorw("failed to get bundles by user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get bundles by user: %w", err)
	}
	return r.mapper.ToEntities(bundleModels)
}

func (r *bundleRepository) GetActiveByUserID(ctx context.Context, userID uint) ([]*bundle.Bundle, error) {
	var bundleModels []*models.BundleModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&bundleModels).Error
	if err != nil {
		r.logger.Errorw("failed to get active bundles", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get active bundles: %w", err)
	}
	return r.mapper.ToEntities(bundleModels)
}

func (r *bundleRepository) GetLatestActiveWithQuota(ctx context.Context, userID uint) (*bundle.Bundle, error) {
	var model models.BundleModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND (max_messages = ? OR messages_used < max_messages)",
			userID, true, bundle.UnlimitedMessages).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get latest active bundle with quota", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get latest active bundle with quota: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *bundleRepository) FindDueForRenewal(ctx context.Context, now time.Time, limit int) ([]*bundle.Bundle, error) {
	var bundleModels []*models.BundleModel
	query := r.db.WithContext(ctx).
		Where("is_active = ? AND auto_renew = ? AND renewal_date IS NOT NULL AND renewal_date < ?",
			true, true, now.UTC()).
		Order("renewal_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&bundleModels).Error; err != nil {
		r.logger.Errorw("failed to find bundles due for renewal", "error", err)
		return nil, fmt.Errorf("failed to find bundles due for renewal: %w", err)
	}
	return r.mapper.ToEntities(bundleModels)
}

// UpdateIfVersion writes the snapshot only when the stored version still
// matches. Zero rows affected means another writer won the race.
func (r *bundleRepository) UpdateIfVersion(ctx context.Context, b *bundle.Bundle, expectedVersion int) (bool, error) {
	model, err := r.mapper.ToModel(b)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&models.BundleModel{}).
		Where("id = ? AND version = ?", b.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"messages_used": model.MessagesUsed,
			"is_active":     model.IsActive,
			"auto_renew":    model.AutoRenew,
			"start_date":    model.StartDate,
			"end_date":      model.EndDate,
			"renewal_date":  model.RenewalDate,
			"last_payment":  model.LastPayment,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update bundle", "error", result.Error, "bundle_id", b.ID())
		return false, fmt.Errorf("failed to update bundle: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ConsumeMessage is a single conditional UPDATE so that concurrent sends
// can never push usage past the ceiling.
func (r *bundleRepository) ConsumeMessage(ctx context.Context, bundleID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BundleModel{}).
		Where("id = ? AND is_active = ? AND (max_messages = ? OR messages_used < max_messages)",
			bundleID, true, bundle.UnlimitedMessages).
		Updates(map[string]interface{}{
			"messages_used": gorm.Expr("messages_used + 1"),
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to consume bundle message", "error", result.Error, "bundle_id", bundleID)
		return false, fmt.Errorf("failed to consume bundle message: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
