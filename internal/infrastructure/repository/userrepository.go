// Package repository contains the gorm-backed repository implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lumina/internal/domain/user"
	"lumina/internal/infrastructure/persistence/mappers"
	"lumina/internal/infrastructure/persistence/models"
	"lumina/internal/shared/logger"
)

type userRepository struct {
	db     *gorm.DB
	mapper *mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a gorm-backed user repository.
func NewUserRepository(db *gorm.DB, log logger.Interface) user.Repository {
	return &userRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: log,
	}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "error", err, "username", u.Username())
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.SetID(model.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *userRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get user by SID: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by username", "error", err, "username", username)
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var userModels []*models.UserModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&userModels).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return r.mapper.ToEntities(userModels), nil
}
