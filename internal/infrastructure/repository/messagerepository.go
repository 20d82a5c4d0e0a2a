package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lumina/internal/domain/chat"
	"lumina/internal/infrastructure/persistence/mappers"
	"lumina/internal/infrastructure/persistence/models"
	"lumina/internal/shared/logger"
)

type messageRepository struct {
	db     *gorm.DB
	mapper *mappers.MessageMapper
	logger logger.Interface
}

// NewMessageRepository creates a gorm-backed chat message repository.
func NewMessageRepository(db *gorm.DB, log logger.Interface) chat.Repository {
	return &messageRepository{
		db:     db,
		mapper: mappers.NewMessageMapper(),
		logger: log,
	}
}

func (r *messageRepository) Create(ctx context.Context, m *chat.Message) error {
	model := r.mapper.ToModel(m)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create chat message", "error", err, "user_id", m.UserID())
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	m.SetID(model.ID)
	return nil
}

func (r *messageRepository) GetRecentByUserID(ctx context.Context, userID uint, limit int) ([]*chat.Message, error) {
	var messageModels []*models.MessageModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messageModels).Error
	if err != nil {
		r.logger.Errorw("failed to get chat history", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	return r.mapper.ToEntities(messageModels), nil
}

func (r *messageRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count chat messages", "error", err, "user_id", userID)
		return 0, fmt.Errorf("failed to count chat messages: %w", err)
	}
	return count, nil
}
