package usecases

import (
	"context"

	"lumina/internal/domain/chat"
	"lumina/internal/domain/user"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

// GetChatHistoryCommand carries the input for fetching a user's history.
type GetChatHistoryCommand struct {
	UserSID string
	Limit   int
}

// GetChatHistoryUseCase returns a user's recent messages, newest first.
type GetChatHistoryUseCase struct {
	chatRepo     chat.Repository
	userRepo     user.Repository
	defaultLimit int
	maxLimit     int
	logger       logger.Interface
}

func NewGetChatHistoryUseCase(chatRepo chat.Repository, userRepo user.Repository, defaultLimit, maxLimit int, log logger.Interface) *GetChatHistoryUseCase {
	return &GetChatHistoryUseCase{
		chatRepo:     chatRepo,
		userRepo:     userRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       log,
	}
}

func (uc *GetChatHistoryUseCase) Execute(ctx context.Context, cmd GetChatHistoryCommand) ([]*chat.Message, error) {
	owner, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err.Error())
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	limit := cmd.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}
	if limit > uc.maxLimit {
		limit = uc.maxLimit
	}

	messages, err := uc.chatRepo.GetRecentByUserID(ctx, owner.ID(), limit)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load chat history", err.Error())
	}
	return messages, nil
}
