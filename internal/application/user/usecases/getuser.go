package usecases

import (
	"context"

	"lumina/internal/domain/user"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

// GetUserUseCase looks up a single user by SID.
type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, log logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   log,
	}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, sid string) (*user.User, error) {
	u, err := uc.userRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err.Error())
	}
	if u == nil {
		return nil, errors.NewNotFoundError("User not found")
	}
	return u, nil
}
