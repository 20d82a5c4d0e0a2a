package usecases

import (
	"context"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/user"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

// ListSubscriptionsCommand carries the input for listing a user's bundles.
type ListSubscriptionsCommand struct {
	UserSID    string
	ActiveOnly bool
}

// ListSubscriptionsUseCase returns a user's bundles, newest first.
type ListSubscriptionsUseCase struct {
	bundleRepo bundle.Repository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewListSubscriptionsUseCase(bundleRepo bundle.Repository, userRepo user.Repository, log logger.Interface) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		bundleRepo: bundleRepo,
		userRepo:   userRepo,
		logger:     log,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, cmd ListSubscriptionsCommand) ([]*bundle.Bundle, error) {
	owner, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err.Error())
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	var bundles []*bundle.Bundle
	if cmd.ActiveOnly {
		bundles, err = uc.bundleRepo.GetActiveByUserID(ctx, owner.ID())
	} else {
		bundles, err = uc.bundleRepo.GetByUserID(ctx, owner.ID())
	}
	if err != nil {
		return nil, errors.NewInternalError("Failed to list subscriptions", err.Error())
	}

	return bundles, nil
}
