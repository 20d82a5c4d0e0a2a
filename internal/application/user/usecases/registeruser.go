// Package usecases contains the user account use cases.
package usecases

import (
	"context"

	"lumina/internal/domain/user"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

// RegisterUserCommand carries the input for creating a user.
type RegisterUserCommand struct {
	Username string
	Email    string
}

// RegisterUserUseCase creates a new user account.
type RegisterUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewRegisterUserUseCase(userRepo user.Repository, log logger.Interface) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		logger:   log,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, errors.NewInternalError("Failed to check username", err.Error())
	}
	if existing != nil {
		return nil, errors.NewConflictError("Username already taken")
	}

	existing, err = uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errors.NewInternalError("Failed to check email", err.Error())
	}
	if existing != nil {
		return nil, errors.NewConflictError("Email already registered")
	}

	u, err := user.NewUser(cmd.Username, cmd.Email, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError("Invalid user details", err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, errors.NewInternalError("Failed to create user", err.Error())
	}

	uc.logger.Infow("user registered", "user_sid", u.SID(), "username", u.Username())

	return u, nil
}
