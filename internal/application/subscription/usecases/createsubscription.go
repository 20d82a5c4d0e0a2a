// Package usecases contains the subscription lifecycle use cases.
package usecases

import (
	"context"

	"github.com/google/uuid"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/user"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

// CreateSubscriptionCommand carries the input for purchasing a bundle.
type CreateSubscriptionCommand struct {
	UserSID      string
	Tier         string
	BillingCycle string
	AutoRenew    bool
}

// CreateSubscriptionUseCase purchases a new subscription bundle for a user.
// The initial period is granted without a charge; payment only happens on
// renewal.
type CreateSubscriptionUseCase struct {
	bundleRepo bundle.Repository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewCreateSubscriptionUseCase(bundleRepo bundle.Repository, userRepo user.Repository, log logger.Interface) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		bundleRepo: bundleRepo,
		userRepo:   userRepo,
		logger:     log,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*bundle.Bundle, error) {
	tier, err := bundle.ParseTier(cmd.Tier)
	if err != nil {
		return nil, errors.NewValidationError("Invalid subscription tier", err.Error())
	}
	cycle, err := bundle.ParseBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, errors.NewValidationError("Invalid billing cycle", err.Error())
	}

	owner, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err.Error())
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	b, err := bundle.NewBundle(owner.ID(), tier, cycle, cmd.AutoRenew, uuid.NewString(), biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError("Invalid subscription request", err.Error())
	}

	if err := uc.bundleRepo.Create(ctx, b); err != nil {
		return nil, errors.NewInternalError("Failed to create subscription", err.Error())
	}

	uc.logger.Infow("subscription created",
		"user_id", owner.ID(),
		"bundle_sid", b.SID(),
		"tier", b.Tier(),
		"billing_cycle", b.BillingCycle(),
		"auto_renew", b.AutoRenew())

	return b, nil
}
