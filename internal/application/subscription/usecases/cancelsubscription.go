package usecases

import (
	"context"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/user"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

// CancelSubscriptionCommand carries the input for cancelling a bundle.
type CancelSubscriptionCommand struct {
	UserSID   string
	BundleSID string
}

// CancelSubscriptionUseCase turns off auto renewal for a bundle. The bundle
// stays active until its end date; cancelling twice is a no-op.
type CancelSubscriptionUseCase struct {
	bundleRepo bundle.Repository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewCancelSubscriptionUseCase(bundleRepo bundle.Repository, userRepo user.Repository, log logger.Interface) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		bundleRepo: bundleRepo,
		userRepo:   userRepo,
		logger:     log,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*bundle.Bundle, error) {
	owner, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err.Error())
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	b, err := uc.bundleRepo.GetBySID(ctx, cmd.BundleSID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up subscription", err.Error())
	}
	if b == nil {
		return nil, errors.NewNotFoundError("Subscription not found")
	}
	if b.UserID() != owner.ID() {
		return nil, errors.NewValidationError("You can only cancel your own subscriptions")
	}

	cancelled := b.Cancelled(biztime.NowUTC())
	ok, err := uc.bundleRepo.UpdateIfVersion(ctx, cancelled, b.Version())
	if err != nil {
		return nil, errors.NewInternalError("Failed to cancel subscription", err.Error())
	}
	if !ok {
		// A concurrent renewal or cancel got there first. Return the
		// current state rather than failing the request.
		current, err := uc.bundleRepo.GetBySID(ctx, cmd.BundleSID)
		if err != nil {
			return nil, errors.NewInternalError("Failed to reload subscription", err.Error())
		}
		if current == nil {
			return nil, errors.NewNotFoundError("Subscription not found")
		}
		uc.logger.Warnw("cancel lost version race, returning current state",
			"bundle_sid", cmd.BundleSID, "version", current.Version())
		return current, nil
	}

	uc.logger.Infow("subscription cancelled",
		"user_id", owner.ID(),
		"bundle_sid", cancelled.SID(),
		"end_date", cancelled.EndDate())

	return cancelled, nil
}
