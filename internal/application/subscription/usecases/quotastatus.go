package usecases

import (
	"context"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/user"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

// QuotaStatus is a point-in-time view of what a user can still send.
type QuotaStatus struct {
	Month           string  `json:"month"`
	FreeLimit       int     `json:"free_limit"`
	FreeUsed        int     `json:"free_used"`
	FreeRemaining   int     `json:"free_remaining"`
	ActiveBundleSID *string `json:"active_bundle_sid,omitempty"`
	BundleUnlimited bool    `json:"bundle_unlimited"`
	BundleRemaining int     `json:"bundle_remaining"`
}

// QuotaStatusUseCase reports the user's remaining free allowance and the
// headroom on their best active bundle.
type QuotaStatusUseCase struct {
	bundleRepo bundle.Repository
	usageRepo  bundle.UsageRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewQuotaStatusUseCase(bundleRepo bundle.Repository, usageRepo bundle.UsageRepository, userRepo user.Repository, log logger.Interface) *QuotaStatusUseCase {
	return &QuotaStatusUseCase{
		bundleRepo: bundleRepo,
		usageRepo:  usageRepo,
		userRepo:   userRepo,
		logger:     log,
	}
}

func (uc *QuotaStatusUseCase) Execute(ctx context.Context, userSID string) (*QuotaStatus, error) {
	owner, err := uc.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err.Error())
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	month := biztime.CurrentMonthKey()
	status := &QuotaStatus{
		Month:         month,
		FreeLimit:     bundle.FreeMonthlyMessageLimit,
		FreeRemaining: bundle.FreeMonthlyMessageLimit,
	}

	usage, err := uc.usageRepo.GetByUserAndMonth(ctx, owner.ID(), month)
	if err != nil {
		return nil, errors.NewInternalError("Failed to read monthly usage", err.Error())
	}
	if usage != nil {
		status.FreeUsed = usage.MessagesUsed()
		status.FreeRemaining = usage.RemainingFree()
	}

	best, err := uc.bundleRepo.GetLatestActiveWithQuota(ctx, owner.ID())
	if err != nil {
		return nil, errors.NewInternalError("Failed to read subscriptions", err.Error())
	}
	if best != nil {
		sid := best.SID()
		status.ActiveBundleSID = &sid
		status.BundleUnlimited = best.Unlimited()
		if !best.Unlimited() {
			status.BundleRemaining = best.RemainingQuota()
		}
	}

	return status, nil
}
