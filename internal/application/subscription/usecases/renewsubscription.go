package usecases

import (
	"context"

	"lumina/internal/domain/bundle"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/logger"
)

// RenewalStatus describes what a renewal attempt did to a bundle.
type RenewalStatus string

const (
	// RenewalSkipped means the bundle was not due, or a concurrent writer
	// already handled it.
	RenewalSkipped RenewalStatus = "skipped"
	// RenewalSucceeded means the charge went through and the period advanced.
	RenewalSucceeded RenewalStatus = "succeeded"
	// RenewalFailed means the charge was declined and the bundle was
	// deactivated.
	RenewalFailed RenewalStatus = "failed"
)

// RenewalOutcome is the result of a renewal attempt on one bundle.
type RenewalOutcome struct {
	BundleSID string
	Status    RenewalStatus
	Bundle    *bundle.Bundle
}

// RenewSubscriptionUseCase runs the renewal flow for a single bundle:
// check due, charge, and advance or deactivate. Not-due bundles and lost
// version races are silent no-ops.
type RenewSubscriptionUseCase struct {
	bundleRepo bundle.Repository
	gateway    PaymentGateway
	logger     logger.Interface
}

func NewRenewSubscriptionUseCase(bundleRepo bundle.Repository, gateway PaymentGateway, log logger.Interface) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
		bundleRepo: bundleRepo,
		gateway:    gateway,
		logger:     log,
	}
}

// Execute attempts renewal of the given bundle snapshot.
func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, b *bundle.Bundle) (*RenewalOutcome, error) {
	now := biztime.NowUTC()

	if !b.RenewalDue(now) {
		return &RenewalOutcome{BundleSID: b.SID(), Status: RenewalSkipped, Bundle: b}, nil
	}

	result, err := uc.gateway.Charge(ctx, b.UserID(), b.SID(), b.Price())
	if err != nil {
		return nil, err
	}

	var next *bundle.Bundle
	var status RenewalStatus
	if result.Succeeded {
		next = b.Renewed(now, result.TransactionID)
		status = RenewalSucceeded
	} else {
		next = b.RenewalFailed(now, result.TransactionID)
		status = RenewalFailed
	}

	ok, err := uc.bundleRepo.UpdateIfVersion(ctx, next, b.Version())
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.logger.Warnw("renewal lost version race, skipping",
			"bundle_sid", b.SID(), "version", b.Version())
		return &RenewalOutcome{BundleSID: b.SID(), Status: RenewalSkipped, Bundle: b}, nil
	}

	if status == RenewalSucceeded {
		uc.logger.Infow("subscription renewed",
			"bundle_sid", next.SID(),
			"user_id", next.UserID(),
			"new_end_date", next.EndDate(),
			"transaction_id", result.TransactionID)
	} else {
		uc.logger.Warnw("subscription deactivated after failed payment",
			"bundle_sid", next.SID(),
			"user_id", next.UserID(),
			"transaction_id", result.TransactionID)
	}

	return &RenewalOutcome{BundleSID: next.SID(), Status: status, Bundle: next}, nil
}
