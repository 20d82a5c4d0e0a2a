package usecases

import (
	"context"

	"lumina/internal/domain/bundle"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

// RenewalSweepSummary aggregates the outcome of one renewal sweep.
type RenewalSweepSummary struct {
	Scanned   int `json:"scanned"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// RenewDueSubscriptionsUseCase sweeps all bundles due for renewal and runs
// the renewal flow on each. The scheduler invokes it periodically; the HTTP
// surface exposes it for manual triggering.
type RenewDueSubscriptionsUseCase struct {
	bundleRepo bundle.Repository
	renew      *RenewSubscriptionUseCase
	batchSize  int
	logger     logger.Interface
}

func NewRenewDueSubscriptionsUseCase(bundleRepo bundle.Repository, renew *RenewSubscriptionUseCase, batchSize int, log logger.Interface) *RenewDueSubscriptionsUseCase {
	return &RenewDueSubscriptionsUseCase{
		bundleRepo: bundleRepo,
		renew:      renew,
		batchSize:  batchSize,
		logger:     log,
	}
}

// Execute runs one sweep. A failure on one bundle does not stop the rest.
func (uc *RenewDueSubscriptionsUseCase) Execute(ctx context.Context) (*RenewalSweepSummary, error) {
	due, err := uc.bundleRepo.FindDueForRenewal(ctx, biztime.NowUTC(), uc.batchSize)
	if err != nil {
		return nil, errors.NewInternalError("Failed to find due subscriptions", err.Error())
	}

	summary := &RenewalSweepSummary{Scanned: len(due)}

	for _, b := range due {
		outcome, err := uc.renew.Execute(ctx, b)
		if err != nil {
			uc.logger.Errorw("renewal attempt errored",
				"error", err, "bundle_sid", b.SID())
			summary.Skipped++
			continue
		}
		switch outcome.Status {
		case RenewalSucceeded:
			summary.Succeeded++
		case RenewalFailed:
			summary.Failed++
		default:
			summary.Skipped++
		}
	}

	if summary.Scanned > 0 {
		uc.logger.Infow("renewal sweep finished",
			"scanned", summary.Scanned,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
			"skipped", summary.Skipped)
	}

	return summary, nil
}
