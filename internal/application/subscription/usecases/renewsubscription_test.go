package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/internal/domain/bundle"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/logger"
)

// dueBundle creates and persists a bundle whose renewal date passed an hour
// ago, so one successful renewal moves it out of the due window.
func dueBundle(t *testing.T, repo *fakeBundleRepo, userID uint) *bundle.Bundle {
	t.Helper()
	start := biztime.NowUTC().AddDate(0, -1, 0).Add(-time.Hour)
	b, err := bundle.NewBundle(userID, bundle.TierBasic, bundle.BillingCycleMonthly, true, uuid.NewString(), start)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))
	require.True(t, b.RenewalDue(biztime.NowUTC()))
	return b
}

func TestRenewSubscription_Success(t *testing.T) {
	repo := newFakeBundleRepo()
	gateway := &fakeGateway{succeed: true}
	uc := NewRenewSubscriptionUseCase(repo, gateway, logger.NewLogger())

	b := dueBundle(t, repo, 1)
	oldEnd := b.EndDate()

	outcome, err := uc.Execute(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, RenewalSucceeded, outcome.Status)
	assert.Equal(t, 1, gateway.calls)

	stored, err := repo.GetByID(context.Background(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, oldEnd, stored.StartDate())
	assert.Equal(t, oldEnd.AddDate(0, 1, 0), stored.EndDate())
	assert.Equal(t, 0, stored.MessagesUsed())
	assert.True(t, stored.IsActive())
	require.NotNil(t, stored.RenewalDate())
	assert.Equal(t, stored.EndDate(), *stored.RenewalDate())
	assert.Equal(t, 2, stored.Version())
}

func TestRenewSubscription_PaymentDeclined(t *testing.T) {
	repo := newFakeBundleRepo()
	gateway := &fakeGateway{succeed: false}
	uc := NewRenewSubscriptionUseCase(repo, gateway, logger.NewLogger())

	b := dueBundle(t, repo, 1)

	outcome, err := uc.Execute(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, RenewalFailed, outcome.Status)

	stored, err := repo.GetByID(context.Background(), b.ID())
	require.NoError(t, err)
	assert.False(t, stored.IsActive())
	assert.False(t, stored.AutoRenew())
	assert.Nil(t, stored.RenewalDate())

	// Terminal: a second sweep never picks it up again.
	due, err := repo.FindDueForRenewal(context.Background(), biztime.NowUTC(), 0)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestRenewSubscription_NotDue(t *testing.T) {
	repo := newFakeBundleRepo()
	gateway := &fakeGateway{succeed: true}
	uc := NewRenewSubscriptionUseCase(repo, gateway, logger.NewLogger())

	b, err := bundle.NewBundle(1, bundle.TierBasic, bundle.BillingCycleMonthly, true, uuid.NewString(), biztime.NowUTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))

	outcome, err := uc.Execute(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, RenewalSkipped, outcome.Status)
	assert.Zero(t, gateway.calls, "no charge happens for a bundle that is not due")
}

func TestRenewSubscription_LostVersionRace(t *testing.T) {
	repo := newFakeBundleRepo()
	gateway := &fakeGateway{succeed: true}
	uc := NewRenewSubscriptionUseCase(repo, gateway, logger.NewLogger())

	b := dueBundle(t, repo, 1)

	// Another writer cancels between the sweep's read and the renewal write.
	cancelled := b.Cancelled(biztime.NowUTC())
	ok, err := repo.UpdateIfVersion(context.Background(), cancelled, b.Version())
	require.NoError(t, err)
	require.True(t, ok)

	outcome, err := uc.Execute(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, RenewalSkipped, outcome.Status)

	stored, err := repo.GetByID(context.Background(), b.ID())
	require.NoError(t, err)
	assert.False(t, stored.AutoRenew(), "the concurrent cancel wins")
	assert.Equal(t, 2, stored.Version())
}

func TestRenewDueSubscriptions_Sweep(t *testing.T) {
	repo := newFakeBundleRepo()
	gateway := &fakeGateway{succeed: true}
	renewUC := NewRenewSubscriptionUseCase(repo, gateway, logger.NewLogger())
	sweepUC := NewRenewDueSubscriptionsUseCase(repo, renewUC, 100, logger.NewLogger())

	dueBundle(t, repo, 1)
	dueBundle(t, repo, 2)

	// Not due: fresh bundle.
	fresh, err := bundle.NewBundle(3, bundle.TierPro, bundle.BillingCycleMonthly, true, uuid.NewString(), biztime.NowUTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), fresh))

	summary, err := sweepUC.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Scanned)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)

	// Everything renewed; the next sweep finds nothing.
	summary, err = sweepUC.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Scanned)
}

func TestRenewDueSubscriptions_SweepTime(t *testing.T) {
	// A cancelled bundle past its renewal window must never be charged.
	repo := newFakeBundleRepo()
	gateway := &fakeGateway{succeed: true}
	renewUC := NewRenewSubscriptionUseCase(repo, gateway, logger.NewLogger())
	sweepUC := NewRenewDueSubscriptionsUseCase(repo, renewUC, 100, logger.NewLogger())

	b := dueBundle(t, repo, 1)
	cancelled := b.Cancelled(biztime.NowUTC())
	ok, err := repo.UpdateIfVersion(context.Background(), cancelled, b.Version())
	require.NoError(t, err)
	require.True(t, ok)

	summary, err := sweepUC.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Scanned)
	assert.Zero(t, gateway.calls)
}
