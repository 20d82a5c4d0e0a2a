package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/internal/domain/bundle"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

func TestCancelSubscription(t *testing.T) {
	bundleRepo := newFakeBundleRepo()
	userRepo := newFakeUserRepo()
	owner := newTestUser(t, userRepo, "alice")

	createUC := NewCreateSubscriptionUseCase(bundleRepo, userRepo, logger.NewLogger())
	cancelUC := NewCancelSubscriptionUseCase(bundleRepo, userRepo, logger.NewLogger())

	b, err := createUC.Execute(context.Background(), CreateSubscriptionCommand{
		UserSID: owner.SID(), Tier: "basic", BillingCycle: "monthly", AutoRenew: true,
	})
	require.NoError(t, err)

	cancelled, err := cancelUC.Execute(context.Background(), CancelSubscriptionCommand{
		UserSID: owner.SID(), BundleSID: b.SID(),
	})
	require.NoError(t, err)

	assert.True(t, cancelled.IsActive(), "cancelled bundle stays active until end date")
	assert.False(t, cancelled.AutoRenew())
	assert.Nil(t, cancelled.RenewalDate())

	stored, err := bundleRepo.GetBySID(context.Background(), b.SID())
	require.NoError(t, err)
	assert.Equal(t, bundle.TierBasic, stored.Tier())
	assert.False(t, stored.AutoRenew())
	assert.Equal(t, 2, stored.Version())
}

func TestCancelSubscription_Idempotent(t *testing.T) {
	bundleRepo := newFakeBundleRepo()
	userRepo := newFakeUserRepo()
	owner := newTestUser(t, userRepo, "alice")

	createUC := NewCreateSubscriptionUseCase(bundleRepo, userRepo, logger.NewLogger())
	cancelUC := NewCancelSubscriptionUseCase(bundleRepo, userRepo, logger.NewLogger())

	b, err := createUC.Execute(context.Background(), CreateSubscriptionCommand{
		UserSID: owner.SID(), Tier: "basic", BillingCycle: "monthly", AutoRenew: true,
	})
	require.NoError(t, err)

	cmd := CancelSubscriptionCommand{UserSID: owner.SID(), BundleSID: b.SID()}

	first, err := cancelUC.Execute(context.Background(), cmd)
	require.NoError(t, err)
	second, err := cancelUC.Execute(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, first.IsActive(), second.IsActive())
	assert.False(t, second.AutoRenew())
	assert.Nil(t, second.RenewalDate())
}

func TestCancelSubscription_OtherUsersBundle(t *testing.T) {
	bundleRepo := newFakeBundleRepo()
	userRepo := newFakeUserRepo()
	owner := newTestUser(t, userRepo, "alice")
	intruder := newTestUser(t, userRepo, "mallory")

	createUC := NewCreateSubscriptionUseCase(bundleRepo, userRepo, logger.NewLogger())
	cancelUC := NewCancelSubscriptionUseCase(bundleRepo, userRepo, logger.NewLogger())

	b, err := createUC.Execute(context.Background(), CreateSubscriptionCommand{
		UserSID: owner.SID(), Tier: "basic", BillingCycle: "monthly", AutoRenew: true,
	})
	require.NoError(t, err)

	_, err = cancelUC.Execute(context.Background(), CancelSubscriptionCommand{
		UserSID: intruder.SID(), BundleSID: b.SID(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "You can only cancel your own subscriptions", appErr.Message)

	// Untouched.
	stored, err := bundleRepo.GetBySID(context.Background(), b.SID())
	require.NoError(t, err)
	assert.True(t, stored.AutoRenew())
}

func TestCancelSubscription_NotFound(t *testing.T) {
	userRepo := newFakeUserRepo()
	owner := newTestUser(t, userRepo, "alice")

	cancelUC := NewCancelSubscriptionUseCase(newFakeBundleRepo(), userRepo, logger.NewLogger())

	_, err := cancelUC.Execute(context.Background(), CancelSubscriptionCommand{
		UserSID: owner.SID(), BundleSID: "bun_missing",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
