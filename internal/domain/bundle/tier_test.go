package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierCatalog(t *testing.T) {
	tests := []struct {
		tier         Tier
		maxMessages  int
		monthlyPrice string
		yearlyPrice  string
	}{
		{TierBasic, 10, "9.99", "99.99"},
		{TierPro, 100, "29.99", "299.99"},
		{TierEnterprise, UnlimitedMessages, "99.99", "999.99"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			spec, err := SpecFor(tt.tier)
			require.NoError(t, err)
			assert.Equal(t, tt.maxMessages, spec.MaxMessages)
			assert.Equal(t, tt.monthlyPrice, spec.MonthlyPrice.StringFixed(2))
			assert.Equal(t, tt.yearlyPrice, spec.YearlyPrice.StringFixed(2))
		})
	}
}

func TestSpecFor_Unknown(t *testing.T) {
	_, err := SpecFor(Tier("platinum"))
	assert.Error(t, err)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("  Basic ")
	require.NoError(t, err)
	assert.Equal(t, TierBasic, tier)

	_, err = ParseTier("free")
	assert.Error(t, err)
}

func TestParseBillingCycle(t *testing.T) {
	cycle, err := ParseBillingCycle("YEARLY")
	require.NoError(t, err)
	assert.Equal(t, BillingCycleYearly, cycle)

	_, err = ParseBillingCycle("weekly")
	assert.Error(t, err)
}

func TestTierSpec_Price(t *testing.T) {
	spec, err := SpecFor(TierPro)
	require.NoError(t, err)

	assert.Equal(t, "29.99", spec.Price(BillingCycleMonthly).StringFixed(2))
	assert.Equal(t, "299.99", spec.Price(BillingCycleYearly).StringFixed(2))
}

func TestAllTiers_Order(t *testing.T) {
	specs := AllTiers()
	require.Len(t, specs, 3)
	assert.Equal(t, TierBasic, specs[0].Tier)
	assert.Equal(t, TierPro, specs[1].Tier)
	assert.Equal(t, TierEnterprise, specs[2].Tier)
}
