package bundle

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier identifies a paid subscription level.
type Tier string

const (
	TierBasic      Tier = "basic"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// BillingCycle identifies the billing period of a bundle.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// UnlimitedMessages marks a tier without a message ceiling.
const UnlimitedMessages = -1

// FreeMonthlyMessageLimit is the number of messages every user may send per
// calendar month without a subscription.
const FreeMonthlyMessageLimit = 3

// TierSpec describes the quota and pricing of a tier.
type TierSpec struct {
	Tier         Tier
	MaxMessages  int
	MonthlyPrice decimal.Decimal
	YearlyPrice  decimal.Decimal
}

// Price returns the price of the spec for the given billing cycle.
func (s TierSpec) Price(cycle BillingCycle) decimal.Decimal {
	if cycle == BillingCycleYearly {
		return s.YearlyPrice
	}
	return s.MonthlyPrice
}

// Unlimited reports whether the tier has no message ceiling.
func (s TierSpec) Unlimited() bool {
	return s.MaxMessages == UnlimitedMessages
}

var tierCatalog = map[Tier]TierSpec{
	TierBasic: {
		Tier:         TierBasic,
		MaxMessages:  10,
		MonthlyPrice: decimal.NewFromFloat(9.99),
		YearlyPrice:  decimal.NewFromFloat(99.99),
	},
	TierPro: {
		Tier:         TierPro,
		MaxMessages:  100,
		MonthlyPrice: decimal.NewFromFloat(29.99),
		YearlyPrice:  decimal.NewFromFloat(299.99),
	},
	TierEnterprise: {
		Tier:         TierEnterprise,
		MaxMessages:  UnlimitedMessages,
		MonthlyPrice: decimal.NewFromFloat(99.99),
		YearlyPrice:  decimal.NewFromFloat(999.99),
	},
}

// SpecFor returns the catalog entry for the given tier.
func SpecFor(tier Tier) (TierSpec, error) {
	spec, ok := tierCatalog[tier]
	if !ok {
		return TierSpec{}, fmt.Errorf("unknown tier: %s", tier)
	}
	return spec, nil
}

// AllTiers returns the catalog entries in a stable order.
func AllTiers() []TierSpec {
	return []TierSpec{
		tierCatalog[TierBasic],
		tierCatalog[TierPro],
		tierCatalog[TierEnterprise],
	}
}

// ParseTier validates and normalizes a tier string.
func ParseTier(s string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierCatalog[tier]; !ok {
		return "", fmt.Errorf("invalid tier: %s", s)
	}
	return tier, nil
}

// ParseBillingCycle validates and normalizes a billing cycle string.
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(strings.ToLower(strings.TrimSpace(s))) {
	case BillingCycleMonthly:
		return BillingCycleMonthly, nil
	case BillingCycleYearly:
		return BillingCycleYearly, nil
	default:
		return "", fmt.Errorf("invalid billing cycle: %s", s)
	}
}
