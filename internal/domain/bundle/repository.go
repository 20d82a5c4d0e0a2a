package bundle

import (
	"context"
	"time"
)

// Repository defines persistence for subscription bundles.
// Lookup methods return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, b *Bundle) error
	GetByID(ctx context.Context, bundleID uint) (*Bundle, error)
	GetBySID(ctx context.Context, sid string) (*Bundle, error)
	GetByUserID(ctx context.Context, userID uint) ([]*Bundle, error)
	GetActiveByUserID(ctx context.Context, userID uint) ([]*Bundle, error)

	// GetLatestActiveWithQuota returns the most recently created active
	// bundle that still has message headroom (or is unlimited), or
	// (nil, nil) when the user has none.
	GetLatestActiveWithQuota(ctx context.Context, userID uint) (*Bundle, error)

	// FindDueForRenewal returns up to limit active auto-renewing bundles
	// whose renewal date is strictly before now.
	FindDueForRenewal(ctx context.Context, now time.Time, limit int) ([]*Bundle, error)

	// UpdateIfVersion persists the snapshot only when the stored row still
	// carries expectedVersion. It returns false without error when another
	// writer got there first.
	UpdateIfVersion(ctx context.Context, b *Bundle, expectedVersion int) (bool, error)

	// ConsumeMessage atomically increments the bundle's usage counter while
	// it is active and under its ceiling. It returns false when the bundle
	// cannot absorb the message.
	ConsumeMessage(ctx context.Context, bundleID uint) (bool, error)
}

// UsageRepository defines persistence for the monthly free allowance ledger.
type UsageRepository interface {
	// GetByUserAndMonth returns the ledger row for the given month, or
	// (nil, nil) when the user has not sent any free message yet.
	GetByUserAndMonth(ctx context.Context, userID uint, month string) (*MonthlyUsage, error)

	// EnsureRow creates the row for the given month if it does not exist
	// and returns the current state either way.
	EnsureRow(ctx context.Context, userID uint, month string) (*MonthlyUsage, error)

	// ConsumeFreeMessage atomically increments the month's counter while it
	// is under the free ceiling. It returns false when the allowance is
	// exhausted.
	ConsumeFreeMessage(ctx context.Context, userID uint, month string) (bool, error)

	// ResetMonthlyQuota zeroes the month's counter and stamps the reset
	// time. It is a no-op when the row does not exist.
	ResetMonthlyQuota(ctx context.Context, userID uint, month string) error
}
