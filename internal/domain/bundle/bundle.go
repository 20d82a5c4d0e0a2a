// Package bundle contains the subscription bundle aggregate, the tier
// catalog, and the monthly free usage ledger.
package bundle

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"lumina/internal/shared/biztime"
	"lumina/internal/shared/id"
)

// PaymentRecord captures the outcome of the most recent renewal charge.
type PaymentRecord struct {
	TransactionID string    `json:"transaction_id"`
	Succeeded     bool      `json:"succeeded"`
	At            time.Time `json:"at"`
}

// Bundle is a single purchased subscription period for a user. A user may
// hold multiple bundles over time; quota consumption always targets the most
// recent active bundle with headroom.
//
// Lifecycle transitions return a new snapshot with the version bumped rather
// than mutating in place. The repository persists a snapshot only when the
// stored version still matches the one the snapshot was derived from, which
// turns concurrent cancel/renew races into silent no-ops.
type Bundle struct {
	id           uint
	sid          string
	uuid         string
	userID       uint
	tier         Tier
	billingCycle BillingCycle
	price        decimal.Decimal
	maxMessages  int
	messagesUsed int
	isActive     bool
	autoRenew    bool
	startDate    time.Time
	endDate      time.Time
	renewalDate  *time.Time
	lastPayment  *PaymentRecord
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewBundle creates a new active bundle starting now. The period, price and
// message ceiling come from the tier catalog.
func NewBundle(userID uint, tier Tier, cycle BillingCycle, autoRenew bool, uuidStr string, now time.Time) (*Bundle, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	spec, err := SpecFor(tier)
	if err != nil {
		return nil, err
	}

	sid, err := id.Generate(id.PrefixBundle)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bundle SID: %w", err)
	}

	start := now.UTC()
	end := periodEnd(start, cycle)

	var renewal *time.Time
	if autoRenew {
		renewal = &end
	}

	return &Bundle{
		sid:          sid,
		uuid:         uuidStr,
		userID:       userID,
		tier:         tier,
		billingCycle: cycle,
		price:        spec.Price(cycle),
		maxMessages:  spec.MaxMessages,
		messagesUsed: 0,
		isActive:     true,
		autoRenew:    autoRenew,
		startDate:    start,
		endDate:      end,
		renewalDate:  renewal,
		version:      1,
		createdAt:    start,
		updatedAt:    start,
	}, nil
}

// ReconstructBundle recreates a bundle from persisted state.
func ReconstructBundle(
	bundleID uint,
	sid string,
	uuidStr string,
	userID uint,
	tier Tier,
	cycle BillingCycle,
	price decimal.Decimal,
	maxMessages int,
	messagesUsed int,
	isActive bool,
	autoRenew bool,
	startDate time.Time,
	endDate time.Time,
	renewalDate *time.Time,
	lastPayment *PaymentRecord,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *Bundle {
	return &Bundle{
		id:           bundleID,
		sid:          sid,
		uuid:         uuidStr,
		userID:       userID,
		tier:         tier,
		billingCycle: cycle,
		price:        price,
		maxMessages:  maxMessages,
		messagesUsed: messagesUsed,
		isActive:     isActive,
		autoRenew:    autoRenew,
		startDate:    startDate,
		endDate:      endDate,
		renewalDate:  renewalDate,
		lastPayment:  lastPayment,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func periodEnd(start time.Time, cycle BillingCycle) time.Time {
	if cycle == BillingCycleYearly {
		return biztime.AddBillingYears(start, 1)
	}
	return biztime.AddBillingMonths(start, 1)
}

// Getters

func (b *Bundle) ID() uint                   { return b.id }
func (b *Bundle) SID() string                { return b.sid }
func (b *Bundle) UUID() string               { return b.uuid }
func (b *Bundle) UserID() uint               { return b.userID }
func (b *Bundle) Tier() Tier                 { return b.tier }
func (b *Bundle) BillingCycle() BillingCycle { return b.billingCycle }
func (b *Bundle) Price() decimal.Decimal     { return b.price }
func (b *Bundle) MaxMessages() int           { return b.maxMessages }
func (b *Bundle) MessagesUsed() int          { return b.messagesUsed }
func (b *Bundle) IsActive() bool             { return b.isActive }
func (b *Bundle) AutoRenew() bool            { return b.autoRenew }
func (b *Bundle) StartDate() time.Time       { return b.startDate }
func (b *Bundle) EndDate() time.Time         { return b.endDate }
func (b *Bundle) Version() int               { return b.version }
func (b *Bundle) CreatedAt() time.Time       { return b.createdAt }
func (b *Bundle) UpdatedAt() time.Time       { return b.updatedAt }

// RenewalDate returns a copy of the renewal date, or nil when auto renewal
// is off.
func (b *Bundle) RenewalDate() *time.Time {
	if b.renewalDate == nil {
		return nil
	}
	t := *b.renewalDate
	return &t
}

// LastPayment returns a copy of the most recent renewal charge outcome, or
// nil when the bundle has never gone through a renewal.
func (b *Bundle) LastPayment() *PaymentRecord {
	if b.lastPayment == nil {
		return nil
	}
	rec := *b.lastPayment
	return &rec
}

// SetID sets the database ID after persistence.
func (b *Bundle) SetID(bundleID uint) {
	b.id = bundleID
}

// Unlimited reports whether the bundle has no message ceiling.
func (b *Bundle) Unlimited() bool {
	return b.maxMessages == UnlimitedMessages
}

// RemainingQuota returns how many messages are still available on the
// bundle. Unlimited bundles report math.MaxInt.
func (b *Bundle) RemainingQuota() int {
	if b.Unlimited() {
		return math.MaxInt
	}
	remaining := b.maxMessages - b.messagesUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasQuota reports whether the bundle can absorb at least one more message.
// Inactive bundles never can, regardless of headroom.
func (b *Bundle) HasQuota() bool {
	if !b.isActive {
		return false
	}
	return b.Unlimited() || b.messagesUsed < b.maxMessages
}

// RenewalDue reports whether a renewal attempt should run at the given time.
// All four conditions must hold; anything else means the sweep skips the
// bundle without treating it as an error. The renewal date must be strictly
// in the past.
func (b *Bundle) RenewalDue(now time.Time) bool {
	return b.isActive &&
		b.autoRenew &&
		b.renewalDate != nil &&
		b.renewalDate.Before(now)
}

// Cancelled returns a snapshot with auto renewal turned off. The bundle
// stays active until its end date. Cancelling an already cancelled bundle
// yields the same state again, just with a higher version.
func (b *Bundle) Cancelled(now time.Time) *Bundle {
	next := *b
	next.autoRenew = false
	next.renewalDate = nil
	next.version = b.version + 1
	next.updatedAt = now.UTC()
	return &next
}

// Renewed returns a snapshot advanced by one billing period after a
// successful charge. The new period starts where the old one ended, usage
// resets to zero, and the next renewal date lines up with the new end date.
func (b *Bundle) Renewed(now time.Time, transactionID string) *Bundle {
	next := *b
	next.startDate = b.endDate
	next.endDate = periodEnd(b.endDate, b.billingCycle)
	next.messagesUsed = 0
	if next.autoRenew {
		renewal := next.endDate
		next.renewalDate = &renewal
	} else {
		next.renewalDate = nil
	}
	next.lastPayment = &PaymentRecord{
		TransactionID: transactionID,
		Succeeded:     true,
		At:            now.UTC(),
	}
	next.version = b.version + 1
	next.updatedAt = now.UTC()
	return &next
}

// RenewalFailed returns a deactivated snapshot after a failed charge. This
// is terminal: the bundle never renews again and stops serving quota.
func (b *Bundle) RenewalFailed(now time.Time, transactionID string) *Bundle {
	next := *b
	next.isActive = false
	next.autoRenew = false
	next.renewalDate = nil
	next.lastPayment = &PaymentRecord{
		TransactionID: transactionID,
		Succeeded:     false,
		At:            now.UTC(),
	}
	next.version = b.version + 1
	next.updatedAt = now.UTC()
	return &next
}
