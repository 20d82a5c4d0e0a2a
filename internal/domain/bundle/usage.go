package bundle

import (
	"fmt"
	"time"
)

// MonthlyUsage is the per-user free allowance ledger for one calendar month.
// One row exists per (user, YYYY-MM) pair; the row for a new month starts at
// zero, which makes the monthly reset implicit.
type MonthlyUsage struct {
	id            uint
	userID        uint
	month         string
	messagesUsed  int
	lastResetDate time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewMonthlyUsage creates a fresh ledger row for the given user and month.
func NewMonthlyUsage(userID uint, month string, now time.Time) (*MonthlyUsage, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if month == "" {
		return nil, fmt.Errorf("month cannot be empty")
	}
	return &MonthlyUsage{
		userID:        userID,
		month:         month,
		messagesUsed:  0,
		lastResetDate: now.UTC(),
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
	}, nil
}

// ReconstructMonthlyUsage recreates a ledger row from persisted state.
func ReconstructMonthlyUsage(usageID, userID uint, month string, messagesUsed int, lastResetDate, createdAt, updatedAt time.Time) *MonthlyUsage {
	return &MonthlyUsage{
		id:            usageID,
		userID:        userID,
		month:         month,
		messagesUsed:  messagesUsed,
		lastResetDate: lastResetDate,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (u *MonthlyUsage) ID() uint                 { return u.id }
func (u *MonthlyUsage) UserID() uint             { return u.userID }
func (u *MonthlyUsage) Month() string            { return u.month }
func (u *MonthlyUsage) MessagesUsed() int        { return u.messagesUsed }
func (u *MonthlyUsage) LastResetDate() time.Time { return u.lastResetDate }
func (u *MonthlyUsage) CreatedAt() time.Time     { return u.createdAt }
func (u *MonthlyUsage) UpdatedAt() time.Time     { return u.updatedAt }

// SetID sets the database ID after persistence.
func (u *MonthlyUsage) SetID(usageID uint) {
	u.id = usageID
}

// RemainingFree returns how many free messages remain this month.
func (u *MonthlyUsage) RemainingFree() int {
	remaining := FreeMonthlyMessageLimit - u.messagesUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasFreeQuota reports whether the free allowance still has headroom.
func (u *MonthlyUsage) HasFreeQuota() bool {
	return u.messagesUsed < FreeMonthlyMessageLimit
}
