package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/user"
)

// fakeBundleRepo is an in-memory bundle.Repository keyed by database ID.
type fakeBundleRepo struct {
	nextID  uint
	bundles map[uint]*bundle.Bundle
}

func newFakeBundleRepo() *fakeBundleRepo {
	return &fakeBundleRepo{nextID: 1, bundles: make(map[uint]*bundle.Bundle)}
}

func (r *fakeBundleRepo) Create(ctx context.Context, b *bundle.Bundle) error {
	b.SetID(r.nextID)
	r.bundles[r.nextID] = b
	r.nextID++
	return nil
}

func (r *fakeBundleRepo) GetByID(ctx context.Context, bundleID uint) (*bundle.Bundle, error) {
	return r.bundles[bundleID], nil
}

func (r *fakeBundleRepo) GetBySID(ctx context.Context, sid string) (*bundle.Bundle, error) {
	for _, b := range r.bundles {
		if b.SID() == sid {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBundleRepo) GetByUserID(ctx context.Context, userID uint) ([]*bundle.Bundle, error) {
	var out []*bundle.Bundle
	for _, b := range r.bundles {
		if b.UserID() == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBundleRepo) GetActiveByUserID(ctx context.Context, userID uint) ([]*bundle.Bundle, error) {
	var out []*bundle.Bundle
	for _, b := range r.bundles {
		if b.UserID() == userID && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBundleRepo) GetLatestActiveWithQuota(ctx context.Context, userID uint) (*bundle.Bundle, error) {
	var best *bundle.Bundle
	for _, b := range r.bundles {
		if b.UserID() != userID || !b.HasQuota() {
			continue
		}
		if best == nil || b.CreatedAt().After(best.CreatedAt()) {
			best = b
		}
	}
	return best, nil
}

func (r *fakeBundleRepo) FindDueForRenewal(ctx context.Context, now time.Time, limit int) ([]*bundle.Bundle, error) {
	var out []*bundle.Bundle
	for _, b := range r.bundles {
		if b.RenewalDue(now) {
			out = append(out, b)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeBundleRepo) UpdateIfVersion(ctx context.Context, b *bundle.Bundle, expectedVersion int) (bool, error) {
	stored, ok := r.bundles[b.ID()]
	if !ok || stored.Version() != expectedVersion {
		return false, nil
	}
	r.bundles[b.ID()] = b
	return true, nil
}

func (r *fakeBundleRepo) ConsumeMessage(ctx context.Context, bundleID uint) (bool, error) {
	b, ok := r.bundles[bundleID]
	if !ok || !b.HasQuota() {
		return false, nil
	}
	r.bundles[bundleID] = bundle.ReconstructBundle(
		b.ID(), b.SID(), b.UUID(), b.UserID(), b.Tier(), b.BillingCycle(), b.Price(),
		b.MaxMessages(), b.MessagesUsed()+1, b.IsActive(), b.AutoRenew(),
		b.StartDate(), b.EndDate(), b.RenewalDate(), b.LastPayment(),
		b.Version(), b.CreatedAt(), b.UpdatedAt())
	return true, nil
}

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	nextID uint
	users  map[uint]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	u.SetID(r.nextID)
	r.users[r.nextID] = u
	r.nextID++
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	return r.users[userID], nil
}

func (r *fakeUserRepo) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	for _, u := range r.users {
		if u.SID() == sid {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*user.User, error) {
	var out []*user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

// fakeUsageRepo is an in-memory bundle.UsageRepository.
type fakeUsageRepo struct {
	nextID uint
	rows   map[string]*bundle.MonthlyUsage
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{nextID: 1, rows: make(map[string]*bundle.MonthlyUsage)}
}

func usageKey(userID uint, month string) string {
	return fmt.Sprintf("%d:%s", userID, month)
}

func (r *fakeUsageRepo) GetByUserAndMonth(ctx context.Context, userID uint, month string) (*bundle.MonthlyUsage, error) {
	return r.rows[usageKey(userID, month)], nil
}

func (r *fakeUsageRepo) EnsureRow(ctx context.Context, userID uint, month string) (*bundle.MonthlyUsage, error) {
	key := usageKey(userID, month)
	if row, ok := r.rows[key]; ok {
		return row, nil
	}
	row, err := bundle.NewMonthlyUsage(userID, month, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	row.SetID(r.nextID)
	r.nextID++
	r.rows[key] = row
	return row, nil
}

func (r *fakeUsageRepo) ConsumeFreeMessage(ctx context.Context, userID uint, month string) (bool, error) {
	key := usageKey(userID, month)
	row, ok := r.rows[key]
	if !ok || !row.HasFreeQuota() {
		return false, nil
	}
	r.rows[key] = bundle.ReconstructMonthlyUsage(
		row.ID(), row.UserID(), row.Month(), row.MessagesUsed()+1,
		row.LastResetDate(), row.CreatedAt(), time.Now().UTC())
	return true, nil
}

func (r *fakeUsageRepo) ResetMonthlyQuota(ctx context.Context, userID uint, month string) error {
	key := usageKey(userID, month)
	row, ok := r.rows[key]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	r.rows[key] = bundle.ReconstructMonthlyUsage(
		row.ID(), row.UserID(), row.Month(), 0, now, row.CreatedAt(), now)
	return nil
}

// fakeGateway returns a scripted charge result and records calls.
type fakeGateway struct {
	succeed bool
	calls   int
}

func (g *fakeGateway) Charge(ctx context.Context, userID uint, reference string, amount decimal.Decimal) (PaymentResult, error) {
	g.calls++
	return PaymentResult{Succeeded: g.succeed, TransactionID: "txn_test"}, nil
}
