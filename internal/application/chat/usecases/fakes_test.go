package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/chat"
	"lumina/internal/domain/user"
)

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
	var candidates []*bundle.Bundle
	for _, b := range r.bundles {
		if b.UserID() == userID && b.HasQuota() {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CreatedAt().Equal(candidates[j].CreatedAt()) {
			return candidates[i].ID() > candidates[j].ID()
		}
		return candidates[i].CreatedAt().After(candidates[j].CreatedAt())
	})
	return candidates[0], nil
}

func (r *fakeBundleRepo) FindDueForRenewal(ctx context.Context, now time.Time, limit int) ([]*bundle.Bundle, error) {
	var out []*bundle.Bundle
	for _, b := range r.bundles {
		if b.RenewalDue(now) {
			out = append(out, b)
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

type fakeChatRepo struct {
	nextID   uint
	messages []*chat.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextID: 1}
}

func (r *fakeChatRepo) Create(ctx context.Context, m *chat.Message) error {
	m.SetID(r.nextID)
	r.nextID++
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeChatRepo) GetRecentByUserID(ctx context.Context, userID uint, limit int) ([]*chat.Message, error) {
	var out []*chat.Message
	for i := len(r.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if r.messages[i].UserID() == userID {
			out = append(out, r.messages[i])
		}
	}
	return out, nil
}

func (r *fakeChatRepo) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.UserID() == userID {
			count++
		}
	}
	return count, nil
}

type fakeGenerator struct{}

func (g *fakeGenerator) Generate(ctx context.Context, userID uint, prompt string) (string, error) {
	return "echo: " + prompt, nil
}
