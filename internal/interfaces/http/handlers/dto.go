// Package handlers contains the gin HTTP handlers.
package handlers

import (
	"time"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/chat"
	"lumina/internal/domain/user"
)

type userResponse struct {
	SID       string    `json:"sid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		SID:       u.SID(),
		Username:  u.Username(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
	}
}

type bundleResponse struct {
	SID          string     `json:"sid"`
	Tier         string     `json:"tier"`
	BillingCycle string     `json:"billing_cycle"`
	Price        string     `json:"price"`
	MaxMessages  int        `json:"max_messages"`
	MessagesUsed int        `json:"messages_used"`
	Unlimited    bool       `json:"unlimited"`
	IsActive     bool       `json:"is_active"`
	AutoRenew    bool       `json:"auto_renew"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toBundleResponse(b *bundle.Bundle) bundleResponse {
	return bundleResponse{
		SID:          b.SID(),
		Tier:         string(b.Tier()),
		BillingCycle: string(b.BillingCycle()),
		Price:        b.Price().StringFixed(2),
		MaxMessages:  b.MaxMessages(),
		MessagesUsed: b.MessagesUsed(),
		Unlimited:    b.Unlimited(),
		IsActive:     b.IsActive(),
		AutoRenew:    b.AutoRenew(),
		StartDate:    b.StartDate(),
		EndDate:      b.EndDate(),
		RenewalDate:  b.RenewalDate(),
		CreatedAt:    b.CreatedAt(),
	}
}

func toBundleResponses(bundles []*bundle.Bundle) []bundleResponse {
	out := make([]bundleResponse, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, toBundleResponse(b))
	}
	return out
}

type tierResponse struct {
	Tier         string `json:"tier"`
	MaxMessages  int    `json:"max_messages"`
	Unlimited    bool   `json:"unlimited"`
	MonthlyPrice string `json:"monthly_price"`
	YearlyPrice  string `json:"yearly_price"`
}

func toTierResponses(specs []bundle.TierSpec) []tierResponse {
	out := make([]tierResponse, 0, len(specs))
	for _, spec := range specs {
		out = append(out, tierResponse{
			Tier:         string(spec.Tier),
			MaxMessages:  spec.MaxMessages,
			Unlimited:    spec.Unlimited(),
			MonthlyPrice: spec.MonthlyPrice.StringFixed(2),
			YearlyPrice:  spec.YearlyPrice.StringFixed(2),
		})
	}
	return out
}

type messageResponse struct {
	SID         string    `json:"sid"`
	Content     string    `json:"content"`
	Response    string    `json:"response"`
	QuotaSource string    `json:"quota_source"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMessageResponse(m *chat.Message) messageResponse {
	return messageResponse{
		SID:         m.SID(),
		Content:     m.Content(),
		Response:    m.Response(),
		QuotaSource: string(m.QuotaSource()),
		CreatedAt:   m.CreatedAt(),
	}
}

func toMessageResponses(messages []*chat.Message) []messageResponse {
	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}
	return out
}
