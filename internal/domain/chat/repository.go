package chat

import "context"

// Repository defines persistence for chat messages.
type Repository interface {
	Create(ctx context.Context, m *Message) error

	// GetRecentByUserID returns the user's most recent messages, newest
	// first, capped at limit.
	GetRecentByUserID(ctx context.Context, userID uint, limit int) ([]*Message, error)

	// CountByUserID returns how many messages the user has ever sent.
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}
