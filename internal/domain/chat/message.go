// Package chat contains the chat message entity.
package chat

import (
	"fmt"
	"strings"
	"time"

	"lumina/internal/shared/id"
)

// QuotaSource records which allowance absorbed a message.
type QuotaSource string

const (
	// QuotaSourceFree marks a message paid for by the monthly free allowance.
	QuotaSourceFree QuotaSource = "free"
	// QuotaSourceBundle marks a message paid for by a subscription bundle.
	QuotaSourceBundle QuotaSource = "bundle"
)

// Message is one user prompt together with the generated response.
type Message struct {
	id          uint
	sid         string
	userID      uint
	content     string
	response    string
	quotaSource QuotaSource
	bundleID    *uint
	createdAt   time.Time
}

// NewMessage creates a chat message after quota has been consumed.
// bundleID is nil for messages absorbed by the free allowance.
func NewMessage(userID uint, content, response string, source QuotaSource, bundleID *uint, now time.Time) (*Message, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("message content cannot be empty")
	}

	sid, err := id.Generate(id.PrefixMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message SID: %w", err)
	}

	return &Message{
		sid:         sid,
		userID:      userID,
		content:     content,
		response:    response,
		quotaSource: source,
		bundleID:    bundleID,
		createdAt:   now.UTC(),
	}, nil
}

// ReconstructMessage recreates a message from persisted state.
func ReconstructMessage(msgID uint, sid string, userID uint, content, response string, source QuotaSource, bundleID *uint, createdAt time.Time) *Message {
	return &Message{
		id:          msgID,
		sid:         sid,
		userID:      userID,
		content:     content,
		response:    response,
		quotaSource: source,
		bundleID:    bundleID,
		createdAt:   createdAt,
	}
}

func (m *Message) ID() uint                 { return m.id }
func (m *Message) SID() string              { return m.sid }
func (m *Message) UserID() uint             { return m.userID }
func (m *Message) Content() string          { return m.content }
func (m *Message) Response() string         { return m.response }
func (m *Message) QuotaSource() QuotaSource { return m.quotaSource }
func (m *Message) CreatedAt() time.Time     { return m.createdAt }

// BundleID returns the bundle that absorbed the message, or nil for free
// messages.
func (m *Message) BundleID() *uint {
	if m.bundleID == nil {
		return nil
	}
	v := *m.bundleID
	return &v
}

// SetID sets the database ID after persistence.
func (m *Message) SetID(msgID uint) {
	m.id = msgID
}
