// Package user contains the user aggregate.
package user

import (
	"fmt"
	"strings"
	"time"

	"lumina/internal/shared/id"
)

// User is an account that owns subscription bundles and sends chat messages.
type User struct {
	id        uint
	sid       string
	username  string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with a generated SID.
func NewUser(username, email string, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	sid, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user SID: %w", err)
	}

	return &User{
		sid:       sid,
		username:  username,
		email:     email,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
	}, nil
}

// ReconstructUser recreates a user from persisted state.
func ReconstructUser(userID uint, sid, username, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        userID,
		sid:       sid,
		username:  username,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uint             { return u.id }
func (u *User) SID() string          { return u.sid }
func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// SetID sets the database ID after persistence.
func (u *User) SetID(userID uint) {
	u.id = userID
}
