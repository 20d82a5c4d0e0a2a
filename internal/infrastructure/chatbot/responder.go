// Package chatbot provides the canned response generator used in place of a
// real model backend.
package chatbot

import (
	"context"
	"fmt"
	"strings"
)

// EchoResponder generates a deterministic canned answer. It exists so the
// quota and billing flows can be exercised end to end without an inference
// backend.
type EchoResponder struct{}

// NewEchoResponder creates the canned responder.
func NewEchoResponder() *EchoResponder {
	return &EchoResponder{}
}

// Generate returns a canned answer derived from the prompt.
func (r *EchoResponder) Generate(ctx context.Context, userID uint, prompt string) (string, error) {
	trimmed := strings.TrimSpace(prompt)
	if len(trimmed) > 80 {
		trimmed = trimmed[:80] + "..."
	}
	return fmt.Sprintf("You said: %q. This is a simulated assistant response.", trimmed), nil
}
