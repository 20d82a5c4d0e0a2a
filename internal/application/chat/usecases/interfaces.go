package usecases

import "context"

// AnswerGenerator produces the assistant response for a user prompt.
type AnswerGenerator interface {
	Generate(ctx context.Context, userID uint, prompt string) (string, error)
}
