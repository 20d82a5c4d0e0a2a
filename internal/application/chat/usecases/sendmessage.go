// Package usecases contains the chat use cases.
package usecases

import (
	"context"
	"strings"

	"lumina/internal/domain/bundle"
	"lumina/internal/domain/chat"
	"lumina/internal/domain/user"
	"lumina/internal/shared/biztime"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/logger"
)

const maxMessageLength = 4000

// Number of retries when a bundle's quota is stolen between the lookup and
// the conditional increment.
const consumeRetries = 3

// SendMessageCommand carries the input for sending a chat message.
type SendMessageCommand struct {
	UserSID string
	Content string
}

// SendMessageResult is the outcome of a sent message.
type SendMessageResult struct {
	Message     *chat.Message
	QuotaSource chat.QuotaSource
}

// SendMessageUseCase consumes quota, generates a response, and records the
// message. The free monthly allowance is spent before any bundle; among
// bundles, the most recently purchased active one with headroom wins.
type SendMessageUseCase struct {
	bundleRepo bundle.Repository
	usageRepo  bundle.UsageRepository
	userRepo   user.Repository
	chatRepo   chat.Repository
	generator  AnswerGenerator
	logger     logger.Interface
}

func NewSendMessageUseCase(
	bundleRepo bundle.Repository,
	usageRepo bundle.UsageRepository,
	userRepo user.Repository,
	chatRepo chat.Repository,
	generator AnswerGenerator,
	log logger.Interface,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		bundleRepo: bundleRepo,
		usageRepo:  usageRepo,
		userRepo:   userRepo,
		chatRepo:   chatRepo,
		generator:  generator,
		logger:     log,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error) {
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return nil, errors.NewValidationError("Message content cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, errors.NewValidationError("Message content too long")
	}

	owner, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err.Error())
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	source, bundleID, err := uc.consumeQuota(ctx, owner.ID())
	if err != nil {
		return nil, err
	}

	response, err := uc.generator.Generate(ctx, owner.ID(), content)
	if err != nil {
		return nil, errors.NewInternalError("Failed to generate response", err.Error())
	}

	msg, err := chat.NewMessage(owner.ID(), content, response, source, bundleID, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewInternalError("Failed to build message", err.Error())
	}
	if err := uc.chatRepo.Create(ctx, msg); err != nil {
		return nil, errors.NewInternalError("Failed to store message", err.Error())
	}

	uc.logger.Infow("message sent",
		"user_id", owner.ID(),
		"message_sid", msg.SID(),
		"quota_source", source)

	return &SendMessageResult{Message: msg, QuotaSource: source}, nil
}

// consumeQuota spends one message of quota. The free allowance is tried
// first; then the best bundle, retrying when a concurrent send drains the
// bundle between lookup and increment.
func (uc *SendMessageUseCase) consumeQuota(ctx context.Context, userID uint) (chat.QuotaSource, *uint, error) {
	month := biztime.CurrentMonthKey()

	if _, err := uc.usageRepo.EnsureRow(ctx, userID, month); err != nil {
		return "", nil, errors.NewInternalError("Failed to prepare usage ledger", err.Error())
	}

	ok, err := uc.usageRepo.ConsumeFreeMessage(ctx, userID, month)
	if err != nil {
		return "", nil, errors.NewInternalError("Failed to consume free quota", err.Error())
	}
	if ok {
		return chat.QuotaSourceFree, nil, nil
	}

	for attempt := 0; attempt < consumeRetries; attempt++ {
		best, err := uc.bundleRepo.GetLatestActiveWithQuota(ctx, userID)
		if err != nil {
			return "", nil, errors.NewInternalError("Failed to find usable subscription", err.Error())
		}
		if best == nil {
			return "", nil, errors.NewQuotaExceededError()
		}

		ok, err := uc.bundleRepo.ConsumeMessage(ctx, best.ID())
		if err != nil {
			return "", nil, errors.NewInternalError("Failed to consume bundle quota", err.Error())
		}
		if ok {
			bundleID := best.ID()
			return chat.QuotaSourceBundle, &bundleID, nil
		}
	}

	return "", nil, errors.NewQuotaExceededError()
}
