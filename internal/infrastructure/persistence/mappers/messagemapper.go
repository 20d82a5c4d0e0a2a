package mappers

import (
	"lumina/internal/domain/chat"
	"lumina/internal/infrastructure/persistence/models"
)

// MessageMapper converts between chat message entities and models.
type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToModel(entity *chat.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		UserID:      entity.UserID(),
		Content:     entity.Content(),
		Response:    entity.Response(),
		QuotaSource: string(entity.QuotaSource()),
		BundleID:    entity.BundleID(),
		CreatedAt:   entity.CreatedAt(),
	}
}

func (m *MessageMapper) ToEntity(model *models.MessageModel) *chat.Message {
	return chat.ReconstructMessage(
		model.ID,
		model.SID,
		model.UserID,
		model.Content,
		model.Response,
		chat.QuotaSource(model.QuotaSource),
		model.BundleID,
		model.CreatedAt,
	)
}

func (m *MessageMapper) ToEntities(ms []*models.MessageModel) []*chat.Message {
	entities := make([]*chat.Message, 0, len(ms))
	for _, model := range ms {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}
