package mappers

import (
	"lumina/internal/domain/bundle"
	"lumina/internal/infrastructure/persistence/models"
)

// UsageMapper converts between monthly usage entities and models.
type UsageMapper struct{}

func NewUsageMapper() *UsageMapper {
	return &UsageMapper{}
}

func (m *UsageMapper) ToModel(entity *bundle.MonthlyUsage) *models.UsageModel {
	return &models.UsageModel{
		ID:            entity.ID(),
		UserID:        entity.UserID(),
		Month:         entity.Month(),
		MessagesUsed:  entity.MessagesUsed(),
		LastResetDate: entity.LastResetDate(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func (m *UsageMapper) ToEntity(model *models.UsageModel) *bundle.MonthlyUsage {
	return bundle.ReconstructMonthlyUsage(
		model.ID,
		model.UserID,
		model.Month,
		model.MessagesUsed,
		model.LastResetDate,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
