package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"lumina/internal/domain/bundle"
	"lumina/internal/infrastructure/persistence/models"
)

// BundleMapper converts between bundle entities and models.
type BundleMapper struct{}

func NewBundleMapper() *BundleMapper {
	return &BundleMapper{}
}

func (m *BundleMapper) ToModel(entity *bundle.Bundle) (*models.BundleModel, error) {
	var lastPayment datatypes.JSON
	if rec := entity.LastPayment(); rec != nil {
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payment record: %w", err)
		}
		lastPayment = datatypes.JSON(raw)
	}

	return &models.BundleModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		UUID:         entity.UUID(),
		UserID:       entity.UserID(),
		Tier:         string(entity.Tier()),
		BillingCycle: string(entity.BillingCycle()),
		Price:        entity.Price(),
		MaxMessages:  entity.MaxMessages(),
		MessagesUsed: entity.MessagesUsed(),
		IsActive:     entity.IsActive(),
		AutoRenew:    entity.AutoRenew(),
		StartDate:    entity.StartDate(),
		EndDate:      entity.EndDate(),
		RenewalDate:  entity.RenewalDate(),
		LastPayment:  lastPayment,
		Version:      entity.Version(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *BundleMapper) ToEntity(model *models.BundleModel) (*bundle.Bundle, error) {
	var lastPayment *bundle.PaymentRecord
	if len(model.LastPayment) > 0 {
		var rec bundle.PaymentRecord
		if err := json.Unmarshal(model.LastPayment, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment record: %w", err)
		}
		lastPayment = &rec
	}

	return bundle.ReconstructBundle(
		model.ID,
		model.SID,
		model.UUID,
		model.UserID,
		bundle.Tier(model.Tier),
		bundle.BillingCycle(model.BillingCycle),
		model.Price,
		model.MaxMessages,
		model.MessagesUsed,
		model.IsActive,
		model.AutoRenew,
		model.StartDate,
		model.EndDate,
		model.RenewalDate,
		lastPayment,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *BundleMapper) ToEntities(ms []*models.BundleModel) ([]*bundle.Bundle, error) {
	entities := make([]*bundle.Bundle, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
