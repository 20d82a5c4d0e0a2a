// Package mappers converts between domain entities and persistence models.
package mappers

import (
	"lumina/internal/domain/user"
	"lumina/internal/infrastructure/persistence/models"
)

// UserMapper converts between user entities and models.
type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToModel(entity *user.User) *models.UserModel {
	return &models.UserModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		Username:  entity.Username(),
		Email:     entity.Email(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *UserMapper) ToEntity(model *models.UserModel) *user.User {
	return user.ReconstructUser(
		model.ID,
		model.SID,
		model.Username,
		model.Email,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapper) ToEntities(ms []*models.UserModel) []*user.User {
	entities := make([]*user.User, 0, len(ms))
	for _, model := range ms {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}
