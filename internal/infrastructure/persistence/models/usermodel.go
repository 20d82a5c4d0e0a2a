// Package models contains the gorm persistence models.
package models

import (
	"time"

	"lumina/internal/shared/constants"
)

// UserModel is the persistence model for users.
type UserModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	SID       string    `gorm:"column:sid;size:32;uniqueIndex;not null"`
	Username  string    `gorm:"size:64;uniqueIndex;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
