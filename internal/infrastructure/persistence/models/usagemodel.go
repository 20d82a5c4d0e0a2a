package models

import (
	"time"

	"lumina/internal/shared/constants"
)

// UsageModel is the persistence model for the monthly free allowance ledger.
type UsageModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	UserID       uint      `gorm:"uniqueIndex:uk_usage_user_month;not null"`
	Month        string    `gorm:"size:7;uniqueIndex:uk_usage_user_month;not null"`
	MessagesUsed  int       `gorm:"not null;default:0"`
	LastResetDate time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (UsageModel) TableName() string {
	return constants.TableUserMonthlyUsage
}
