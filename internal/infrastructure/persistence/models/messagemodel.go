package models

import (
	"time"

	"lumina/internal/shared/constants"
)

// MessageModel is the persistence model for chat messages.
type MessageModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	SID         string    `gorm:"column:sid;size:32;uniqueIndex;not null"`
	UserID      uint      `gorm:"index:idx_messages_user_created;not null"`
	Content     string    `gorm:"type:text;not null"`
	Response    string    `gorm:"type:text;not null"`
	QuotaSource string    `gorm:"size:8;not null"`
	BundleID    *uint     `gorm:""`
	CreatedAt   time.Time `gorm:"index:idx_messages_user_created;not null"`
}

func (MessageModel) TableName() string {
	return constants.TableChatMessages
}
