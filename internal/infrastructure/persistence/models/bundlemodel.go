package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"lumina/internal/shared/constants"
)

// BundleModel is the persistence model for subscription bundles.
type BundleModel struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	SID          string          `gorm:"column:sid;size:32;uniqueIndex;not null"`
	UUID         string          `gorm:"column:uuid;size:36;uniqueIndex;not null"`
	UserID       uint            `gorm:"index:idx_bundles_user_active;not null"`
	Tier         string          `gorm:"size:16;not null"`
	BillingCycle string          `gorm:"size:8;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MaxMessages  int             `gorm:"not null"`
	MessagesUsed int             `gorm:"not null;default:0"`
	IsActive     bool            `gorm:"index:idx_bundles_user_active;not null;default:true"`
	AutoRenew    bool            `gorm:"not null;default:false"`
	StartDate    time.Time       `gorm:"not null"`
	EndDate      time.Time       `gorm:"not null"`
	RenewalDate  *time.Time      `gorm:"index"`
	LastPayment  datatypes.JSON  `gorm:"column:last_payment"`
	Version      int             `gorm:"not null;default:1"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

func (BundleModel) TableName() string {
	return constants.TableSubscriptionBundles
}
