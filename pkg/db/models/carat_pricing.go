package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaratPricingEntry is one row of the carat weight -> multiplier catalog.
type CaratPricingEntry struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CaratWeight decimal.Decimal `gorm:"column:carat_weight;type:numeric(6,2);not null;uniqueIndex:idx_carat_pricing_weight" json:"carat_weight"`
	Multiplier  decimal.Decimal `gorm:"column:multiplier;type:numeric(10,4);not null" json:"multiplier"`
	DisplayName *string         `gorm:"column:display_name" json:"display_name,omitempty"`
	IsActive    bool            `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CaratPricingEntry) TableName() string {
	return "carat_pricing"
}
