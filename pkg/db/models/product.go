package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a storefront listing. BasePrice is the 1.00ct anchor price
// that carat multipliers scale.
type Product struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string          `gorm:"column:name;not null" json:"name"`
	Description        *string         `gorm:"column:description" json:"description,omitempty"`
	BasePrice          decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null" json:"base_price"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null" json:"discount_percentage"`
	CategoryID         *uuid.UUID      `gorm:"column:category_id;type:uuid" json:"category_id,omitempty"`
	ImageURL           *string         `gorm:"column:image_url" json:"image_url,omitempty"`
	IsAvailable        bool            `gorm:"column:is_available;not null" json:"is_available"`
	IsFeatured         bool            `gorm:"column:is_featured;not null" json:"is_featured"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Images     []ProductImage     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Variants   []ProductVariant   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CaratLinks []ProductCaratLink `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"carat_links,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
