package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductCaratLink attaches a catalog carat weight to a product. At most
// one link per product carries IsDefault.
type ProductCaratLink struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_carat,priority:1" json:"product_id"`
	CaratPricingID uuid.UUID `gorm:"column:carat_pricing_id;type:uuid;not null;uniqueIndex:idx_product_carat,priority:2" json:"carat_pricing_id"`
	IsDefault      bool      `gorm:"column:is_default;not null" json:"is_default"`
	SortOrder      int       `gorm:"column:sort_order;not null" json:"sort_order"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Entry *CaratPricingEntry `gorm:"foreignKey:CaratPricingID" json:"entry,omitempty"`
}

func (ProductCaratLink) TableName() string {
	return "product_carat_links"
}
