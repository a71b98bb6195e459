package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage is one entry of a product's base gallery, shown when the
// selected variant has no images of its own.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	ImageURL  string    `gorm:"column:image_url;not null" json:"image_url"`
	AltText   *string   `gorm:"column:alt_text" json:"alt_text,omitempty"`
	IsPrimary bool      `gorm:"column:is_primary;not null" json:"is_primary"`
	SortOrder int       `gorm:"column:sort_order;not null" json:"sort_order"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
