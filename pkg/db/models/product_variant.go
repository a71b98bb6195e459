package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/liorgem/diamondlab-backend/pkg/db/types"
)

// ProductVariant is a metal color option with its own image gallery.
// Color names are unique per product; at most one variant per product
// carries IsDefault.
type ProductVariant struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID          `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_variant_color,priority:1" json:"product_id"`
	ColorName string             `gorm:"column:color_name;not null;uniqueIndex:idx_product_variant_color,priority:2" json:"color_name"`
	ColorCode string             `gorm:"column:color_code;not null" json:"color_code"`
	Images    dbtypes.StringList `gorm:"column:images;type:text" json:"images"`
	IsDefault bool               `gorm:"column:is_default;not null" json:"is_default"`
	SortOrder int                `gorm:"column:sort_order;not null" json:"sort_order"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
