package variants

import (
	"time"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
)

// VariantDTO is the wire shape of one metal color option.
type VariantDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	ColorName string    `json:"color_name"`
	ColorCode string    `json:"color_code"`
	Images    []string  `json:"images"`
	IsDefault bool      `json:"is_default"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(variant *models.ProductVariant) *VariantDTO {
	images := []string(variant.Images)
	if images == nil {
		images = []string{}
	}
	return &VariantDTO{
		ID:        variant.ID,
		ProductID: variant.ProductID,
		ColorName: variant.ColorName,
		ColorCode: variant.ColorCode,
		Images:    images,
		IsDefault: variant.IsDefault,
		SortOrder: variant.SortOrder,
		CreatedAt: variant.CreatedAt,
		UpdatedAt: variant.UpdatedAt,
	}
}

func toDTOs(variants []models.ProductVariant) []VariantDTO {
	out := make([]VariantDTO, 0, len(variants))
	for i := range variants {
		out = append(out, *toDTO(&variants[i]))
	}
	return out
}
