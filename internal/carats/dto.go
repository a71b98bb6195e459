package carats

import (
	"time"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// LinkDTO is the wire shape of one product carat option, flattened with
// its catalog entry so storefronts render it without a second lookup.
type LinkDTO struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	CaratPricingID uuid.UUID       `json:"carat_pricing_id"`
	CaratWeight    decimal.Decimal `json:"carat_weight"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	DisplayName    *string         `json:"display_name,omitempty"`
	IsDefault      bool            `json:"is_default"`
	SortOrder      int             `json:"sort_order"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AddAllResult summarizes a bulk link operation.
type AddAllResult struct {
	Added   int       `json:"added"`
	Skipped int       `json:"skipped"`
	Links   []LinkDTO `json:"links"`
}

func toDTO(link *models.ProductCaratLink) *LinkDTO {
	dto := &LinkDTO{
		ID:             link.ID,
		ProductID:      link.ProductID,
		CaratPricingID: link.CaratPricingID,
		IsDefault:      link.IsDefault,
		SortOrder:      link.SortOrder,
		CreatedAt:      link.CreatedAt,
	}
	if link.Entry != nil {
		dto.CaratWeight = link.Entry.CaratWeight
		dto.Multiplier = link.Entry.Multiplier
		dto.DisplayName = link.Entry.DisplayName
	}
	return dto
}

func toDTOs(links []models.ProductCaratLink) []LinkDTO {
	out := make([]LinkDTO, 0, len(links))
	for i := range links {
		out = append(out, *toDTO(&links[i]))
	}
	return out
}
