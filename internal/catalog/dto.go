package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// EntryDTO is the wire shape of one catalog entry.
type EntryDTO struct {
	ID          uuid.UUID       `json:"id"`
	CaratWeight decimal.Decimal `json:"carat_weight"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	DisplayName *string         `json:"display_name,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toDTO(entry *models.CaratPricingEntry) *EntryDTO {
	return &EntryDTO{
		ID:          entry.ID,
		CaratWeight: entry.CaratWeight,
		Multiplier:  entry.Multiplier,
		DisplayName: entry.DisplayName,
		IsActive:    entry.IsActive,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}

func toDTOs(entries []models.CaratPricingEntry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *toDTO(&entries[i]))
	}
	return out
}
