package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO is the wire shape of a product listing.
type ProductDTO struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	BasePrice          decimal.Decimal `json:"base_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	CategoryID         *uuid.UUID      `json:"category_id,omitempty"`
	ImageURL           *string         `json:"image_url,omitempty"`
	IsAvailable        bool            `json:"is_available"`
	IsFeatured         bool            `json:"is_featured"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Images       []ImageDTO           `json:"images,omitempty"`
	Variants     []VariantSummary     `json:"variants,omitempty"`
	CaratOptions []CaratOptionSummary `json:"carat_options,omitempty"`
}

// ImageDTO is one gallery image.
type ImageDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	ImageURL  string    `json:"image_url"`
	AltText   *string   `json:"alt_text,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	SortOrder int       `json:"sort_order"`
}

// VariantSummary is the variant view embedded in product reads.
type VariantSummary struct {
	ID        uuid.UUID `json:"id"`
	ColorName string    `json:"color_name"`
	ColorCode string    `json:"color_code"`
	Images    []string  `json:"images"`
	IsDefault bool      `json:"is_default"`
	SortOrder int       `json:"sort_order"`
}

// CaratOptionSummary is the carat option view embedded in product reads.
type CaratOptionSummary struct {
	ID             uuid.UUID       `json:"id"`
	CaratPricingID uuid.UUID       `json:"carat_pricing_id"`
	CaratWeight    decimal.Decimal `json:"carat_weight"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	DisplayName    *string         `json:"display_name,omitempty"`
	IsDefault      bool            `json:"is_default"`
	SortOrder      int             `json:"sort_order"`
}

func toDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                 product.ID,
		Name:               product.Name,
		Description:        product.Description,
		BasePrice:          product.BasePrice,
		DiscountPercentage: product.DiscountPercentage,
		CategoryID:         product.CategoryID,
		ImageURL:           product.ImageURL,
		IsAvailable:        product.IsAvailable,
		IsFeatured:         product.IsFeatured,
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}

	for i := range product.Images {
		dto.Images = append(dto.Images, toImageDTO(&product.Images[i]))
	}
	for i := range product.Variants {
		variant := &product.Variants[i]
		images := []string(variant.Images)
		if images == nil {
			images = []string{}
		}
		dto.Variants = append(dto.Variants, VariantSummary{
			ID:        variant.ID,
			ColorName: variant.ColorName,
			ColorCode: variant.ColorCode,
			Images:    images,
			IsDefault: variant.IsDefault,
			SortOrder: variant.SortOrder,
		})
	}
	for i := range product.CaratLinks {
		link := &product.CaratLinks[i]
		option := CaratOptionSummary{
			ID:             link.ID,
			CaratPricingID: link.CaratPricingID,
			IsDefault:      link.IsDefault,
			SortOrder:      link.SortOrder,
		}
		if link.Entry != nil {
			option.CaratWeight = link.Entry.CaratWeight
			option.Multiplier = link.Entry.Multiplier
			option.DisplayName = link.Entry.DisplayName
		}
		dto.CaratOptions = append(dto.CaratOptions, option)
	}

	return dto
}

func toImageDTO(image *models.ProductImage) ImageDTO {
	return ImageDTO{
		ID:        image.ID,
		ProductID: image.ProductID,
		ImageURL:  image.ImageURL,
		AltText:   image.AltText,
		IsPrimary: image.IsPrimary,
		SortOrder: image.SortOrder,
	}
}

func toDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *toDTO(&products[i]))
	}
	return out
}
