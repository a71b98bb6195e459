package products

import (
	"strings"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
)

// Gallery source labels, in fallback order.
const (
	GallerySourceVariant = "variant"
	GallerySourceProduct = "product"
	GallerySourceLegacy  = "legacy"
)

// Gallery is the ordered image set to render for a product, after color
// selection and fallbacks are applied.
type Gallery struct {
	Images    []string   `json:"images"`
	Source    string     `json:"source"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
}

// ResolveGallery picks the images for a product page. A selected color's
// variant wins when it has images of its own; otherwise the default
// variant, then the product gallery, then the legacy single image field.
// The product must be loaded with variants and images.
func ResolveGallery(product *models.Product, colorName string) Gallery {
	if variant := pickVariant(product, colorName); variant != nil && len(variant.Images) > 0 {
		id := variant.ID
		return Gallery{
			Images:    append([]string(nil), variant.Images...),
			Source:    GallerySourceVariant,
			VariantID: &id,
		}
	}

	if len(product.Images) > 0 {
		urls := make([]string, 0, len(product.Images))
		for i := range product.Images {
			urls = append(urls, product.Images[i].ImageURL)
		}
		return Gallery{Images: urls, Source: GallerySourceProduct}
	}

	if product.ImageURL != nil && strings.TrimSpace(*product.ImageURL) != "" {
		return Gallery{Images: []string{*product.ImageURL}, Source: GallerySourceLegacy}
	}

	return Gallery{Images: []string{}, Source: GallerySourceProduct}
}

func pickVariant(product *models.Product, colorName string) *models.ProductVariant {
	needle := strings.ToLower(strings.TrimSpace(colorName))

	if needle != "" {
		for i := range product.Variants {
			if strings.ToLower(product.Variants[i].ColorName) == needle {
				return &product.Variants[i]
			}
		}
	}

	for i := range product.Variants {
		if product.Variants[i].IsDefault {
			return &product.Variants[i]
		}
	}
	if len(product.Variants) > 0 {
		return &product.Variants[0]
	}
	return nil
}
