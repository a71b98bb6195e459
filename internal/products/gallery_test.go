package products

import (
	"testing"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	dbtypes "github.com/liorgem/diamondlab-backend/pkg/db/types"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func galleryProduct() *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Name:     "Test Ring",
		ImageURL: strptr("/uploads/legacy.webp"),
		Images: []models.ProductImage{
			{ImageURL: "/uploads/base-1.webp", IsPrimary: true},
			{ImageURL: "/uploads/base-2.webp"},
		},
		Variants: []models.ProductVariant{
			{
				ID:        uuid.New(),
				ColorName: "Gold",
				ColorCode: "#FFD700",
				Images:    dbtypes.StringList{"/uploads/gold-1.webp", "/uploads/gold-2.webp"},
				IsDefault: true,
			},
			{
				ID:        uuid.New(),
				ColorName: "Silver",
				ColorCode: "#C0C0C0",
			},
		},
	}
}

func TestResolveGallery_SelectedColorWithImages(t *testing.T) {
	product := galleryProduct()

	gallery := ResolveGallery(product, "gold")
	assert.Equal(t, GallerySourceVariant, gallery.Source)
	assert.Equal(t, []string{"/uploads/gold-1.webp", "/uploads/gold-2.webp"}, gallery.Images)
	assert.Equal(t, product.Variants[0].ID, *gallery.VariantID)
}

func TestResolveGallery_SelectedColorWithoutImagesFallsBack(t *testing.T) {
	product := galleryProduct()

	// Silver has no images of its own
	gallery := ResolveGallery(product, "Silver")
	assert.Equal(t, GallerySourceProduct, gallery.Source)
	assert.Equal(t, []string{"/uploads/base-1.webp", "/uploads/base-2.webp"}, gallery.Images)
}

func TestResolveGallery_NoColorUsesDefaultVariant(t *testing.T) {
	product := galleryProduct()

	gallery := ResolveGallery(product, "")
	assert.Equal(t, GallerySourceVariant, gallery.Source)
	assert.Equal(t, []string{"/uploads/gold-1.webp", "/uploads/gold-2.webp"}, gallery.Images)
}

func TestResolveGallery_LegacyImageFallback(t *testing.T) {
	product := galleryProduct()
	product.Variants = nil
	product.Images = nil

	gallery := ResolveGallery(product, "")
	assert.Equal(t, GallerySourceLegacy, gallery.Source)
	assert.Equal(t, []string{"/uploads/legacy.webp"}, gallery.Images)
}

func TestResolveGallery_NothingToShow(t *testing.T) {
	product := galleryProduct()
	product.Variants = nil
	product.Images = nil
	product.ImageURL = nil

	gallery := ResolveGallery(product, "")
	assert.Empty(t, gallery.Images)
	assert.Nil(t, gallery.VariantID)
}
