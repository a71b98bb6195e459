package products

import (
	"context"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListFilter narrows the storefront product listing.
type ListFilter struct {
	CategoryID     *uuid.UUID
	FeaturedOnly   bool
	DiscountedOnly bool
	AvailableOnly  bool
	Offset         int
	Limit          int
}

// Repository wires product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with its gallery, variants and carat options.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("CaratLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("CaratLinks.Entry").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindCaratLink loads the product's link for one catalog entry.
func (r *Repository) FindCaratLink(ctx context.Context, productID, caratPricingID uuid.UUID) (*models.ProductCaratLink, error) {
	var link models.ProductCaratLink
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND carat_pricing_id = ?", productID, caratPricingID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// FindCaratLinkByWeight matches one of the product's linked catalog
// entries by its carat weight.
func (r *Repository) FindCaratLinkByWeight(ctx context.Context, productID uuid.UUID, weight decimal.Decimal) (*models.ProductCaratLink, error) {
	var link models.ProductCaratLink
	err := r.db.WithContext(ctx).
		Joins("JOIN carat_pricing ON carat_pricing.id = product_carat_links.carat_pricing_id").
		Where("product_carat_links.product_id = ? AND carat_pricing.carat_weight = ?", productID, weight).
		Preload("Entry").
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// List returns products matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Order("created_at DESC")

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.DiscountedOnly {
		query = query.Where("discount_percentage > 0")
	}
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update persists the full product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product and its dependents. Children are deleted
// explicitly so the behavior does not rest on FK cascade support.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Delete(&models.ProductImage{}, "product_id = ?", id).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.ProductVariant{}, "product_id = ?", id).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.ProductCaratLink{}, "product_id = ?", id).Error; err != nil {
		return err
	}
	result := tx.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateImage inserts a gallery image.
func (r *Repository) CreateImage(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error) {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// ListImages returns the product's gallery, primary first.
func (r *Repository) ListImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("is_primary DESC, sort_order ASC, created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// FindImageByID loads one gallery image.
func (r *Repository) FindImageByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes one gallery image.
func (r *Repository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductImage{}, "id = ?", id).Error
}
