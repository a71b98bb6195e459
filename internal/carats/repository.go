package carats

import (
	"context"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires product carat link persistence.
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

// ListByProduct returns links with their catalog entries, ordered for display.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductCaratLink, error) {
	var links []models.ProductCaratLink
	err := r.db.WithContext(ctx).
		Preload("Entry").
		Where("product_id = ?", productID).
		Order("sort_order ASC, created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// FindLink loads the link joining a product to a catalog entry.
func (r *Repository) FindLink(ctx context.Context, productID, caratPricingID uuid.UUID) (*models.ProductCaratLink, error) {
	var link models.ProductCaratLink
	err := r.db.WithContext(ctx).
		Preload("Entry").
		First(&link, "product_id = ? AND carat_pricing_id = ?", productID, caratPricingID).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// FindDefault loads the product's default link, if any.
func (r *Repository) FindDefault(ctx context.Context, productID uuid.UUID) (*models.ProductCaratLink, error) {
	var link models.ProductCaratLink
	err := r.db.WithContext(ctx).
		Preload("Entry").
		First(&link, "product_id = ? AND is_default = ?", productID, true).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// CountByProduct returns how many links the product has.
func (r *Repository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductCaratLink{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new link.
func (r *Repository) Create(ctx context.Context, link *models.ProductCaratLink) (*models.ProductCaratLink, error) {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// Delete removes the link by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductCaratLink{}, "id = ?", id).Error
}

// ClearDefaults drops the default flag on every link of the product.
func (r *Repository) ClearDefaults(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductCaratLink{}).
		Where("product_id = ?", productID).
		Update("is_default", false).Error
}

// MarkDefault sets the default flag on one link.
func (r *Repository) MarkDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductCaratLink{}).
		Where("id = ?", id).
		Update("is_default", true).Error
}

// FindFirstBySortOrder loads the product's first link in display order.
func (r *Repository) FindFirstBySortOrder(ctx context.Context, productID uuid.UUID) (*models.ProductCaratLink, error) {
	var link models.ProductCaratLink
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC, created_at ASC").
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}
