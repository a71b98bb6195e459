package variants

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires product variant persistence.
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

// ListByProduct returns variants in display order.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC, created_at ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// FindByID loads one variant.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindByColor loads the product's variant for a color name, matched
// case-insensitively.
func (r *Repository) FindByColor(ctx context.Context, productID uuid.UUID, colorName string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		First(&variant, "product_id = ? AND LOWER(color_name) = ?", productID, strings.ToLower(colorName)).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindDefault loads the product's default variant, if any.
func (r *Repository) FindDefault(ctx context.Context, productID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		First(&variant, "product_id = ? AND is_default = ?", productID, true).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// CountByProduct returns how many variants the product has.
func (r *Repository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new variant.
func (r *Repository) Create(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if variant.ID == uuid.Nil {
		variant.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// Update persists the full variant row.
func (r *Repository) Update(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Save(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// Delete removes the variant by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductVariant{}, "id = ?", id).Error
}

// ClearDefaults drops the default flag on every variant of the product.
func (r *Repository) ClearDefaults(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("product_id = ?", productID).
		Update("is_default", false).Error
}

// MarkDefault sets the default flag on one variant.
func (r *Repository) MarkDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", id).
		Update("is_default", true).Error
}

// FindFirstBySortOrder loads the product's first variant in display order.
func (r *Repository) FindFirstBySortOrder(ctx context.Context, productID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC, created_at ASC").
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}
