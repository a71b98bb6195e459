package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository wires carat pricing persistence.
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

// FindByID loads one catalog entry.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CaratPricingEntry, error) {
	var entry models.CaratPricingEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByWeight loads the entry for an exact carat weight.
func (r *Repository) FindByWeight(ctx context.Context, weight decimal.Decimal) (*models.CaratPricingEntry, error) {
	var entry models.CaratPricingEntry
	if err := r.db.WithContext(ctx).First(&entry, "carat_weight = ?", weight).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns catalog entries ordered by ascending weight.
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]models.CaratPricingEntry, error) {
	query := r.db.WithContext(ctx).Order("carat_weight ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	var entries []models.CaratPricingEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create inserts a new catalog entry.
func (r *Repository) Create(ctx context.Context, entry *models.CaratPricingEntry) (*models.CaratPricingEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Update persists the full entry row.
func (r *Repository) Update(ctx context.Context, entry *models.CaratPricingEntry) (*models.CaratPricingEntry, error) {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CaratPricingEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountLinks reports how many product links reference the entry.
func (r *Repository) CountLinks(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductCaratLink{}).
		Where("carat_pricing_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// IsUniqueViolation reports whether err is a unique index violation, on
// Postgres or on the sqlite test harness.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
