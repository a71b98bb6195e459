package products

import (
	"testing"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  base_price NUMERIC NOT NULL,
  discount_percentage NUMERIC NOT NULL DEFAULT 0,
  category_id TEXT,
  image_url TEXT,
  is_available INTEGER NOT NULL DEFAULT 1,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS product_images (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  image_url TEXT NOT NULL,
  alt_text TEXT,
  is_primary INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  color_name TEXT NOT NULL,
  color_code TEXT NOT NULL,
  images TEXT NOT NULL DEFAULT '[]',
  is_default INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (product_id, color_name)
);`,
		`CREATE TABLE IF NOT EXISTS carat_pricing (
  id TEXT PRIMARY KEY,
  carat_weight NUMERIC NOT NULL UNIQUE,
  multiplier NUMERIC NOT NULL,
  display_name TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS product_carat_links (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  carat_pricing_id TEXT NOT NULL,
  is_default INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  UNIQUE (product_id, carat_pricing_id)
);`,
	}

	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func mustCreateProduct(t *testing.T, db *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        "Classic Solitaire",
		BasePrice:   decimal.NewFromInt(10000),
		IsAvailable: true,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func mustLinkCarat(t *testing.T, db *gorm.DB, productID, caratPricingID uuid.UUID) {
	t.Helper()
	link := &models.ProductCaratLink{
		ID:             uuid.New(),
		ProductID:      productID,
		CaratPricingID: caratPricingID,
	}
	require.NoError(t, db.Create(link).Error)
}

func mustCreateEntry(t *testing.T, db *gorm.DB, weight, multiplier string) *models.CaratPricingEntry {
	t.Helper()
	entry := &models.CaratPricingEntry{
		ID:          uuid.New(),
		CaratWeight: decimal.RequireFromString(weight),
		Multiplier:  decimal.RequireFromString(multiplier),
		IsActive:    true,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}
