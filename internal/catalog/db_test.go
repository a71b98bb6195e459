package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	caratPricing := `
CREATE TABLE IF NOT EXISTS carat_pricing (
  id TEXT PRIMARY KEY,
  carat_weight NUMERIC NOT NULL UNIQUE,
  multiplier NUMERIC NOT NULL,
  display_name TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
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
);`
	links := `
CREATE TABLE IF NOT EXISTS product_carat_links (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  carat_pricing_id TEXT NOT NULL,
  is_default INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  UNIQUE (product_id, carat_pricing_id)
);`

	for _, ddl := range []string{caratPricing, products, links} {
		require.NoError(t, db.Exec(ddl).Error)
	}

	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
