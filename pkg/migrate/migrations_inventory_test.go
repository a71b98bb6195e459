package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDir_ShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestShippedMigrations_CoverCoreTables(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	require.NoError(t, err)

	var all strings.Builder
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
		require.NoError(t, err)
		all.Write(b)
	}

	ddl := all.String()
	for _, table := range []string{"products", "product_images", "carat_pricing", "product_carat_links", "product_variants"} {
		assert.Contains(t, ddl, "CREATE TABLE "+table, "missing DDL for %s", table)
	}

	// partial unique indexes back the single-default invariants
	assert.Contains(t, ddl, "idx_product_carat_default")
	assert.Contains(t, ddl, "idx_product_variant_default")
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Ring Sizes!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_ring_sizes.sql"))

	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "")
	assert.Error(t, err)
}
