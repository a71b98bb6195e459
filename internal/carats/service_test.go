package carats

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/liorgem/diamondlab-backend/internal/catalog"
	"github.com/liorgem/diamondlab-backend/pkg/db/models"
	pkgerrors "github.com/liorgem/diamondlab-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupCaratsTestDB(t)
	svc, err := NewService(
		NewRepository(db),
		gormProductLoader{db: db},
		catalog.NewRepository(db),
		gormTxRunner{db: db},
	)
	require.NoError(t, err)
	return svc, db
}

func TestAdd_FirstLinkBecomesDefault(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	half := mustCreateTestEntry(t, db, "0.50", "0.6", true)
	one := mustCreateTestEntry(t, db, "1.00", "1.0", true)

	first, err := svc.Add(context.Background(), product.ID, half.ID)
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.Equal(t, 0, first.SortOrder)
	assert.True(t, first.CaratWeight.Equal(half.CaratWeight))

	second, err := svc.Add(context.Background(), product.ID, one.ID)
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
	assert.Equal(t, 1, second.SortOrder)
}

func TestAdd_DuplicateLinkRejected(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	entry := mustCreateTestEntry(t, db, "1.00", "1.0", true)

	_, err := svc.Add(context.Background(), product.ID, entry.ID)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), product.ID, entry.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeAlreadyLinked, pkgerrors.As(err).Code())
}

func TestAdd_InactiveEntryRejected(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	entry := mustCreateTestEntry(t, db, "1.00", "1.0", false)

	_, err := svc.Add(context.Background(), product.ID, entry.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAdd_MissingProductOrEntry(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	entry := mustCreateTestEntry(t, db, "1.00", "1.0", true)

	_, err := svc.Add(context.Background(), uuid.New(), entry.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.Add(context.Background(), product.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAddAll_SkipsLinkedAndInactive(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	half := mustCreateTestEntry(t, db, "0.50", "0.6", true)
	mustCreateTestEntry(t, db, "1.00", "1.0", true)
	mustCreateTestEntry(t, db, "1.50", "1.8", true)
	mustCreateTestEntry(t, db, "2.00", "2.5", false) // inactive, not linked

	_, err := svc.Add(context.Background(), product.ID, half.ID)
	require.NoError(t, err)

	result, err := svc.AddAll(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Links, 3)

	// existing default preserved, new links appended in order
	assert.True(t, result.Links[0].IsDefault)
	assert.Equal(t, []int{0, 1, 2}, []int{result.Links[0].SortOrder, result.Links[1].SortOrder, result.Links[2].SortOrder})
}

func TestAddAll_DuplicateMidListDoesNotAbort(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	mustCreateTestEntry(t, db, "0.50", "0.6", true)
	one := mustCreateTestEntry(t, db, "1.00", "1.0", true)
	mustCreateTestEntry(t, db, "1.50", "1.8", true)

	_, err := svc.Add(context.Background(), product.ID, one.ID)
	require.NoError(t, err)

	// The duplicate insert sits between two fresh ones; both fresh
	// links must still land.
	result, err := svc.AddAll(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Links, 3)
}

func TestAddAll_EmptyProductGetsDefault(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	mustCreateTestEntry(t, db, "0.50", "0.6", true)
	mustCreateTestEntry(t, db, "1.00", "1.0", true)

	result, err := svc.AddAll(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)

	defaults := 0
	for _, link := range result.Links {
		if link.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
	assert.True(t, result.Links[0].IsDefault)
}

func TestRemove_PromotesNextDefault(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	half := mustCreateTestEntry(t, db, "0.50", "0.6", true)
	one := mustCreateTestEntry(t, db, "1.00", "1.0", true)
	heavy := mustCreateTestEntry(t, db, "1.50", "1.8", true)

	for _, entry := range []*models.CaratPricingEntry{half, one, heavy} {
		_, err := svc.Add(context.Background(), product.ID, entry.ID)
		require.NoError(t, err)
	}

	// remove the default (0.50); 1.00 is next in display order
	require.NoError(t, svc.Remove(context.Background(), product.ID, half.ID))

	links, err := svc.List(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, one.ID, links[0].CaratPricingID)
	assert.True(t, links[0].IsDefault)
	assert.False(t, links[1].IsDefault)
}

func TestRemove_NonDefaultLeavesDefaultAlone(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	half := mustCreateTestEntry(t, db, "0.50", "0.6", true)
	one := mustCreateTestEntry(t, db, "1.00", "1.0", true)

	_, err := svc.Add(context.Background(), product.ID, half.ID)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), product.ID, one.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), product.ID, one.ID))

	links, err := svc.List(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.True(t, links[0].IsDefault)
	assert.Equal(t, half.ID, links[0].CaratPricingID)
}

func TestRemove_LastLink(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	entry := mustCreateTestEntry(t, db, "1.00", "1.0", true)

	_, err := svc.Add(context.Background(), product.ID, entry.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(context.Background(), product.ID, entry.ID))

	links, err := svc.List(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	err = svc.Remove(context.Background(), product.ID, entry.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSetDefault_SwapsExactlyOne(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	half := mustCreateTestEntry(t, db, "0.50", "0.6", true)
	one := mustCreateTestEntry(t, db, "1.00", "1.0", true)

	_, err := svc.Add(context.Background(), product.ID, half.ID)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), product.ID, one.ID)
	require.NoError(t, err)

	updated, err := svc.SetDefault(context.Background(), product.ID, one.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	links, err := svc.List(context.Background(), product.ID)
	require.NoError(t, err)
	defaults := 0
	for _, link := range links {
		if link.IsDefault {
			defaults++
			assert.Equal(t, one.ID, link.CaratPricingID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSetDefault_UnlinkedEntry(t *testing.T) {
	svc, db := newTestService(t)
	product := mustCreateTestProduct(t, db)
	entry := mustCreateTestEntry(t, db, "1.00", "1.0", true)

	_, err := svc.SetDefault(context.Background(), product.ID, entry.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
