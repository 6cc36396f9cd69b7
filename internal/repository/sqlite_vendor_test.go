package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/contractwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteVendorRepo(db)
	ctx := context.Background()

	v := testutil.NewTestVendor("Beta Builders", testutil.WithSmallBusiness())
	v.CertificationStatus = "Certified"
	require.NoError(t, repo.Create(ctx, v))

	fetched, err := repo.GetByID(ctx, v.VendorID)
	require.NoError(t, err)
	assert.Equal(t, "Beta Builders", fetched.VendorName)
	assert.True(t, fetched.SmallBusiness)
	assert.False(t, fetched.MinorityOwned)
	assert.Equal(t, "Certified", fetched.CertificationStatus)
	assert.Equal(t, 50.0, fetched.PerformanceScore)
	assert.Equal(t, v.CreatedAt, fetched.CreatedAt)
}

func TestVendorRepo_DefaultsStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteVendorRepo(db)
	ctx := context.Background()

	v := testutil.NewTestVendor("No Status")
	v.Status = ""
	require.NoError(t, repo.Create(ctx, v))

	fetched, err := repo.GetByID(ctx, v.VendorID)
	require.NoError(t, err)
	assert.Equal(t, "Active", fetched.Status)
}

func TestVendorRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteVendorRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVendorRepo_ListOrderedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteVendorRepo(db)
	ctx := context.Background()

	for _, name := range []string{"Zeta Electric", "Alpha Concrete", "Mu Mechanical"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestVendor(name)))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha Concrete", list[0].VendorName)
	assert.Equal(t, "Mu Mechanical", list[1].VendorName)
	assert.Equal(t, "Zeta Electric", list[2].VendorName)
}

func TestVendorRepo_UpdateAndPerformance(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteVendorRepo(db)
	ctx := context.Background()

	v := testutil.NewTestVendor("Gamma")
	require.NoError(t, repo.Create(ctx, v))

	v.City = "Springfield"
	v.WomanOwned = true
	require.NoError(t, repo.Update(ctx, v))
	require.NoError(t, repo.UpdatePerformance(ctx, v.VendorID, 44.0, 2, 600000))

	fetched, err := repo.GetByID(ctx, v.VendorID)
	require.NoError(t, err)
	assert.Equal(t, "Springfield", fetched.City)
	assert.True(t, fetched.WomanOwned)
	assert.Equal(t, 44.0, fetched.PerformanceScore)
	assert.Equal(t, 2, fetched.TotalContracts)
	assert.Equal(t, 600000.0, fetched.TotalAwarded)

	assert.ErrorIs(t, repo.UpdatePerformance(ctx, "missing", 10, 0, 0), ErrNotFound)
}
