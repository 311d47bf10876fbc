package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
	"residual-hub.backend/pkg/utils"
)

func TestMerchantRepository_UpsertRefreshesExisting(t *testing.T) {
	db := newTestDB(t)
	createMerchantTable(t, db)
	repo := NewMerchantRepository(db)
	ctx := context.Background()

	first := &entities.Merchant{
		MerchantID:       "M-100001",
		LegalName:        "Acme Coffee LLC",
		DBA:              "Acme Coffee",
		CurrentProcessor: "Clearent",
	}
	require.NoError(t, repo.Upsert(ctx, first))

	// Second sighting on another processor refreshes DBA and processor
	// but never rewrites the legal name from the first sighting
	second := &entities.Merchant{
		MerchantID:       "M-100001",
		LegalName:        "Acme Coffee Trading Name",
		DBA:              "Acme Coffee Downtown",
		CurrentProcessor: "TSYS",
	}
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.GetByMerchantID(ctx, "M-100001")
	require.NoError(t, err)
	require.Equal(t, "Acme Coffee LLC", got.LegalName)
	require.Equal(t, "Acme Coffee Downtown", got.DBA)
	require.Equal(t, "TSYS", got.CurrentProcessor)

	items, total, err := repo.List(ctx, utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
}

func TestMerchantRepository_GetByMerchantID_NotFound(t *testing.T) {
	db := newTestDB(t)
	createMerchantTable(t, db)
	repo := NewMerchantRepository(db)

	_, err := repo.GetByMerchantID(context.Background(), "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestMerchantRepository_ExistingIDs(t *testing.T) {
	db := newTestDB(t)
	createMerchantTable(t, db)
	repo := NewMerchantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entities.Merchant{MerchantID: "M-1", DBA: "One"}))
	require.NoError(t, repo.Upsert(ctx, &entities.Merchant{MerchantID: "M-2", DBA: "Two"}))

	known, err := repo.ExistingIDs(ctx, []string{"M-1", "M-2", "M-3"})
	require.NoError(t, err)
	require.True(t, known["M-1"])
	require.True(t, known["M-2"])
	require.False(t, known["M-3"])

	empty, err := repo.ExistingIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}
