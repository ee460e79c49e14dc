package folders

import (
	"context"
	"testing"

	"github.com/de-tools/stat-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) Store {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	s, err := NewStore(db)
	require.NoError(t, err)
	return s
}

func TestNewStore_NilDB(t *testing.T) {
	s, err := NewStore(nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestStore_CreateGetList(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	reports, err := s.Create(ctx, 7, "reports")
	require.NoError(t, err)
	assert.Equal(t, int64(7), reports.UserID)
	assert.Equal(t, "reports", reports.Name)

	drafts, err := s.Create(ctx, 7, "drafts")
	require.NoError(t, err)
	_, err = s.Create(ctx, 8, "other")
	require.NoError(t, err)

	got, err := s.Get(ctx, 7, reports.ID)
	require.NoError(t, err)
	assert.Equal(t, *reports, *got)

	_, err = s.Get(ctx, 8, reports.ID)
	assert.ErrorIs(t, err, duckdb.ErrNotFound)

	list, err := s.ListByOwner(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, reports.ID, list[0].ID)
	assert.Equal(t, drafts.ID, list[1].ID)

	list, err = s.ListByOwner(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_Rename(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	f, err := s.Create(ctx, 7, "reports")
	require.NoError(t, err)

	t.Run("owner", func(t *testing.T) {
		renamed, err := s.Rename(ctx, 7, f.ID, "archive")
		require.NoError(t, err)
		assert.Equal(t, f.ID, renamed.ID)
		assert.Equal(t, "archive", renamed.Name)
	})

	t.Run("other user", func(t *testing.T) {
		_, err := s.Rename(ctx, 8, f.ID, "stolen")
		assert.ErrorIs(t, err, duckdb.ErrNotFound)

		got, err := s.Get(ctx, 7, f.ID)
		require.NoError(t, err)
		assert.Equal(t, "archive", got.Name)
	})
}

func TestStore_Delete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	f, err := s.Create(ctx, 7, "reports")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, 8, f.ID), duckdb.ErrNotFound)
	require.NoError(t, s.Delete(ctx, 7, f.ID))
	assert.ErrorIs(t, s.Delete(ctx, 7, f.ID), duckdb.ErrNotFound)
}
