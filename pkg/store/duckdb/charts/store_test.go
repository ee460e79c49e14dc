package charts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/stat-atlas/pkg/models/store"
	"github.com/de-tools/stat-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func int64Ptr(v int64) *int64 { return &v }

func newRecord(userID int64, folderID *int64) store.ChartRecord {
	return store.ChartRecord{
		UserID:       userID,
		IndexID:      701,
		PeriodID:     7,
		Terms:        "248",
		TermID:       248,
		DicIDs:       "67,915",
		Idx:          0,
		ChartType:    "bar",
		SelectedData: `["Almaty"]`,
		PrimaryData:  `{"2023":1}`,
		FolderID:     folderID,
	}
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestStore_CreateAndGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	first, err := f.store.Create(ctx, newRecord(7, nil))
	require.NoError(t, err)
	second, err := f.store.Create(ctx, newRecord(7, int64Ptr(3)))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	t.Run("without folder", func(t *testing.T) {
		r, err := f.store.Get(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, first, r.ID)
		assert.Equal(t, int64(7), r.UserID)
		assert.Equal(t, "67,915", r.DicIDs)
		assert.Equal(t, `["Almaty"]`, r.SelectedData)
		assert.Nil(t, r.FolderID)
	})

	t.Run("with folder", func(t *testing.T) {
		r, err := f.store.Get(ctx, second)
		require.NoError(t, err)
		require.NotNil(t, r.FolderID)
		assert.Equal(t, int64(3), *r.FolderID)
	})

	t.Run("missing", func(t *testing.T) {
		r, err := f.store.Get(ctx, 999)
		assert.ErrorIs(t, err, duckdb.ErrNotFound)
		assert.Nil(t, r)
	})
}

func TestStore_ListByOwner(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	a, err := f.store.Create(ctx, newRecord(7, nil))
	require.NoError(t, err)
	b, err := f.store.Create(ctx, newRecord(7, int64Ptr(3)))
	require.NoError(t, err)
	_, err = f.store.Create(ctx, newRecord(8, int64Ptr(3)))
	require.NoError(t, err)

	t.Run("all records of owner", func(t *testing.T) {
		records, err := f.store.ListByOwner(ctx, 7, nil)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, a, records[0].ID)
		assert.Equal(t, b, records[1].ID)
	})

	t.Run("records in folder", func(t *testing.T) {
		records, err := f.store.ListByOwner(ctx, 7, int64Ptr(3))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, b, records[0].ID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		records, err := f.store.ListByOwner(ctx, 42, nil)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestStore_DeleteAndCount(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	id, err := f.store.Create(ctx, newRecord(7, int64Ptr(3)))
	require.NoError(t, err)
	_, err = f.store.Create(ctx, newRecord(8, int64Ptr(3)))
	require.NoError(t, err)

	count, err := f.store.CountInFolder(ctx, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, f.store.Delete(ctx, id))

	count, err = f.store.CountInFolder(ctx, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	assert.ErrorIs(t, f.store.Delete(ctx, id), duckdb.ErrNotFound)
}

func TestStore_QueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(listChartsQuery)).WithArgs(int64(7)).WillReturnError(boom)
	mock.ExpectExec(regexp.QuoteMeta(deleteChartQuery)).WithArgs(int64(1)).WillReturnError(boom)

	_, err = s.ListByOwner(context.Background(), 7, nil)
	assert.ErrorIs(t, err, boom)

	err = s.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, duckdb.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UsesTransactionFromContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(countInFolderQuery)).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	err = duckdb.RunInTx(context.Background(), db, func(ctx context.Context) error {
		count, err := s.CountInFolder(ctx, 7, 3)
		if err != nil {
			return err
		}
		assert.Equal(t, 2, count)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
