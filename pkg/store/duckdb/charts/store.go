package charts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/stat-atlas/pkg/models/store"
	"github.com/de-tools/stat-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
)

// Store persists saved chart configurations (user_data). Calls made with a
// transaction in ctx (duckdb.WithTransaction) run inside it.
type Store interface {
	Create(ctx context.Context, record store.ChartRecord) (int64, error)
	Get(ctx context.Context, id int64) (*store.ChartRecord, error)
	ListByOwner(ctx context.Context, userID int64, folderID *int64) ([]store.ChartRecord, error)
	Delete(ctx context.Context, id int64) error
	CountInFolder(ctx context.Context, userID, folderID int64) (int, error)
}

const chartColumns = `id, user_id, p_index_id, p_period_id, p_terms, p_term_id, p_dicIds, idx,
		chart_type, selected_data, primary_data, folder_id`

const (
	insertChartQuery = `
		INSERT INTO user_data (
			user_id, p_index_id, p_period_id, p_terms, p_term_id, p_dicIds, idx,
			chart_type, selected_data, primary_data, folder_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	getChartQuery = `SELECT ` + chartColumns + ` FROM user_data WHERE id = ?`

	listChartsQuery = `SELECT ` + chartColumns + ` FROM user_data WHERE user_id = ? ORDER BY id`

	listChartsInFolderQuery = `SELECT ` + chartColumns + ` FROM user_data WHERE user_id = ? AND folder_id = ? ORDER BY id`

	deleteChartQuery = `DELETE FROM user_data WHERE id = ?`

	countInFolderQuery = `SELECT COUNT(*) FROM user_data WHERE user_id = ? AND folder_id = ?`
)

type chartStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &chartStore{db: db}, nil
}

func (s *chartStore) Create(ctx context.Context, r store.ChartRecord) (int64, error) {
	var folderID sql.NullInt64
	if r.FolderID != nil {
		folderID = sql.NullInt64{Int64: *r.FolderID, Valid: true}
	}

	var id int64
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, insertChartQuery,
		r.UserID,
		r.IndexID,
		r.PeriodID,
		r.Terms,
		r.TermID,
		r.DicIDs,
		r.Idx,
		r.ChartType,
		r.SelectedData,
		r.PrimaryData,
		folderID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert chart: %w", err)
	}
	return id, nil
}

func (s *chartStore) Get(ctx context.Context, id int64) (*store.ChartRecord, error) {
	row := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, getChartQuery, id)
	r, err := scanChart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, duckdb.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chart %d: %w", id, err)
	}
	return &r, nil
}

func (s *chartStore) ListByOwner(ctx context.Context, userID int64, folderID *int64) ([]store.ChartRecord, error) {
	logger := zerolog.Ctx(ctx)

	query, args := listChartsQuery, []any{userID}
	if folderID != nil {
		query, args = listChartsInFolderQuery, []any{userID, *folderID}
	}

	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query charts: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close chart rows")
		}
	}(rows)

	records := make([]store.ChartRecord, 0)
	for rows.Next() {
		r, err := scanChart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charts: %w", err)
	}
	return records, nil
}

func (s *chartStore) Delete(ctx context.Context, id int64) error {
	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, deleteChartQuery, id)
	if err != nil {
		return fmt.Errorf("delete chart %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete chart %d: %w", id, err)
	}
	if n == 0 {
		return duckdb.ErrNotFound
	}
	return nil
}

func (s *chartStore) CountInFolder(ctx context.Context, userID, folderID int64) (int, error) {
	var count int
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, countInFolderQuery, userID, folderID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count charts in folder %d: %w", folderID, err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChart(row scanner) (store.ChartRecord, error) {
	var (
		r        store.ChartRecord
		folderID sql.NullInt64
	)
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.IndexID,
		&r.PeriodID,
		&r.Terms,
		&r.TermID,
		&r.DicIDs,
		&r.Idx,
		&r.ChartType,
		&r.SelectedData,
		&r.PrimaryData,
		&folderID,
	)
	if err != nil {
		return store.ChartRecord{}, err
	}
	if folderID.Valid {
		id := folderID.Int64
		r.FolderID = &id
	}
	return r, nil
}
