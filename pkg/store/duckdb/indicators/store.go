package indicators

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/stat-atlas/pkg/models/store"
	"github.com/de-tools/stat-atlas/pkg/store/duckdb"
)

// Store is the local catalogue of indicators offered in the UI.
type Store interface {
	List(ctx context.Context) ([]store.IndicatorRecord, error)
	Add(ctx context.Context, name string) (int64, error)
}

const (
	listIndicatorsQuery  = `SELECT id, name FROM indicators ORDER BY id`
	insertIndicatorQuery = `INSERT INTO indicators (name) VALUES (?) RETURNING id`
)

type indicatorStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &indicatorStore{db: db}, nil
}

func (s *indicatorStore) List(ctx context.Context) ([]store.IndicatorRecord, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, listIndicatorsQuery)
	if err != nil {
		return nil, fmt.Errorf("query indicators: %w", err)
	}
	defer rows.Close()

	records := make([]store.IndicatorRecord, 0)
	for rows.Next() {
		var r store.IndicatorRecord
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *indicatorStore) Add(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, insertIndicatorQuery, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert indicator: %w", err)
	}
	return id, nil
}
