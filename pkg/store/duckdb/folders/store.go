package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/stat-atlas/pkg/models/store"
	"github.com/de-tools/stat-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
)

// Store persists user folders. Every lookup is scoped to the owning user.
type Store interface {
	Create(ctx context.Context, userID int64, name string) (*store.FolderRecord, error)
	Get(ctx context.Context, userID, id int64) (*store.FolderRecord, error)
	ListByOwner(ctx context.Context, userID int64) ([]store.FolderRecord, error)
	Rename(ctx context.Context, userID, id int64, name string) (*store.FolderRecord, error)
	Delete(ctx context.Context, userID, id int64) error
}

const (
	insertFolderQuery = `INSERT INTO user_folders (user_id, name) VALUES (?, ?) RETURNING id, user_id, name`
	getFolderQuery    = `SELECT id, user_id, name FROM user_folders WHERE id = ? AND user_id = ?`
	listFoldersQuery  = `SELECT id, user_id, name FROM user_folders WHERE user_id = ? ORDER BY id`
	renameFolderQuery = `UPDATE user_folders SET name = ? WHERE id = ? AND user_id = ? RETURNING id, user_id, name`
	deleteFolderQuery = `DELETE FROM user_folders WHERE id = ? AND user_id = ?`
)

type folderStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &folderStore{db: db}, nil
}

func (s *folderStore) Create(ctx context.Context, userID int64, name string) (*store.FolderRecord, error) {
	var r store.FolderRecord
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, insertFolderQuery, userID, name).
		Scan(&r.ID, &r.UserID, &r.Name)
	if err != nil {
		return nil, fmt.Errorf("insert folder: %w", err)
	}
	return &r, nil
}

func (s *folderStore) Get(ctx context.Context, userID, id int64) (*store.FolderRecord, error) {
	var r store.FolderRecord
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, getFolderQuery, id, userID).
		Scan(&r.ID, &r.UserID, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, duckdb.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get folder %d: %w", id, err)
	}
	return &r, nil
}

func (s *folderStore) ListByOwner(ctx context.Context, userID int64) ([]store.FolderRecord, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, listFoldersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close folder rows")
		}
	}(rows)

	records := make([]store.FolderRecord, 0)
	for rows.Next() {
		var r store.FolderRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return records, nil
}

func (s *folderStore) Rename(ctx context.Context, userID, id int64, name string) (*store.FolderRecord, error) {
	var r store.FolderRecord
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, renameFolderQuery, name, id, userID).
		Scan(&r.ID, &r.UserID, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, duckdb.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("rename folder %d: %w", id, err)
	}
	return &r, nil
}

func (s *folderStore) Delete(ctx context.Context, userID, id int64) error {
	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, deleteFolderQuery, id, userID)
	if err != nil {
		return fmt.Errorf("delete folder %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete folder %d: %w", id, err)
	}
	if n == 0 {
		return duckdb.ErrNotFound
	}
	return nil
}
