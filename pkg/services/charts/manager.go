package charts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/stat-atlas/pkg/adapters"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/models/store"
	"github.com/de-tools/stat-atlas/pkg/store/duckdb"
	chartstore "github.com/de-tools/stat-atlas/pkg/store/duckdb/charts"
	folderstore "github.com/de-tools/stat-atlas/pkg/store/duckdb/folders"
	"github.com/rs/zerolog"
)

// Manager is the ownership-checked CRUD over saved charts and folders.
// Every operation acts on behalf of owner and never exposes another
// user's rows.
type Manager interface {
	SaveChart(ctx context.Context, owner int64, chart domain.ChartConfig) (int64, error)
	ListCharts(ctx context.Context, owner int64, folderID *int64) ([]domain.ChartConfig, error)
	DeleteChart(ctx context.Context, owner, id int64) error

	CreateFolder(ctx context.Context, owner int64, name string) (*domain.Folder, error)
	ListFolders(ctx context.Context, owner int64) ([]domain.Folder, error)
	RenameFolder(ctx context.Context, owner, id int64, name string) (*domain.Folder, error)
	DeleteFolder(ctx context.Context, owner, id int64) error
}

type manager struct {
	db      *sql.DB
	charts  chartstore.Store
	folders folderstore.Store
}

func NewManager(db *sql.DB, charts chartstore.Store, folders folderstore.Store) (Manager, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if charts == nil || folders == nil {
		return nil, fmt.Errorf("chart and folder stores are required")
	}
	return &manager{db: db, charts: charts, folders: folders}, nil
}

func (m *manager) SaveChart(ctx context.Context, owner int64, chart domain.ChartConfig) (int64, error) {
	if err := validateChart(chart); err != nil {
		return 0, err
	}
	if chart.FolderID != nil {
		if *chart.FolderID <= 0 {
			return 0, fmt.Errorf("%w: folder id must be positive", ErrInvalidInput)
		}
		if _, err := m.getFolder(ctx, owner, *chart.FolderID); err != nil {
			return 0, err
		}
	}

	chart.OwnerID = owner
	id, err := m.charts.Create(ctx, adapters.MapDomainChartToStore(chart))
	if err != nil {
		return 0, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("chart_id", id).
		Msg("chart saved")
	return id, nil
}

func (m *manager) ListCharts(ctx context.Context, owner int64, folderID *int64) ([]domain.ChartConfig, error) {
	if folderID != nil && *folderID <= 0 {
		return nil, fmt.Errorf("%w: folder id must be positive", ErrInvalidInput)
	}

	records, err := m.charts.ListByOwner(ctx, owner, folderID)
	if err != nil {
		return nil, err
	}

	charts := make([]domain.ChartConfig, 0, len(records))
	for _, r := range records {
		charts = append(charts, adapters.MapStoreChartToDomain(r))
	}
	return charts, nil
}

func (m *manager) DeleteChart(ctx context.Context, owner, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: chart id must be positive", ErrInvalidInput)
	}

	return duckdb.RunInTx(ctx, m.db, func(ctx context.Context) error {
		record, err := m.charts.Get(ctx, id)
		if errors.Is(err, duckdb.ErrNotFound) {
			return fmt.Errorf("chart %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		if record.UserID != owner {
			return fmt.Errorf("chart %d: %w", id, ErrForbidden)
		}
		return m.charts.Delete(ctx, id)
	})
}

func (m *manager) CreateFolder(ctx context.Context, owner int64, name string) (*domain.Folder, error) {
	name, err := folderName(name)
	if err != nil {
		return nil, err
	}

	record, err := m.folders.Create(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	folder := adapters.MapStoreFolderToDomain(*record)
	return &folder, nil
}

func (m *manager) ListFolders(ctx context.Context, owner int64) ([]domain.Folder, error) {
	records, err := m.folders.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	folders := make([]domain.Folder, 0, len(records))
	for _, r := range records {
		folders = append(folders, adapters.MapStoreFolderToDomain(r))
	}
	return folders, nil
}

func (m *manager) RenameFolder(ctx context.Context, owner, id int64, name string) (*domain.Folder, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: folder id must be positive", ErrInvalidInput)
	}
	name, err := folderName(name)
	if err != nil {
		return nil, err
	}

	record, err := m.folders.Rename(ctx, owner, id, name)
	if errors.Is(err, duckdb.ErrNotFound) {
		return nil, fmt.Errorf("folder %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	folder := adapters.MapStoreFolderToDomain(*record)
	return &folder, nil
}

// DeleteFolder removes an empty folder. The reference check and the delete
// share one transaction.
func (m *manager) DeleteFolder(ctx context.Context, owner, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: folder id must be positive", ErrInvalidInput)
	}

	return duckdb.RunInTx(ctx, m.db, func(ctx context.Context) error {
		if _, err := m.getFolder(ctx, owner, id); err != nil {
			return err
		}

		count, err := m.charts.CountInFolder(ctx, owner, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("folder %d: %w (%d)", id, ErrFolderInUse, count)
		}

		err = m.folders.Delete(ctx, owner, id)
		if errors.Is(err, duckdb.ErrNotFound) {
			return fmt.Errorf("folder %d: %w", id, ErrNotFound)
		}
		return err
	})
}

func (m *manager) getFolder(ctx context.Context, owner, id int64) (*store.FolderRecord, error) {
	record, err := m.folders.Get(ctx, owner, id)
	if errors.Is(err, duckdb.ErrNotFound) {
		return nil, fmt.Errorf("folder %d: %w", id, ErrNotFound)
	}
	return record, err
}

// validateChart rejects charts that cannot be replayed against the upstream
// API: both ids must be positive and a chart type must be named.
func validateChart(chart domain.ChartConfig) error {
	if chart.IndexID <= 0 || chart.PeriodID <= 0 {
		return fmt.Errorf("%w: index and period ids must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(chart.ChartType) == "" {
		return fmt.Errorf("%w: chart type is empty", ErrInvalidInput)
	}
	return nil
}

func folderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: folder name is empty", ErrInvalidInput)
	}
	return name, nil
}
