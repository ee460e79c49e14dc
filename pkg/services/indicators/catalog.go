package indicators

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/stat-atlas/pkg/adapters"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/store/duckdb/indicators"
)

type Catalog interface {
	List(ctx context.Context) ([]domain.Indicator, error)
	Add(ctx context.Context, name string) (*domain.Indicator, error)
}

type catalog struct {
	store indicators.Store
}

func NewCatalog(store indicators.Store) Catalog {
	return &catalog{store: store}
}

func (c *catalog) List(ctx context.Context) ([]domain.Indicator, error) {
	records, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Indicator, 0, len(records))
	for _, r := range records {
		result = append(result, adapters.MapStoreIndicatorToDomain(r))
	}
	return result, nil
}

func (c *catalog) Add(ctx context.Context, name string) (*domain.Indicator, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("indicator name is empty")
	}

	id, err := c.store.Add(ctx, name)
	if err != nil {
		return nil, err
	}
	return &domain.Indicator{ID: id, Name: name}, nil
}
