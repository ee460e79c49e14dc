package statistics

import (
	"context"
	"encoding/json"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/store/upstream"
	"github.com/de-tools/stat-atlas/pkg/transform"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Service answers the statistics queries of the web API. Pass-through
// endpoints return the upstream payload untouched.
type Service interface {
	GetPeriods(ctx context.Context, indexID int) (json.RawMessage, error)
	GetSegments(ctx context.Context, indexID, periodID int) ([]domain.Segment, error)
	GetIndexAttributes(ctx context.Context, indexID, periodID int) (json.RawMessage, error)
	GetIndexTreeData(ctx context.Context, q domain.TreeQuery) ([]domain.FlatRegionRecord, error)
}

type service struct {
	client upstream.Client
}

func NewService(client upstream.Client) Service {
	return &service{client: client}
}

func (s *service) GetPeriods(ctx context.Context, indexID int) (json.RawMessage, error) {
	return s.client.GetPeriodList(ctx, indexID)
}

func (s *service) GetSegments(ctx context.Context, indexID, periodID int) ([]domain.Segment, error) {
	items, err := s.client.GetSegmentList(ctx, indexID, periodID)
	if err != nil {
		return nil, err
	}
	return transform.NormalizeSegments(items)
}

func (s *service) GetIndexAttributes(ctx context.Context, indexID, periodID int) (json.RawMessage, error) {
	return s.client.GetIndexAttributes(ctx, indexID, periodID)
}

// GetIndexTreeData fetches the region tree and the period index concurrently
// and joins them. Either fetch failing cancels the other.
func (s *service) GetIndexTreeData(ctx context.Context, q domain.TreeQuery) ([]domain.FlatRegionRecord, error) {
	var (
		tree    []domain.RegionNode
		periods *domain.PeriodIndex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tree, err = s.client.GetIndexTreeData(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		periods, err = s.client.GetIndexPeriods(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records, err := transform.JoinTreePeriods(tree, *periods)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("index_id", q.IndexID).
		Int("period_id", q.PeriodID).
		Int("regions", len(records)).
		Int("periods", len(periods.DateList)).
		Msg("joined tree data with periods")

	return records, nil
}
