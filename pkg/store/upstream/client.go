package upstream

import (
	"context"
	"encoding/json"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
)

// Client exposes the statistics API endpoints used by the service.
type Client interface {
	GetPeriodList(ctx context.Context, indexID int) (json.RawMessage, error)
	GetSegmentList(ctx context.Context, indexID, periodID int) ([]domain.Segment, error)
	GetIndexAttributes(ctx context.Context, indexID, periodID int) (json.RawMessage, error)
	GetIndexTreeData(ctx context.Context, q domain.TreeQuery) ([]domain.RegionNode, error)
	GetIndexPeriods(ctx context.Context, q domain.TreeQuery) (*domain.PeriodIndex, error)
}

type defaultClient struct {
	fetcher *Fetcher
}

func NewClient(fetcher *Fetcher) Client {
	return &defaultClient{fetcher: fetcher}
}

func (c *defaultClient) GetPeriodList(ctx context.Context, indexID int) (json.RawMessage, error) {
	return c.fetcher.Fetch(ctx, Request{
		Endpoint: EndpointPeriodList,
		Params:   Params{"indexId": indexID},
	})
}

func (c *defaultClient) GetSegmentList(ctx context.Context, indexID, periodID int) ([]domain.Segment, error) {
	var segments []domain.Segment
	err := c.fetcher.FetchInto(ctx, Request{
		Endpoint: EndpointSegmentList,
		Params: Params{
			"indexId":  indexID,
			"periodId": periodID,
		},
	}, &segments)
	if err != nil {
		return nil, err
	}
	return segments, nil
}

func (c *defaultClient) GetIndexAttributes(ctx context.Context, indexID, periodID int) (json.RawMessage, error) {
	return c.fetcher.Fetch(ctx, Request{
		Endpoint: EndpointIndexAttributes,
		Params: Params{
			"periodId":   periodID,
			"measureID":  "1",
			"measureKFC": "1",
			"indexId":    indexID,
		},
	})
}

func (c *defaultClient) GetIndexTreeData(ctx context.Context, q domain.TreeQuery) ([]domain.RegionNode, error) {
	params := periodParams(q)
	params["idx"] = q.Idx
	params["p_parent_id"] = q.ParentID

	var tree []domain.RegionNode
	if err := c.fetcher.FetchInto(ctx, Request{Endpoint: EndpointIndexTreeData, Params: params}, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (c *defaultClient) GetIndexPeriods(ctx context.Context, q domain.TreeQuery) (*domain.PeriodIndex, error) {
	var periods domain.PeriodIndex
	if err := c.fetcher.FetchInto(ctx, Request{Endpoint: EndpointIndexPeriods, Params: periodParams(q)}, &periods); err != nil {
		return nil, err
	}
	return &periods, nil
}

func periodParams(q domain.TreeQuery) Params {
	return Params{
		"p_measure_id": q.MeasureID,
		"p_index_id":   q.IndexID,
		"p_period_id":  q.PeriodID,
		"p_terms":      q.Terms,
		"p_term_id":    q.TermID,
		"p_dicIds":     q.DicIDs,
	}
}
