package statistics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/store/upstream"
	"github.com/de-tools/stat-atlas/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct{ mock.Mock }

func (m *mockClient) GetPeriodList(ctx context.Context, indexID int) (json.RawMessage, error) {
	args := m.Called(ctx, indexID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockClient) GetSegmentList(ctx context.Context, indexID, periodID int) ([]domain.Segment, error) {
	args := m.Called(ctx, indexID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Segment), args.Error(1)
}

func (m *mockClient) GetIndexAttributes(ctx context.Context, indexID, periodID int) (json.RawMessage, error) {
	args := m.Called(ctx, indexID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockClient) GetIndexTreeData(ctx context.Context, q domain.TreeQuery) ([]domain.RegionNode, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegionNode), args.Error(1)
}

func (m *mockClient) GetIndexPeriods(ctx context.Context, q domain.TreeQuery) (*domain.PeriodIndex, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodIndex), args.Error(1)
}

func decodeTree(t *testing.T, s string) []domain.RegionNode {
	var tree []domain.RegionNode
	require.NoError(t, json.Unmarshal([]byte(s), &tree))
	return tree
}

func TestService_PassThrough(t *testing.T) {
	client := new(mockClient)
	periods := json.RawMessage(`[{"id":7,"name":"Year"}]`)
	attrs := json.RawMessage(`{"unit":"tenge"}`)
	client.On("GetPeriodList", mock.Anything, 701).Return(periods, nil)
	client.On("GetIndexAttributes", mock.Anything, 701, 7).Return(attrs, nil)

	svc := NewService(client)

	got, err := svc.GetPeriods(context.Background(), 701)
	require.NoError(t, err)
	assert.JSONEq(t, string(periods), string(got))

	got, err = svc.GetIndexAttributes(context.Background(), 701, 7)
	require.NoError(t, err)
	assert.JSONEq(t, string(attrs), string(got))

	client.AssertExpectations(t)
}

func TestService_GetSegments(t *testing.T) {
	client := new(mockClient)
	client.On("GetSegmentList", mock.Anything, 701, 7).Return([]domain.Segment{
		{"dicId": "67 + 915", "termNames": "REGION + GENDER", "termIds": "1,2", "names": "Almaty + Male"},
	}, nil)

	segments, err := NewService(client).GetSegments(context.Background(), 701, 7)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "67,915", segments[0]["dicId"])
	assert.Equal(t, "REGION + GENDER", segments[0]["termNames"])
	assert.Equal(t, []domain.TermName{{ID: "1", Name: "Almaty"}, {ID: "2", Name: "Male"}}, segments[0]["mas_names"])
	client.AssertExpectations(t)
}

func TestService_GetIndexTreeData(t *testing.T) {
	q := domain.TreeQuery{MeasureID: 1, IndexID: 701, PeriodID: 7, Terms: "248", TermID: 248, DicIDs: "67"}

	tests := []struct {
		name      string
		tree      []domain.RegionNode
		treeErr   error
		periods   *domain.PeriodIndex
		periodErr error
		wantErr   error
		want      string
	}{
		{
			name: "joined records",
			tree: decodeTree(t, `[{"id":1,"text":"Almaty","leaf":true,"y2023":5,"y2022":0}]`),
			periods: &domain.PeriodIndex{
				DateList:       []domain.PeriodCode{"2022", "2023"},
				PeriodNameList: []string{"2022 year", "2023 year"},
			},
			want: `[{"id":1,"text":"Almaty","leaf":true,"2023 year":5}]`,
		},
		{
			name:    "tree fetch fails",
			treeErr: &upstream.FetchError{Kind: upstream.KindUpstreamStatus, Status: 404},
			periods: &domain.PeriodIndex{},
			wantErr: &upstream.FetchError{},
		},
		{
			name:      "periods fetch fails",
			tree:      []domain.RegionNode{},
			periodErr: &upstream.FetchError{Kind: upstream.KindAttemptsExhausted},
			wantErr:   &upstream.FetchError{},
		},
		{
			name: "period lists disagree",
			tree: []domain.RegionNode{},
			periods: &domain.PeriodIndex{
				DateList:       []domain.PeriodCode{"2022", "2023"},
				PeriodNameList: []string{"2022 year"},
			},
			wantErr: transform.ErrLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockClient)
			if tt.treeErr != nil {
				client.On("GetIndexTreeData", mock.Anything, q).Return(nil, tt.treeErr)
			} else {
				client.On("GetIndexTreeData", mock.Anything, q).Return(tt.tree, nil)
			}
			if tt.periodErr != nil {
				client.On("GetIndexPeriods", mock.Anything, q).Return(nil, tt.periodErr)
			} else {
				client.On("GetIndexPeriods", mock.Anything, q).Return(tt.periods, nil)
			}

			records, err := NewService(client).GetIndexTreeData(context.Background(), q)
			if tt.wantErr != nil {
				require.Error(t, err)
				var fe *upstream.FetchError
				if errors.As(tt.wantErr, &fe) {
					assert.ErrorAs(t, err, &fe)
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, records)
				return
			}

			require.NoError(t, err)
			out, err := json.Marshal(records)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}

func TestService_GetIndexTreeData_FailureCancelsSibling(t *testing.T) {
	q := domain.TreeQuery{MeasureID: 1, IndexID: 701, PeriodID: 7}
	treeErr := &upstream.FetchError{Kind: upstream.KindUpstreamStatus, Status: http.StatusNotFound}

	var periodsCtx context.Context
	client := new(mockClient)
	client.On("GetIndexTreeData", mock.Anything, q).Return(nil, treeErr)
	client.On("GetIndexPeriods", mock.Anything, q).
		Run(func(args mock.Arguments) {
			periodsCtx = args.Get(0).(context.Context)
			<-periodsCtx.Done()
		}).
		Return(nil, context.Canceled)

	done := make(chan error, 1)
	go func() {
		_, err := NewService(client).GetIndexTreeData(context.Background(), q)
		done <- err
	}()

	select {
	case err := <-done:
		var fetchErr *upstream.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusNotFound, fetchErr.Status)
		require.NotNil(t, periodsCtx)
		assert.ErrorIs(t, periodsCtx.Err(), context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("periods fetch was not cancelled after the tree fetch failed")
	}
	client.AssertExpectations(t)
}
