package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStatistics struct {
	mock.Mock
}

func (m *mockStatistics) GetPeriods(ctx context.Context, indexID int) (json.RawMessage, error) {
	args := m.Called(ctx, indexID)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockStatistics) GetSegments(ctx context.Context, indexID, periodID int) ([]domain.Segment, error) {
	args := m.Called(ctx, indexID, periodID)
	return args.Get(0).([]domain.Segment), args.Error(1)
}

func (m *mockStatistics) GetIndexAttributes(ctx context.Context, indexID, periodID int) (json.RawMessage, error) {
	args := m.Called(ctx, indexID, periodID)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockStatistics) GetIndexTreeData(ctx context.Context, q domain.TreeQuery) ([]domain.FlatRegionRecord, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.FlatRegionRecord), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context) ([]domain.Indicator, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Indicator), args.Error(1)
}

func (m *mockCatalog) Add(ctx context.Context, name string) (*domain.Indicator, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(*domain.Indicator), args.Error(1)
}

func run(t *testing.T, stats *mockStatistics, catalog *mockCatalog, args ...string) (string, error) {
	var out bytes.Buffer
	opts := Options{Output: &out}
	if stats != nil {
		opts.Statistics = stats
	}
	if catalog != nil {
		opts.Indicators = catalog
	}
	cli := NewCLI(opts)
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_Tree(t *testing.T) {
	stats := new(mockStatistics)
	stats.On("GetIndexTreeData", mock.Anything, domain.TreeQuery{
		MeasureID: 1, IndexID: 701, PeriodID: 7, Terms: "248", TermID: 248, DicIDs: "67",
	}).Return([]domain.FlatRegionRecord{{
		ID:     json.RawMessage(`1`),
		Text:   json.RawMessage(`"Almaty"`),
		Leaf:   json.RawMessage(`false`),
		Values: []domain.PeriodValue{{Period: "2023 year", Value: json.RawMessage(`5`)}},
	}}, nil)

	args := []string{"tree", "--index", "701", "--period", "7", "--terms", "248", "--term", "248", "--dic-ids", "67"}

	out, err := run(t, stats, nil, append(args, "--json")...)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"text":"Almaty","leaf":false,"2023 year":5}]`, out)

	out, err = run(t, stats, nil, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "2023 year")
	assert.Contains(t, out, "Almaty")
	assert.Contains(t, out, "1 regions")

	stats.AssertExpectations(t)
}

func TestCLI_TreeRequiresFlags(t *testing.T) {
	_, err := run(t, new(mockStatistics), nil, "tree", "--index", "701")
	assert.Error(t, err)
}

func TestCLI_Periods(t *testing.T) {
	stats := new(mockStatistics)
	stats.On("GetPeriods", mock.Anything, 701).Return(json.RawMessage(`[{"id":7}]`), nil)

	out, err := run(t, stats, nil, "periods", "--index", "701")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7}]`, out)
	stats.AssertExpectations(t)
}

func TestCLI_Indicators(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Add", mock.Anything, "Population").Return(&domain.Indicator{ID: 3, Name: "Population"}, nil)
	catalog.On("List", mock.Anything).Return([]domain.Indicator{{ID: 3, Name: "Population"}}, nil)

	out, err := run(t, nil, catalog, "indicators", "add", "Population")
	require.NoError(t, err)
	assert.Equal(t, "Added indicator 3: Population\n", out)

	out, err = run(t, nil, catalog, "indicators", "list")
	require.NoError(t, err)
	assert.Equal(t, "     3  Population\n", out)

	catalog.AssertExpectations(t)
}
