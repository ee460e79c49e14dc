package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Records(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	records := []domain.FlatRegionRecord{
		{
			ID:   json.RawMessage(`1`),
			Text: json.RawMessage(`"Almaty"`),
			Leaf: json.RawMessage(`false`),
			Values: []domain.PeriodValue{
				{Period: "2023 year", Value: json.RawMessage(`5`)},
			},
		},
		{
			ID:   json.RawMessage(`"KZ-AST"`),
			Text: json.RawMessage(`"Astana"`),
			Leaf: json.RawMessage(`true`),
			Values: []domain.PeriodValue{
				{Period: "2022 year", Value: json.RawMessage(`"3.5"`)},
				{Period: "2023 year", Value: json.RawMessage(`7`)},
			},
		},
	}

	require.NoError(t, r.Records(records))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)

	header := strings.Fields(strings.ReplaceAll(lines[1], "|", " "))
	assert.Equal(t, []string{"ID", "Region", "Leaf", "2023", "year", "2022", "year"}, header)

	almaty := strings.Fields(strings.ReplaceAll(lines[3], "|", " "))
	assert.Equal(t, []string{"1", "Almaty", "false", "5"}, almaty)

	astana := strings.Fields(strings.ReplaceAll(lines[4], "|", " "))
	assert.Equal(t, []string{"KZ-AST", "Astana", "true", "7", "3.5"}, astana)

	assert.Equal(t, "2 regions", lines[6])
}

func TestReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).JSON([]domain.FlatRegionRecord{{
		ID:     json.RawMessage(`1`),
		Text:   json.RawMessage(`"Almaty"`),
		Leaf:   json.RawMessage(`false`),
		Values: []domain.PeriodValue{{Period: "2023 year", Value: json.RawMessage(`5`)}},
	}}))
	assert.JSONEq(t, `[{"id":1,"text":"Almaty","leaf":false,"2023 year":5}]`, buf.String())
}

func TestReporter_Indicators(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	require.NoError(t, r.Indicators(nil))
	assert.Equal(t, "No indicators in the catalogue\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Indicators([]domain.Indicator{{ID: 1, Name: "Population"}}))
	assert.Equal(t, "     1  Population\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
