package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
)

type TableConfig struct {
	IDWidth     int
	TextWidth   int
	LeafWidth   int
	PeriodWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:     10,
		TextWidth:   40,
		LeafWidth:   5,
		PeriodWidth: 16,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// JSON writes v as indented JSON.
func (c *Reporter) JSON(v any) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type recordTable struct {
	Periods []string
	Rows    [][]string
}

// Records renders joined region records as a table. Period columns appear
// in the order they were first seen; empty cells mean no data.
func (c *Reporter) Records(records []domain.FlatRegionRecord) error {
	table := recordTable{Periods: periodColumns(records)}
	for _, r := range records {
		row := []string{formatValue(r.ID), formatValue(r.Text), formatValue(r.Leaf)}
		for _, p := range table.Periods {
			v, _ := r.Get(p)
			row = append(row, formatValue(v))
		}
		table.Rows = append(table.Rows, row)
	}

	widths := []int{c.config.IDWidth, c.config.TextWidth, c.config.LeafWidth}
	for range table.Periods {
		widths = append(widths, c.config.PeriodWidth)
	}

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, cell := range cells {
				fmt.Fprintf(&b, " %-*s |", widths[i], truncate(cell, widths[i]))
			}
			return b.String()
		},
		"header": func(periods []string) []string {
			return append([]string{"ID", "Region", "Leaf"}, periods...)
		},
		"separator": func() string {
			var b strings.Builder
			b.WriteString("+")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("+")
			}
			return b.String()
		},
	}

	tmpl := `{{separator}}
{{formatRow (header .Periods)}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{len .Rows}} regions
`

	t, err := template.New("records").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, table)
}

func (c *Reporter) Indicators(list []domain.Indicator) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(c.writer, "No indicators in the catalogue")
		return err
	}

	tmpl := `{{range .}}{{printf "%6d" .ID}}  {{.Name}}
{{end}}`
	t, err := template.New("indicators").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, list)
}

func periodColumns(records []domain.FlatRegionRecord) []string {
	seen := make(map[string]bool)
	var periods []string
	for _, r := range records {
		for _, v := range r.Values {
			if !seen[v.Period] {
				seen[v.Period] = true
				periods = append(periods, v.Period)
			}
		}
	}
	return periods
}

func formatValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
