package commands

import (
	"fmt"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/stat-atlas/pkg/services/statistics"
	"github.com/spf13/cobra"
)

// StatisticsProvider resolves the statistics service once flags are parsed.
type StatisticsProvider func() (statistics.Service, error)

type PeriodsCmd struct {
	indexID  int
	provider StatisticsProvider
	reporter *export.Reporter
}

func NewPeriodsCmd(provider StatisticsProvider, reporter *export.Reporter) *cobra.Command {
	pc := &PeriodsCmd{provider: provider, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List period types available for an indicator",
		RunE:  pc.run,
	}

	cmd.Flags().IntVar(&pc.indexID, "index", 0, "Indicator id")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func (pc *PeriodsCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := pc.provider()
	if err != nil {
		return err
	}

	data, err := svc.GetPeriods(cmd.Context(), pc.indexID)
	if err != nil {
		return fmt.Errorf("failed to get periods: %w", err)
	}
	return pc.reporter.JSON(data)
}

type SegmentsCmd struct {
	indexID    int
	periodID   int
	attributes bool
	provider   StatisticsProvider
	reporter   *export.Reporter
}

func NewSegmentsCmd(provider StatisticsProvider, reporter *export.Reporter) *cobra.Command {
	sc := &SegmentsCmd{provider: provider, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "List normalised segments of an indicator",
		RunE:  sc.run,
	}
	sc.bindFlags(cmd)
	return cmd
}

func NewAttributesCmd(provider StatisticsProvider, reporter *export.Reporter) *cobra.Command {
	sc := &SegmentsCmd{provider: provider, reporter: reporter, attributes: true}
	cmd := &cobra.Command{
		Use:   "attributes",
		Short: "Show indicator attributes for a period type",
		RunE:  sc.run,
	}
	sc.bindFlags(cmd)
	return cmd
}

func (sc *SegmentsCmd) bindFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&sc.indexID, "index", 0, "Indicator id")
	cmd.Flags().IntVar(&sc.periodID, "period", 0, "Period type id")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("period")
}

func (sc *SegmentsCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := sc.provider()
	if err != nil {
		return err
	}

	if sc.attributes {
		data, err := svc.GetIndexAttributes(cmd.Context(), sc.indexID, sc.periodID)
		if err != nil {
			return fmt.Errorf("failed to get attributes: %w", err)
		}
		return sc.reporter.JSON(data)
	}

	segments, err := svc.GetSegments(cmd.Context(), sc.indexID, sc.periodID)
	if err != nil {
		return fmt.Errorf("failed to get segments: %w", err)
	}
	return sc.reporter.JSON(segments)
}

type TreeCmd struct {
	query    domain.TreeQuery
	asJSON   bool
	provider StatisticsProvider
	reporter *export.Reporter
}

func NewTreeCmd(provider StatisticsProvider, reporter *export.Reporter) *cobra.Command {
	tc := &TreeCmd{provider: provider, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show indicator values per region joined with period names",
		RunE:  tc.run,
	}

	f := cmd.Flags()
	f.IntVar(&tc.query.MeasureID, "measure", domain.DefaultMeasureID, "Measure id")
	f.IntVar(&tc.query.IndexID, "index", 0, "Indicator id")
	f.IntVar(&tc.query.PeriodID, "period", 0, "Period type id")
	f.StringVar(&tc.query.Terms, "terms", "", "Comma-separated term ids (termIds of a segment)")
	f.IntVar(&tc.query.TermID, "term", 0, "Term to drill into")
	f.StringVar(&tc.query.DicIDs, "dic-ids", "", "Comma-separated dictionary ids (dicId of a segment)")
	f.IntVar(&tc.query.Idx, "idx", 0, "Segment dimensionality index")
	f.StringVar(&tc.query.ParentID, "parent", "", "Parent region id; empty for the root")
	f.BoolVar(&tc.asJSON, "json", false, "Print JSON instead of a table")

	for _, name := range []string{"index", "period", "terms", "term", "dic-ids"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func (tc *TreeCmd) run(cmd *cobra.Command, _ []string) error {
	svc, err := tc.provider()
	if err != nil {
		return err
	}

	records, err := svc.GetIndexTreeData(cmd.Context(), tc.query)
	if err != nil {
		return fmt.Errorf("failed to get tree data: %w", err)
	}

	if tc.asJSON {
		return tc.reporter.JSON(records)
	}
	return tc.reporter.Records(records)
}
