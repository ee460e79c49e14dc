package terminal

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/stat-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/stat-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/stat-atlas/pkg/services/config"
	"github.com/de-tools/stat-atlas/pkg/services/indicators"
	"github.com/de-tools/stat-atlas/pkg/services/statistics"
	"github.com/de-tools/stat-atlas/pkg/store/duckdb"
	duckdbindicators "github.com/de-tools/stat-atlas/pkg/store/duckdb/indicators"
	"github.com/de-tools/stat-atlas/pkg/store/upstream"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	configPath string
	verbose    bool
	output     io.Writer
	reporter   *export.Reporter
	rootCmd    *cobra.Command

	statistics statistics.Service
	catalog    indicators.Catalog
	cfg        *config.Config
	db         *sql.DB
	logger     zerolog.Logger
}

// Options contain configuration for the CLI. Statistics and Indicators
// replace the services built from configuration when set.
type Options struct {
	Output     io.Writer
	Statistics statistics.Service
	Indicators indicators.Catalog
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		output:     opts.Output,
		reporter:   export.NewReporter(opts.Output),
		statistics: opts.Statistics,
		catalog:    opts.Indicators,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stat-atlas",
		Short:         "Query the statistics API and manage the local catalogue",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if !cli.verbose {
				level = zerolog.Disabled
			}
			cli.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
			cmd.SetContext(cli.logger.WithContext(cmd.Context()))
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return cli.close()
		},
	}
	cmd.SetOut(cli.output)

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "",
		"Path to an optional YAML config file")
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Log upstream retries to stderr")

	cmd.AddCommand(commands.NewPeriodsCmd(cli.statisticsService, cli.reporter))
	cmd.AddCommand(commands.NewSegmentsCmd(cli.statisticsService, cli.reporter))
	cmd.AddCommand(commands.NewAttributesCmd(cli.statisticsService, cli.reporter))
	cmd.AddCommand(commands.NewTreeCmd(cli.statisticsService, cli.reporter))
	cmd.AddCommand(commands.NewIndicatorsCmd(cli.indicatorCatalog, cli.reporter))

	return cmd
}

func (cli *CLI) config() (*config.Config, error) {
	if cli.cfg != nil {
		return cli.cfg, nil
	}
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cli.cfg = cfg
	return cfg, nil
}

func (cli *CLI) statisticsService() (statistics.Service, error) {
	if cli.statistics != nil {
		return cli.statistics, nil
	}

	cfg, err := cli.config()
	if err != nil {
		return nil, err
	}

	backoff, err := upstream.NewBackoff(cfg.Upstream.Backoff, cfg.Upstream.RetryDelay)
	if err != nil {
		return nil, err
	}
	fetcher, err := upstream.NewFetcher(upstream.Options{
		BaseURL: cfg.Upstream.BaseURL,
		Retries: cfg.Upstream.Retries,
		Backoff: backoff,
		Timeout: cfg.Upstream.Timeout,
		Logger:  &cli.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream fetcher: %w", err)
	}

	cli.statistics = statistics.NewService(upstream.NewClient(fetcher))
	return cli.statistics, nil
}

func (cli *CLI) indicatorCatalog() (indicators.Catalog, error) {
	if cli.catalog != nil {
		return cli.catalog, nil
	}

	cfg, err := cli.config()
	if err != nil {
		return nil, err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Storage.DbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}
	store, err := duckdbindicators.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cli.db = db
	cli.catalog = indicators.NewCatalog(store)
	return cli.catalog, nil
}

func (cli *CLI) close() error {
	if cli.db == nil {
		return nil
	}
	err := cli.db.Close()
	cli.db = nil
	return err
}
