package main

import (
	"fmt"
	"os"

	"github.com/de-tools/stat-atlas/pkg/server"
	"github.com/de-tools/stat-atlas/pkg/services/charts"
	"github.com/de-tools/stat-atlas/pkg/services/config"
	"github.com/de-tools/stat-atlas/pkg/services/indicators"
	"github.com/de-tools/stat-atlas/pkg/services/statistics"
	"github.com/de-tools/stat-atlas/pkg/store/duckdb"
	duckdbcharts "github.com/de-tools/stat-atlas/pkg/store/duckdb/charts"
	duckdbfolders "github.com/de-tools/stat-atlas/pkg/store/duckdb/folders"
	duckdbindicators "github.com/de-tools/stat-atlas/pkg/store/duckdb/indicators"
	"github.com/de-tools/stat-atlas/pkg/store/upstream"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	verbose bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Stat Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an optional YAML config file; environment variables take precedence")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	backoff, err := upstream.NewBackoff(cfg.Upstream.Backoff, cfg.Upstream.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to configure retry backoff: %w", err)
	}
	fetcher, err := upstream.NewFetcher(upstream.Options{
		BaseURL: cfg.Upstream.BaseURL,
		Retries: cfg.Upstream.Retries,
		Backoff: backoff,
		Timeout: cfg.Upstream.Timeout,
		Logger:  &logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create upstream fetcher: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.Storage.DbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	chartStore, err := duckdbcharts.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create chart store: %w", err)
	}
	folderStore, err := duckdbfolders.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create folder store: %w", err)
	}
	indicatorStore, err := duckdbindicators.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create indicator store: %w", err)
	}

	manager, err := charts.NewManager(db, chartStore, folderStore)
	if err != nil {
		return fmt.Errorf("failed to create chart manager: %w", err)
	}

	logger.Info().
		Str("upstream", cfg.Upstream.BaseURL).
		Int("retries", cfg.Upstream.Retries).
		Dur("retry_delay", cfg.Upstream.RetryDelay).
		Str("backoff", cfg.Upstream.Backoff).
		Str("db_path", cfg.Storage.DbPath).
		Msg("configuration loaded")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		Dependencies: server.Dependencies{
			Statistics: statistics.NewService(upstream.NewClient(fetcher)),
			Charts:     manager,
			Indicators: indicators.NewCatalog(indicatorStore),
			Logger:     logger,
		},
	})

	return api.Start()
}
