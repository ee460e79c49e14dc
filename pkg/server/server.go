package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chartshandler "github.com/de-tools/stat-atlas/pkg/handlers/charts"
	foldershandler "github.com/de-tools/stat-atlas/pkg/handlers/folders"
	indicatorshandler "github.com/de-tools/stat-atlas/pkg/handlers/indicators"
	"github.com/de-tools/stat-atlas/pkg/handlers/response"
	statisticshandler "github.com/de-tools/stat-atlas/pkg/handlers/statistics"
	statatlasmiddleware "github.com/de-tools/stat-atlas/pkg/server/middleware"
	"github.com/de-tools/stat-atlas/pkg/services/charts"
	"github.com/de-tools/stat-atlas/pkg/services/indicators"
	"github.com/de-tools/stat-atlas/pkg/services/statistics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Statistics statistics.Service
	Charts     charts.Manager
	Indicators indicators.Catalog
	Logger     zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	statsHandler := statisticshandler.NewHandler(deps.Statistics)
	chartHandler := chartshandler.NewHandler(deps.Charts)
	folderHandler := foldershandler.NewHandler(deps.Charts)
	indicatorHandler := indicatorshandler.NewHandler(deps.Indicators)

	router := chi.NewRouter()

	router.Use(statatlasmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, r, http.StatusOK, map[string]any{
			"ok":   true,
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Get("/get_indicators", indicatorHandler.ListIndicators)
	router.Get("/get_periods", statsHandler.GetPeriods)
	router.Get("/get_segments", statsHandler.GetSegments)
	router.Get("/get_index_attributes", statsHandler.GetIndexAttributes)
	router.Get("/new_get_index_tree_data", statsHandler.GetIndexTreeData)

	router.Group(func(r chi.Router) {
		r.Use(statatlasmiddleware.Identity)

		r.Post("/save-data", chartHandler.SaveChart)
		r.Get("/get-data", chartHandler.ListCharts)
		r.Delete("/delete-data/{id}", chartHandler.DeleteChart)

		r.Post("/save-folder", folderHandler.CreateFolder)
		r.Get("/get-user-folders", folderHandler.ListFolders)
		r.Put("/update-folder/{id}", folderHandler.RenameFolder)
		r.Delete("/delete-folder/{id}", folderHandler.DeleteFolder)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// Start serves until the listener fails or the process receives SIGINT or
// SIGTERM, then drains in-flight requests.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		w.logger.Info().Str("signal", sig.String()).Msg("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
