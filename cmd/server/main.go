package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/api"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/config"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/metrics"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/records"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/refresher"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/report"
	"github.com/polriba1/gladius-client-portal-v2-sub000/internal/stream"
	"github.com/polriba1/gladius-client-portal-v2-sub000/pkg/middleware"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Msg("starting gladius reporting server")

	// Load tenant report settings
	settings, err := config.LoadReportSettings(cfg.ReportSettingsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load report settings")
	}

	// Create context for services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create record store
	store, err := records.NewStore(ctx, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize record store")
	}

	// Create report engine (nil resolver -> built-in default labels)
	engine := report.NewEngine(store, settings, nil, log.Logger)

	// Create stream hub for live report snapshots
	hub := stream.NewHub(log.Logger)
	go hub.Run()
	wsHandler := stream.NewHandler(hub, cfg, log.Logger)

	// Create refresher for the configured live tenants
	refreshService := refresher.New(engine, hub, cfg.RefreshTenants, cfg.RefreshInterval, log.Logger)
	go refreshService.Start(ctx)

	// Create report handler
	reportHandler := api.NewReportHandler(engine, nil, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register public routes
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler())

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/", reportHandler.GetReport)
		r.Get("/heatmap", reportHandler.GetHeatmap)
		r.Get("/trend", reportHandler.GetTrend)
		r.Get("/insights", reportHandler.GetInsights)
	})

	r.Get("/ws", wsHandler.ServeHTTP)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Stop the refresher
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"gladius-reporting"}`)
}
