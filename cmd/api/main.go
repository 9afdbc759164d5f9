package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/neuromap-brasil/neuromap/internal/api/handlers"
	"github.com/neuromap-brasil/neuromap/internal/api/routes"
	"github.com/neuromap-brasil/neuromap/internal/application/services"
	"github.com/neuromap-brasil/neuromap/internal/bootstrap"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
	"github.com/neuromap-brasil/neuromap/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	geolocationProvider, closeGeolocation := bootstrap.NewGeolocationProvider(ctx, cfg, metrics)
	defer closeGeolocation()

	llm, err := bootstrap.NewLanguageModelProvider(cfg, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize language model provider")
	}

	searchService := services.NewClinicSearchService(geolocationProvider, llm, services.MessagesFor(cfg.App.Locale), metrics)

	searchHandler, err := handlers.NewSearchHandler(searchService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load page templates")
	}
	geolocationHandler := handlers.NewGeolocationHandler(geolocationProvider)

	router := routes.NewRouter(searchHandler, geolocationHandler, cfg.Server, metrics)

	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // model calls can take tens of seconds
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("geolocation", cfg.Geolocation.Provider).
			Str("llm", llm.Name()).
			Str("locale", cfg.App.Locale).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
