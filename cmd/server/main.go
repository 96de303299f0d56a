package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/maxviazov/esports-health-service/internal/config"
	"github.com/maxviazov/esports-health-service/internal/handler"
	"github.com/maxviazov/esports-health-service/internal/logger"
	"github.com/maxviazov/esports-health-service/internal/seed"
	"github.com/maxviazov/esports-health-service/internal/service"
	"github.com/maxviazov/esports-health-service/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	configPath := flag.String("config", envOr("APP_CONFIG", "config.yaml"), "path to YAML config, empty to use env only")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("storage initialization failed")
	}
	defer stores.Close()

	if cfg.Storage.SeedOnStart {
		seeder := seed.NewSeeder(stores.Tx, stores.Players, stores.Readings, appLogger)
		now := time.Now().UTC()
		rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
		if _, err := seeder.Seed(ctx, seed.DefaultRoster(), now, rng, false); err != nil {
			appLogger.Error().Err(err).Msg("seeding sample data failed")
		}
	}

	players := service.NewPlayerService(stores.Players, appLogger)
	readings := service.NewReadingService(stores.Players, stores.Readings, appLogger)
	analytics := service.NewAnalyticsService(stores.Players, stores.Readings, service.AnalyticsOptions{
		TeamWindow:     cfg.Analytics.TeamWindow(),
		SummaryWindow:  cfg.Analytics.SummaryWindow(),
		MaxConcurrency: cfg.Analytics.MaxConcurrency,
	}, appLogger)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, handler.Dependencies{
		Pinger:         stores.Pinger,
		Players:        players,
		Readings:       readings,
		Analytics:      analytics,
		Clock:          clockwork.NewRealClock(),
		Logger:         appLogger,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		ReadingsHours:  cfg.Analytics.ReadingsWindowHours,
		AnalyticsHours: cfg.Analytics.PlayerWindowHours,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(engine)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      corsHandler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		appLogger.Info().
			Str("addr", srv.Addr).
			Str("driver", cfg.Storage.Driver).
			Str("version", cfg.App.Version).
			Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("server stopped")
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
