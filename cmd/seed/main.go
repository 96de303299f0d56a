package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/maxviazov/esports-health-service/internal/config"
	"github.com/maxviazov/esports-health-service/internal/logger"
	"github.com/maxviazov/esports-health-service/internal/seed"
	"github.com/maxviazov/esports-health-service/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config, empty to use env only")
	rosterPath := flag.String("roster", "seed/roster.yaml", "YAML roster, empty for the built-in one")
	force := flag.Bool("force", false, "seed even when players already exist")
	rngSeed := flag.Uint64("rand", 0, "random seed, 0 picks one from the clock")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	roster := seed.DefaultRoster()
	if *rosterPath != "" {
		if roster, err = seed.LoadRoster(*rosterPath); err != nil {
			appLogger.Fatal().Err(err).Msg("roster loading failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("storage initialization failed")
	}
	defer stores.Close()

	now := time.Now().UTC()
	s := *rngSeed
	if s == 0 {
		s = uint64(now.UnixNano())
	}
	rng := rand.New(rand.NewPCG(s, s>>1))

	res, err := seed.NewSeeder(stores.Tx, stores.Players, stores.Readings, appLogger).
		Seed(ctx, roster, now, rng, *force)
	if err != nil {
		appLogger.Error().Err(err).Msg("seeding failed")
		stores.Close()
		os.Exit(1)
	}
	appLogger.Info().
		Bool("skipped", res.Skipped).
		Int("players", res.Players).
		Int("readings", res.Readings).
		Uint64("rand", s).
		Msg("seed finished")
}
