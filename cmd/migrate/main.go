package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/maxviazov/esports-health-service/internal/config"
	"github.com/maxviazov/esports-health-service/internal/logger"
	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/migrations"
)

const usage = `usage: migrate [-config path] <up|down|status|version>`

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config, empty to use env only")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

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
	if cfg.Storage.Driver != "postgres" {
		appLogger.Fatal().Str("driver", cfg.Storage.Driver).Msg("migrations only apply to the postgres driver")
	}

	db, err := sql.Open("pgx", repository.DSN(cfg.Postgres))
	if err != nil {
		appLogger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		appLogger.Fatal().Err(err).Msg("set goose dialect")
	}

	switch command {
	case "up":
		err = goose.Up(db, migrations.Dir)
	case "down":
		err = goose.Down(db, migrations.Dir)
	case "status":
		err = goose.Status(db, migrations.Dir)
	case "version":
		err = goose.Version(db, migrations.Dir)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		appLogger.Fatal().Err(err).Str("command", command).Msg("migration failed")
	}
	appLogger.Info().Str("command", command).Msg("migration finished")
}
