package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/maxviazov/esports-health-service/internal/config"
	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/repository/contract"
	"github.com/maxviazov/esports-health-service/migrations"
)

// Set CONTRACT_TESTS=1 and the usual APP_POSTGRES_* variables to run these
// against a real database. The schema is migrated with the embedded goose files.
var (
	db      *sql.DB
	pool    *pgxpool.Pool
	skipped = true
)

func TestMain(m *testing.M) {
	os.Exit(runContract(m))
}

func runContract(m *testing.M) int {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		return m.Run()
	}

	cfg, err := config.Load("")
	if errors.Is(err, config.ErrMissingSecret) {
		log.Printf("[contract] %v; skipping", err)
		return m.Run()
	}
	if err != nil {
		log.Printf("[contract] config: %v", err)
		return 1
	}

	db, err = sql.Open("pgx", repository.DSN(cfg.Postgres))
	if err != nil {
		log.Printf("[contract] open: %v", err)
		return 1
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Printf("[contract] goose dialect: %v", err)
		return 1
	}
	if err := goose.Up(db, migrations.Dir); err != nil {
		log.Printf("[contract] migrate: %v", err)
		return 1
	}

	logger := zerolog.New(io.Discard)
	repo, err := repository.New(context.Background(), cfg, &logger)
	if err != nil {
		log.Printf("[contract] pool: %v", err)
		return 1
	}
	defer repo.Close()
	pool = repo.Pool()

	skipped = false
	return m.Run()
}

func skipIfNeeded(t *testing.T) {
	t.Helper()
	if skipped {
		t.Skip("postgres contract tests need CONTRACT_TESTS=1 and APP_POSTGRES_* settings")
	}
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := db.Exec("TRUNCATE TABLE readings, players RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func makePlayerRepo(t *testing.T) (repository.PlayerRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewPlayerRepository(pool), func() { truncateAll(t) }
}

func makeReadingRepo(t *testing.T) (repository.ReadingRepository, repository.PlayerRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewReadingRepository(pool), NewPlayerRepository(pool), func() { truncateAll(t) }
}

func makeTx(t *testing.T) (repository.TxManager, repository.PlayerRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewTxManager(pool), NewPlayerRepository(pool), func() { truncateAll(t) }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	skipIfNeeded(t)
	return NewPinger(pool), func() {}
}

func TestPlayerRepository_PostgresContract(t *testing.T) {
	contract.RunPlayerRepositoryContract(t, makePlayerRepo)
}

func TestReadingRepository_PostgresContract(t *testing.T) {
	contract.RunReadingRepositoryContract(t, makeReadingRepo)
}

func TestTxManager_PostgresContract(t *testing.T) {
	contract.RunTxManagerContract(t, makeTx)
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}
