// Package storage picks the store implementation named by config.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/esports-health-service/internal/config"
	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/repository/memory"
	"github.com/maxviazov/esports-health-service/internal/repository/postgres"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Stores groups the repositories every command needs. Close releases the
// backing resources and is safe to call once.
type Stores struct {
	Players  repository.PlayerRepository
	Readings repository.ReadingRepository
	Tx       repository.TxManager
	Pinger   repository.Pinger
	Close    func()
}

func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Stores, error) {
	switch cfg.Storage.Driver {
	case DriverPostgres:
		repo, err := repository.New(ctx, cfg, &logger)
		if err != nil {
			return Stores{}, err
		}
		pool := repo.Pool()
		return Stores{
			Players:  postgres.NewPlayerRepository(pool),
			Readings: postgres.NewReadingRepository(pool),
			Tx:       postgres.NewTxManager(pool),
			Pinger:   postgres.NewPinger(pool),
			Close:    repo.Close,
		}, nil
	case DriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		s := memory.NewStore()
		return Stores{
			Players:  s.Players(),
			Readings: s.Readings(),
			Tx:       s,
			Pinger:   s,
			Close:    func() {},
		}, nil
	default:
		return Stores{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
