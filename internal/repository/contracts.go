package repository

import (
	"context"
	"time"

	"github.com/maxviazov/esports-health-service/internal/model"
)

// Pinger reports whether the store can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc runs inside a transaction; store calls must use the ctx it receives.
type TxFunc func(ctx context.Context) error

// TxManager commits when fn returns nil and rolls back otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PlayerRepository stores the roster. GetByID and Delete return ErrNotFound
// for unknown ids.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	List(ctx context.Context, p Page) (PageResult[model.Player], error)
	// ListByTeam returns every player whose team name matches exactly, ordered by id.
	// An unknown team yields an empty slice, not ErrNotFound.
	ListByTeam(ctx context.Context, team string) ([]model.Player, error)
	// ListAll returns the whole roster ordered by id.
	ListAll(ctx context.Context) ([]model.Player, error)
	// Delete removes the player together with all of its readings.
	Delete(ctx context.Context, id int64) error
}

// ReadingRepository declares operations for biometric readings.
type ReadingRepository interface {
	Create(ctx context.Context, r model.Reading) (model.Reading, error)
	// ListByPlayerSince returns readings with timestamp >= since, ascending by timestamp.
	ListByPlayerSince(ctx context.Context, playerID int64, since time.Time) ([]model.Reading, error)
	// Latest returns the most recent reading or ErrNotFound when the player has none.
	Latest(ctx context.Context, playerID int64) (model.Reading, error)
}
