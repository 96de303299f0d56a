package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

const readingColumns = `id, player_id, heart_rate, oxygen_saturation, recorded_at`

type readingRepository struct{ pool *pgxpool.Pool }

func NewReadingRepository(pool *pgxpool.Pool) repository.ReadingRepository {
	return &readingRepository{pool: pool}
}

func scanReading(row pgx.Row) (model.Reading, error) {
	var out model.Reading
	if err := row.Scan(&out.ID, &out.PlayerID, &out.HeartRate, &out.OxygenSaturation, &out.Timestamp); err != nil {
		return model.Reading{}, err
	}
	out.Timestamp = out.Timestamp.UTC()
	return out, nil
}

// Create inserts a reading. An unknown player surfaces as ErrConflict through
// the foreign key and an out-of-domain value as ErrOutOfRange.
func (r *readingRepository) Create(ctx context.Context, in model.Reading) (model.Reading, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Reading{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO readings (player_id, heart_rate, oxygen_saturation, recorded_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+readingColumns,
		in.PlayerID, in.HeartRate, in.OxygenSaturation, in.Timestamp,
	)
	out, err := scanReading(row)
	if err != nil {
		return model.Reading{}, repository.MapPgError(err)
	}
	return out, nil
}

// ListByPlayerSince orders by (recorded_at, id) so equal timestamps keep insertion order.
func (r *readingRepository) ListByPlayerSince(ctx context.Context, playerID int64, since time.Time) ([]model.Reading, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+readingColumns+`
		 FROM readings
		 WHERE player_id = $1 AND recorded_at >= $2
		 ORDER BY recorded_at, id`,
		playerID, since,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Reading, 0)
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *readingRepository) Latest(ctx context.Context, playerID int64) (model.Reading, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Reading{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+readingColumns+`
		 FROM readings
		 WHERE player_id = $1
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT 1`,
		playerID,
	)
	out, err := scanReading(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reading{}, repository.ErrNotFound
		}
		return model.Reading{}, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.ReadingRepository = (*readingRepository)(nil)
