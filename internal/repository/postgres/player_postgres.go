package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

const playerColumns = `id, name, age, team, country, role`

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

func scanPlayer(row pgx.Row, extra ...any) (model.Player, error) {
	var p model.Player
	dest := append([]any{&p.ID, &p.Name, &p.Age, &p.Team, &p.Country, &p.Role}, extra...)
	if err := row.Scan(dest...); err != nil {
		return model.Player{}, err
	}
	return p, nil
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO players (name, age, team, country, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+playerColumns,
		p.Name, p.Age, p.Team, p.Country, p.Role,
	)
	out, err := scanPlayer(row)
	if err != nil {
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id,
	)
	out, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Player], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	p = p.Normalized()
	limit, offset := p.Limit, p.Offset
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+playerColumns+`, COUNT(*) OVER() AS total
		 FROM players
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Player]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Player]{Items: make([]model.Player, 0, limit)}
	for rows.Next() {
		var total int
		it, err := scanPlayer(rows, &total)
		if err != nil {
			return repository.PageResult[model.Player]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Player]{}, repository.MapPgError(err)
	}
	// An offset past the end yields no rows, so the window total is unknown.
	if len(res.Items) == 0 && offset > 0 {
		if err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&res.Total); err != nil {
			return repository.PageResult[model.Player]{}, repository.MapPgError(err)
		}
	}
	return res, nil
}

func (r *playerRepository) ListByTeam(ctx context.Context, team string) ([]model.Player, error) {
	return r.listWhere(ctx, `WHERE team = $1`, team)
}

func (r *playerRepository) ListAll(ctx context.Context) ([]model.Player, error) {
	return r.listWhere(ctx, ``)
}

func (r *playerRepository) listWhere(ctx context.Context, where string, args ...any) ([]model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+playerColumns+` FROM players `+where+` ORDER BY id`, args...,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

// Delete relies on ON DELETE CASCADE to drop the player's readings.
func (r *playerRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
