package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/esports-health-service/internal/repository"
)

var errNilPool = errors.New("pgx pool is nil")

// querier is the part of pgxpool.Pool and pgx.Tx the stores use.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txCtxKey struct{}

func txFrom(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return tx, ok && tx != nil
}

// getQ returns the transaction carried by ctx, else the pool.
func getQ(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return pool
}

func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errNilPool
	}
	return nil
}

type txManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxManager runs units of work in READ COMMITTED transactions. Player and
// reading stores built on the same pool pick the transaction up from the context.
func NewTxManager(pool *pgxpool.Pool) repository.TxManager {
	return &txManager{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if err := ensurePool(m.pool); err != nil {
		return err
	}
	if _, nested := txFrom(ctx); nested {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, m.opts)
	if err != nil {
		return repository.MapPgError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return repository.MapPgError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return repository.MapPgError(err)
	}
	committed = true
	return nil
}

var _ repository.TxManager = (*txManager)(nil)
