package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store errors. Both store implementations return these and callers match
// them with errors.Is; Postgres codes never leave this package.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict is a reference to a row that does not exist, e.g. a reading
	// for a deleted player.
	ErrConflict = errors.New("conflict")
	// ErrOutOfRange is a value the schema rejects, such as a heart rate
	// outside [40, 200].
	ErrOutOfRange = errors.New("value out of range")
)

// MapPgError converts the Postgres failures the service reacts to into store
// errors, keeping the constraint name for logs. Anything else is returned as is.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	var target error
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		target = ErrAlreadyExists
	case pgerrcode.ForeignKeyViolation:
		target = ErrConflict
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.NumericValueOutOfRange:
		target = ErrOutOfRange
	default:
		return err
	}
	if pgErr.ConstraintName == "" {
		return target
	}
	return fmt.Errorf("%w (%s)", target, pgErr.ConstraintName)
}
