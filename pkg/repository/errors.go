package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres unique violation.
const pgDuplicateKeyCode = "23505"

// MapError translates storage errors into the caller's domain sentinels:
// sql.ErrNoRows becomes notFoundErr, a unique violation becomes duplicateErr,
// anything else passes through.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateKeyCode {
		return duplicateErr
	}

	return err
}
