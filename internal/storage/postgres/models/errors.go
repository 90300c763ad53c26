package models

import (
	"errors"

	"github.com/MaximJrr/drf-movies/internal/storage"
	"github.com/MaximJrr/drf-movies/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapPgErr translates driver-level errors into storage sentinels.
func mapPgErr(err error) error {
	var pgxErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return storage.ErrNotFound
	case errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode:
		return storage.ErrConflict
	case errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrInvalidRefCode:
		return storage.ErrInvalidRef
	}
	return err
}
