package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup key has no entity.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a key is already taken.
	ErrAlreadyExists = errors.New("already exists")
)

const uniqueViolation = "23505"

// mapPgError translates pgx errors to the repository sentinels.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrAlreadyExists
	}
	return err
}
