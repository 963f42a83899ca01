package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var (
	// ErrNotFound classifies every NotFoundError; match with errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports a username that is already taken.
	ErrDuplicate = errors.New("already exists")
	// ErrSlotTaken reports a doctor slot collision, either from the
	// pre-insert check or from the partial unique index catching a race.
	ErrSlotTaken = errors.New("slot already booked")
)

// NotFoundError says which kind of resource was missing and by what id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
