// Package store provides parameterized access to the control-plane
// Postgres database: user accounts, the company directory, and the
// audit trail.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyExists        = errors.New("company already registered")
	ErrCompanyNotConfigured = errors.New("company connection not configured")
)

// Store wraps the shared pgxpool handle. It holds no other state; every
// method issues a single parameterized statement.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
