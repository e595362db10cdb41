package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    fullname      TEXT NOT NULL,
    username      TEXT NOT NULL,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT users_username_key UNIQUE (username),
    CONSTRAINT users_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS messages (
    id           BIGSERIAL PRIMARY KEY,
    name         TEXT NOT NULL,
    email        TEXT NOT NULL,
    message      TEXT NOT NULL,
    submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
    id          BIGSERIAL PRIMARY KEY,
    user_name   TEXT NOT NULL,
    slot        TEXT NOT NULL,
    start_time  TIMESTAMPTZ NOT NULL,
    expiry_time TIMESTAMPTZ NOT NULL,
    status      TEXT NOT NULL DEFAULT 'active'
                CHECK (status IN ('active', 'cancelled', 'expired'))
);

CREATE INDEX IF NOT EXISTS bookings_active_idx ON bookings (status, expiry_time);
CREATE INDEX IF NOT EXISTS bookings_user_start_idx ON bookings (user_name, start_time DESC);
`

// EnsureSchema creates tables and indexes if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, schema)
	return err
}

// NewStore wires all repositories onto one pool.
func NewStore(pool *pgxpool.Pool) *repo.Store {
	return &repo.Store{
		Users:    NewUserRepo(pool),
		Contacts: NewContactRepo(pool),
		Bookings: NewBookingRepo(pool),
		Ping:     pool.Ping,
		Close:    pool.Close,
	}
}

const uniqueViolation = "23505"

// mapUniqueViolation turns a unique-constraint failure into a
// DuplicateKeyError naming the column.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return &domain.DuplicateKeyError{Field: "username"}
	case "users_email_key":
		return &domain.DuplicateKeyError{Field: "email"}
	default:
		return &domain.DuplicateKeyError{Field: pgErr.ConstraintName}
	}
}
