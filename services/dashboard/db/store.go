package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const createSchemaSQL = `
CREATE SCHEMA IF NOT EXISTS gfsi;

CREATE TABLE IF NOT EXISTS gfsi.index_2019 (
    position           integer PRIMARY KEY,
    rank               text,
    country            text NOT NULL,
    overall_score      double precision,
    affordability      double precision,
    availability       double precision,
    quality_and_safety double precision,
    ingested_at        timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS gfsi.index_2022 (
    position           integer PRIMARY KEY,
    rank               text,
    country            text NOT NULL,
    overall_score      double precision,
    affordability      double precision,
    availability       double precision,
    quality_and_safety double precision,
    ingested_at        timestamptz NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the snapshot tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
