// Package db owns persistence-store setup: the PostgreSQL pool, the embedded
// SQLite fallback, and the explicit primary-then-fallback selection strategy.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Driver identifies which storage engine a Store is backed by.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Store is the process-wide handle to whichever engine was selected at
// startup. Exactly one of Pool or SQLite is non-nil.
type Store struct {
	Driver Driver
	Pool   *pgxpool.Pool
	SQLite *SQLiteDB
}

// Close releases the underlying engine.
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.SQLite != nil {
		s.SQLite.Close()
	}
}

// NewPool opens a pgx connection pool and verifies it with a ping.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Connect selects the storage engine: PostgreSQL when DATABASE_URL is set and
// reachable, otherwise the embedded SQLite store at sqlitePath. The fallback
// is an availability convenience for local runs; data written to one engine
// is not visible to the other.
func Connect(ctx context.Context, databaseURL, sqlitePath string, maxConns, minConns int32, logger zerolog.Logger) (*Store, error) {
	if databaseURL != "" {
		pool, err := NewPool(ctx, databaseURL, maxConns, minConns)
		if err == nil {
			logger.Info().Str("driver", string(DriverPostgres)).Msg("connected to primary store")
			return &Store{Driver: DriverPostgres, Pool: pool}, nil
		}
		logger.Warn().Err(err).Msg("primary store unreachable, falling back to sqlite")
	}

	if sqlitePath == "" {
		return nil, fmt.Errorf("no reachable store: primary failed and no sqlite path configured")
	}

	sq, err := OpenSQLite(ctx, sqlitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite fallback: %w", err)
	}
	logger.Info().Str("driver", string(DriverSQLite)).Str("path", sqlitePath).Msg("connected to fallback store")
	return &Store{Driver: DriverSQLite, SQLite: sq}, nil
}
