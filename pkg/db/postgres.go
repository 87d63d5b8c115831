package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiva/cityroute/config"
)

// NewPostgresPool creates a connection pool to PostgreSQL.
//
// The catalog is read once at startup, so the pool stays small:
//   - MaxConns / MinConns from config (defaults 10 / 1)
//   - Health-check period: 30 s
//   - Connect timeout: 5 s
func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.MaxConnIdleTime = 15 * time.Minute
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	return pool, nil
}

// PostgresSchema creates the catalog table. Position keeps the catalog order
// stable, which the search relies on for tie-breaks.
const PostgresSchema = `
	CREATE TABLE IF NOT EXISTS cities (
		position  INTEGER          NOT NULL PRIMARY KEY,
		name      TEXT             NOT NULL UNIQUE,
		lat       DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lng       DOUBLE PRECISION NOT NULL CHECK (lng BETWEEN -180 AND 180)
	)`

// EnsurePostgresSchema applies PostgresSchema.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}

// HealthCheck pings the PostgreSQL pool and returns nil if healthy.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return pool.Ping(pingCtx)
}
