package postgres

import (
	"context"
	"customer-service/internal/config"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns = 10
	pingTimeout     = 5 * time.Second
)

var errMissingDatabaseURL = errors.New("postgres storage selected but database.url is not set")

type pinger interface {
	Ping(ctx context.Context) error
}

// NewConnectionPool opens the customer store pool and fails fast when the
// server is unreachable.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, errMissingDatabaseURL
	}

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "CustomerStore", "host", poolConfig.ConnConfig.Host, "db", poolConfig.ConnConfig.Database)
	log.Info("Opening customer store pool", "max_conns", poolConfig.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("open customer store pool: %w", err)
	}

	if err := verifyConnection(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Customer store reachable")
	return pool, nil
}

func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database.url: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	return poolConfig, nil
}

func verifyConnection(ctx context.Context, db pinger, logger *slog.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		logger.Error("Customer store did not answer ping", "error", err, "timeout", pingTimeout)
		return fmt.Errorf("customer store unreachable: %w", err)
	}
	return nil
}
