package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func ConnectPostgres(ctx context.Context, dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info("connected to postgres", zap.String("host", config.ConnConfig.Host))

	if err := InitSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.Info("schema initialized", zap.Int("statements", len(schema)))
	return pool, nil
}

// InitSchema creates or updates the database schema. Every statement is
// idempotent.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
