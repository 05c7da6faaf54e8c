package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnectPostgres_MissingDSN(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "", zap.NewNop())
	assert.Error(t, err)
}

func TestConnectPostgres_BadDSN(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "postgres://%zz", zap.NewNop())
	assert.Error(t, err)
}

func TestSchema_IsIdempotent(t *testing.T) {
	for _, stmt := range schema {
		s := strings.TrimSpace(stmt)
		assert.True(t,
			strings.HasPrefix(s, "CREATE TABLE IF NOT EXISTS") ||
				strings.HasPrefix(s, "CREATE INDEX IF NOT EXISTS"),
			s)
	}
}

// Runs only against a real database.
func TestConnectPostgres_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool, err := ConnectPostgres(context.Background(), dsn, zap.NewNop())
	require.NoError(t, err)
	defer pool.Close()

	// second run must be a no-op
	require.NoError(t, InitSchema(context.Background(), pool))
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(fmt.Errorf("get: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, IsNoRows(errors.New("boom")))

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(pgx.ErrNoRows))
}
