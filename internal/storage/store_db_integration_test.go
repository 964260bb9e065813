//go:build integration

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("minicart_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := OpenPostgres(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewPostgresStore(db)
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestPostgresStore_GetSet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	s := setupPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	_, ok, err := s.Get(ctx, "@RocketShoes:cart")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "@RocketShoes:cart", `[{"id":1,"amount":1}]`))
	require.NoError(t, s.Set(ctx, "@RocketShoes:cart", `[{"id":1,"amount":2}]`))

	v, ok, err := s.Get(ctx, "@RocketShoes:cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":1,"amount":2}]`, v)
}
