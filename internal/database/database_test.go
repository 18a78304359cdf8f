package database

import (
	"context"
	"testing"
	"time"

	"github.com/LDtito/zend-crud-app/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a PostgreSQL testcontainer and returns its config.
func startPostgres(t *testing.T) (config.DatabaseConfig, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "postgres",
		Password:        "postgres",
		Database:        "testdb",
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}

	return cfg, func() { _ = pgContainer.Terminate(ctx) }
}

func TestNewPoolAndMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	cfg, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()

	pool, err := NewPool(ctx, cfg, logger)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool, logger))

	version, err := Version(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	for _, table := range []string{"categorias", "productos"} {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	var dataType string
	err = pool.QueryRow(ctx,
		`SELECT data_type FROM information_schema.columns
		 WHERE table_name = 'productos' AND column_name = 'imagen'`).Scan(&dataType)
	require.NoError(t, err)
	assert.Equal(t, "bytea", dataType)

	// Running again is a no-op
	require.NoError(t, Migrate(ctx, pool, logger))
	version, err = Version(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestNewPool_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cfg := config.DatabaseConfig{
		Host:           "127.0.0.1",
		Port:           1,
		User:           "postgres",
		Database:       "nope",
		MaxConnections: 1,
		MinConnections: 1,
	}

	pool, err := NewPool(ctx, cfg, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, pool)
}
