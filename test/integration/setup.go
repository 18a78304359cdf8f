package integration

import (
	"context"
	"testing"
	"time"

	"github.com/LDtito/zend-crud-app/internal/config"
	"github.com/LDtito/zend-crud-app/internal/database"
	"github.com/LDtito/zend-crud-app/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// the migrated schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedCatalog inserts the built-in dataset: six categorias, three productos.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ds, err := seed.Default()
	if err != nil {
		t.Fatalf("failed to load built-in dataset: %v", err)
	}

	if _, err := seed.NewSeeder(pool, zerolog.Nop()).Run(context.Background(), ds); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
}

// CleanupDB removes all rows and resets the id sequences.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE productos, categorias RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

// CategoriaID looks up a categoria id by nombre.
func CategoriaID(t *testing.T, pool *pgxpool.Pool, nombre string) int64 {
	t.Helper()

	var id int64
	if err := pool.QueryRow(context.Background(), "SELECT id FROM categorias WHERE nombre = $1", nombre).Scan(&id); err != nil {
		t.Fatalf("categoria %q not found: %v", nombre, err)
	}
	return id
}
