//go:build integration
// +build integration

package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaysadin/wedding-seating-api/internal/config"
	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/services"
	"github.com/shaysadin/wedding-seating-api/internal/storage/postgres"
)

// Integration tests that require a real PostgreSQL database
// Run with: go test -tags=integration

func testConfig() *config.Config {
	cfg := config.Load()
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.DB.Name = testDB
	}
	return cfg
}

func TestDatabaseConnection(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	assert.NoError(t, err, "Should be able to connect to test database")

	if err == nil {
		sqlDB, err := db.DB()
		assert.NoError(t, err)

		err = sqlDB.Ping()
		assert.NoError(t, err, "Should be able to ping the database")

		sqlDB.Close()
	}
}

func TestDatabaseMigration(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	assert.NoError(t, err, "Should be able to connect to test database")

	if err == nil {
		err = postgres.AutoMigrate(db)
		assert.NoError(t, err, "Should be able to run migrations")

		sqlDB, _ := db.DB()
		sqlDB.Close()
	}
}

// TestAutoArrangeRoundTrip seats the seeded sample event and checks the
// persisted tables match the reported result.
func TestAutoArrangeRoundTrip(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err)
	require.NoError(t, postgres.AutoMigrate(db))

	repos := postgres.NewContainerWithDB(db)
	svc := services.NewSeatingService(repos.Guests(), repos.Tables())

	const sampleEventID = "660e8400-e29b-41d4-a716-446655440000"

	result, err := svc.AutoArrange(context.Background(), sampleEventID, services.AutoArrangeRequest{
		TableSize:     8,
		ClearExisting: true,
	})
	require.NoError(t, err)
	assert.Greater(t, result.TablesCreated, 0)

	tables, err := repos.Tables().GetByEventID(sampleEventID)
	require.NoError(t, err)
	assert.Len(t, tables, result.TablesCreated)

	for _, tbl := range tables {
		assert.Equal(t, tbl.Capacity, len(tbl.Seats), "each table carries a full seat perimeter")
		assert.Equal(t, seating.ShapeCircle, tbl.Shape)
	}

	sqlDB, _ := db.DB()
	sqlDB.Close()
}
