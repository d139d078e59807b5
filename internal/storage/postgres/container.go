package postgres

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/shaysadin/wedding-seating-api/internal/config"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
)

// Container implements RepositoryContainer interface
type Container struct {
	db        *gorm.DB
	log       *log.Logger
	eventRepo EventRepository
	userRepo  UserRepository
	guestRepo GuestRepository
	tableRepo TableRepository
}

// NewContainer creates a new repository container with all repositories initialized
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	// Establish database connection
	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	// Perform health check
	if err := container.Health(); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:        db,
		log:       logger.Repository("postgres_container"),
		eventRepo: NewPostgresEventRepository(db),
		userRepo:  NewPostgresUserRepository(db),
		guestRepo: NewPostgresGuestRepository(db),
		tableRepo: NewPostgresTableRepository(db),
	}
}

// Events returns the event repository
func (c *Container) Events() EventRepository {
	return c.eventRepo
}

// Users returns the user repository
func (c *Container) Users() UserRepository {
	return c.userRepo
}

// Guests returns the guest repository
func (c *Container) Guests() GuestRepository {
	return c.guestRepo
}

// Tables returns the table repository
func (c *Container) Tables() TableRepository {
	return c.tableRepo
}

// Health performs a health check on the database connection and core tables
func (c *Container) Health() error {
	c.log.Debug("Performing container health check...")

	if err := HealthCheck(c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Verify each core table is queryable
	for _, table := range []string{"users", "events", "guests", "rsvps", "tables", "seats", "assignments"} {
		var count int64
		if err := c.db.Table(table).Count(&count).Error; err != nil {
			c.log.Error("Table health check failed", "table", table, "error", err)
			return fmt.Errorf("table %s health check failed: %w", table, err)
		}
		c.log.Debug("Table health check passed", "table", table)
	}

	c.log.Debug("Container health check completed successfully")
	return nil
}

// Close gracefully shuts down the container and closes database connections
func (c *Container) Close() error {
	c.log.Info("Closing PostgreSQL repository container...")

	if c.db == nil {
		c.log.Warn("Database connection is nil, nothing to close")
		return nil
	}

	if err := Close(c.db); err != nil {
		c.log.Error("Failed to close database connection", "error", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	c.eventRepo = nil
	c.userRepo = nil
	c.guestRepo = nil
	c.tableRepo = nil
	c.db = nil

	c.log.Info("PostgreSQL repository container closed successfully")
	return nil
}

// CloseWithTimeout closes the container with a timeout
func (c *Container) CloseWithTimeout(timeout time.Duration) error {
	done := make(chan error, 1)

	go func() {
		done <- c.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		c.log.Error("Container close operation timed out", "timeout", timeout)
		return fmt.Errorf("container close operation timed out after %v", timeout)
	}
}

// GetDB returns the underlying database connection (for advanced usage)
func (c *Container) GetDB() *gorm.DB {
	return c.db
}
