package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaysadin/wedding-seating-api/internal/domain/user"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
)

// PostgresUserRepository implements UserRepository using GORM
type PostgresUserRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db:  db,
		log: logger.Repository("user"),
	}
}

func (r *PostgresUserRepository) Create(u *user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("user validation failed: %w", err)
	}

	if err := r.db.Create(u).Error; err != nil {
		r.log.Error("failed to create user", "error", err, "user_id", u.ID)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created", "user_id", u.ID, "email", u.Email)
	return nil
}

func (r *PostgresUserRepository) GetByID(id string) (*user.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid user ID format")
	}

	var u user.User
	if err := r.db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		r.log.Error("failed to retrieve user", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return &u, nil
}

func (r *PostgresUserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		r.log.Error("failed to retrieve user by email", "error", err)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	return &u, nil
}
