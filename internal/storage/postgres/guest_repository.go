package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
)

// PostgresGuestRepository implements GuestRepository using GORM
type PostgresGuestRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresGuestRepository creates a new PostgreSQL guest repository
func NewPostgresGuestRepository(db *gorm.DB) *PostgresGuestRepository {
	return &PostgresGuestRepository{
		db:  db,
		log: logger.Repository("guest"),
	}
}

func (r *PostgresGuestRepository) Create(g *guest.Guest) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("guest validation failed: %w", err)
	}

	if err := r.db.Create(g).Error; err != nil {
		r.log.Error("failed to create guest", "error", err, "guest_id", g.ID)
		return fmt.Errorf("failed to create guest: %w", err)
	}

	r.log.Info("guest created", "guest_id", g.ID, "event_id", g.EventID, "name", g.Name)
	return nil
}

func (r *PostgresGuestRepository) GetByID(id string) (*guest.Guest, error) {
	guestID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid guest ID format")
	}

	var g guest.Guest
	if err := r.db.Preload("RSVP").First(&g, "id = ?", guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("guest not found")
		}
		r.log.Error("failed to retrieve guest", "guest_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve guest: %w", err)
	}

	return &g, nil
}

// GetByEventID returns an event's full guest list with RSVP records loaded.
// The seating selector depends on RSVPs being present, so they are always
// preloaded here.
func (r *PostgresGuestRepository) GetByEventID(eventID string) ([]*guest.Guest, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format: %w", err)
	}

	var guests []*guest.Guest
	if err := r.db.Preload("RSVP").Where("event_id = ?", eventUUID).Order("created_at ASC").Find(&guests).Error; err != nil {
		r.log.Error("failed to retrieve guests by event ID", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to retrieve guests by event ID: %w", err)
	}

	return guests, nil
}

func (r *PostgresGuestRepository) Update(g *guest.Guest) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("guest validation failed: %w", err)
	}

	if err := r.db.Save(g).Error; err != nil {
		r.log.Error("failed to update guest", "guest_id", g.ID, "error", err)
		return fmt.Errorf("failed to update guest: %w", err)
	}

	return nil
}

func (r *PostgresGuestRepository) Delete(id string) error {
	guestID, err := uuid.Parse(id)
	if err != nil {
		return errors.New("invalid guest ID format")
	}

	result := r.db.Delete(&guest.Guest{}, "id = ?", guestID)
	if result.Error != nil {
		r.log.Error("failed to delete guest", "guest_id", id, "error", result.Error)
		return fmt.Errorf("failed to delete guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("guest not found")
	}

	r.log.Info("guest deleted", "guest_id", id)
	return nil
}

// UpsertRSVP records or updates a guest's reply in one statement
func (r *PostgresGuestRepository) UpsertRSVP(guestID string, status guest.RSVPStatus, guestCount int) error {
	guestUUID, err := uuid.Parse(guestID)
	if err != nil {
		return errors.New("invalid guest ID format")
	}

	rsvp := &guest.RSVP{
		GuestID:    guestUUID,
		Status:     status,
		GuestCount: guestCount,
	}

	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guest_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "guest_count", "updated_at"}),
	}).Create(rsvp).Error
	if err != nil {
		r.log.Error("failed to upsert rsvp", "guest_id", guestID, "error", err)
		return fmt.Errorf("failed to upsert rsvp: %w", err)
	}

	r.log.Info("rsvp recorded", "guest_id", guestID, "status", status.String(), "guest_count", guestCount)
	return nil
}
