package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaysadin/wedding-seating-api/internal/domain/event"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
)

// PostgresEventRepository implements EventRepository using GORM
type PostgresEventRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{
		db:  db,
		log: logger.Repository("event"),
	}
}

func (r *PostgresEventRepository) Create(e *event.Event) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("event validation failed: %w", err)
	}

	if err := r.db.Create(e).Error; err != nil {
		r.log.Error("failed to create event", "error", err, "event_id", e.ID)
		return fmt.Errorf("failed to create event: %w", err)
	}

	r.log.Info("event created", "event_id", e.ID, "name", e.Name)
	return nil
}

func (r *PostgresEventRepository) GetByID(id string) (*event.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid event ID format")
	}

	var e event.Event
	if err := r.db.First(&e, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		r.log.Error("failed to retrieve event", "event_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve event: %w", err)
	}

	return &e, nil
}

func (r *PostgresEventRepository) GetAll() ([]*event.Event, error) {
	var events []*event.Event
	if err := r.db.Order("date ASC").Find(&events).Error; err != nil {
		r.log.Error("failed to retrieve events", "error", err)
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}
	return events, nil
}

func (r *PostgresEventRepository) GetByOwner(ownerID string) ([]*event.Event, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, errors.New("invalid owner ID format")
	}

	var events []*event.Event
	if err := r.db.Where("owner_id = ?", ownerUUID).Order("date ASC").Find(&events).Error; err != nil {
		r.log.Error("failed to retrieve events by owner", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to retrieve events by owner: %w", err)
	}
	return events, nil
}

func (r *PostgresEventRepository) UpdateStage(eventID string, stage event.Stage) error {
	e, err := r.GetByID(eventID)
	if err != nil {
		return err
	}

	if err := e.UpdateStage(stage); err != nil {
		return err
	}

	if err := r.db.Model(&event.Event{}).Where("id = ?", e.ID).Update("stage", stage).Error; err != nil {
		r.log.Error("failed to update event stage", "event_id", eventID, "error", err)
		return fmt.Errorf("failed to update event stage: %w", err)
	}

	r.log.Info("event stage updated", "event_id", eventID, "stage", stage.String())
	return nil
}
