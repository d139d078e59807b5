package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
)

// allocationTxTimeout bounds the allocation transaction. A multi-config run
// on a large event writes hundreds of rows, so it gets a materially longer
// budget than simple CRUD.
const allocationTxTimeout = 30 * time.Second

// PostgresTableRepository implements TableRepository using GORM
type PostgresTableRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresTableRepository creates a new PostgreSQL table repository
func NewPostgresTableRepository(db *gorm.DB) *PostgresTableRepository {
	return &PostgresTableRepository{
		db:  db,
		log: logger.Repository("table"),
	}
}

func (r *PostgresTableRepository) GetByID(id string) (*seating.Table, error) {
	tableID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid table ID format")
	}

	var t seating.Table
	err = r.db.Preload("Seats", func(db *gorm.DB) *gorm.DB {
		return db.Order("seat_number ASC")
	}).Preload("Assignments").First(&t, "id = ?", tableID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("table not found")
		}
		r.log.Error("failed to retrieve table", "table_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve table: %w", err)
	}

	return &t, nil
}

func (r *PostgresTableRepository) GetByEventID(eventID string) ([]*seating.Table, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format: %w", err)
	}

	var tables []*seating.Table
	err = r.db.Preload("Seats", func(db *gorm.DB) *gorm.DB {
		return db.Order("seat_number ASC")
	}).Preload("Assignments").Where("event_id = ?", eventUUID).Order("number ASC").Find(&tables).Error
	if err != nil {
		r.log.Error("failed to retrieve tables by event ID", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to retrieve tables by event ID: %w", err)
	}

	return tables, nil
}

func (r *PostgresTableRepository) CountByEventID(eventID string) (int64, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return 0, fmt.Errorf("invalid event ID format: %w", err)
	}

	var count int64
	if err := r.db.Model(&seating.Table{}).Where("event_id = ?", eventUUID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tables: %w", err)
	}
	return count, nil
}

func (r *PostgresTableRepository) GetAssignmentsByEventID(eventID string) ([]*seating.Assignment, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format: %w", err)
	}

	var assignments []*seating.Assignment
	if err := r.db.Where("event_id = ?", eventUUID).Find(&assignments).Error; err != nil {
		r.log.Error("failed to retrieve assignments", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to retrieve assignments: %w", err)
	}

	return assignments, nil
}

// ApplyPlan persists one allocation run atomically: the optional wipe of the
// event's previous table set, the new tables with their seats and
// assignments, and the remainder-mix placements all commit or roll back as a
// unit. A failure leaves the previous table set intact.
func (r *PostgresTableRepository) ApplyPlan(ctx context.Context, eventID uuid.UUID, plan *seating.Plan, clearExisting bool) error {
	txCtx, cancel := context.WithTimeout(ctx, allocationTxTimeout)
	defer cancel()

	err := r.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		if clearExisting {
			if err := clearEventTables(tx, eventID); err != nil {
				return err
			}
		}

		for _, tp := range plan.NewTables {
			tp.Table.EventID = eventID
			if err := tx.Omit("Seats", "Assignments").Create(tp.Table).Error; err != nil {
				return fmt.Errorf("failed to create table %d: %w", tp.Table.Number, err)
			}
			if len(tp.Table.Seats) > 0 {
				if err := tx.CreateInBatches(tp.Table.Seats, 100).Error; err != nil {
					return fmt.Errorf("failed to create seats for table %d: %w", tp.Table.Number, err)
				}
			}
			for _, g := range tp.Guests {
				if err := reassignGuest(tx, eventID, tp.Table.ID, g.ID); err != nil {
					return err
				}
			}
		}

		for _, placement := range plan.MixedIn {
			if err := reassignGuest(tx, eventID, placement.Table.ID, placement.Guest.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		r.log.Error("failed to apply seating plan", "event_id", eventID, "error", err)
		return fmt.Errorf("failed to apply seating plan: %w", err)
	}

	r.log.Info("seating plan applied",
		"event_id", eventID,
		"tables_created", len(plan.NewTables),
		"mixed_in", len(plan.MixedIn),
		"cleared_existing", clearExisting)
	return nil
}

// clearEventTables removes the event's whole seating arrangement. Seats and
// assignments cascade from tables, but they are deleted explicitly so the
// wipe does not depend on schema-level cascade rules.
func clearEventTables(tx *gorm.DB, eventID uuid.UUID) error {
	if err := tx.Where("event_id = ?", eventID).Delete(&seating.Assignment{}).Error; err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}
	if err := tx.Where("table_id IN (?)",
		tx.Model(&seating.Table{}).Select("id").Where("event_id = ?", eventID),
	).Delete(&seating.Seat{}).Error; err != nil {
		return fmt.Errorf("failed to delete seats: %w", err)
	}
	if err := tx.Where("event_id = ?", eventID).Delete(&seating.Table{}).Error; err != nil {
		return fmt.Errorf("failed to delete tables: %w", err)
	}
	return nil
}

// reassignGuest makes tableID the guest's only active assignment
func reassignGuest(tx *gorm.DB, eventID, tableID, guestID uuid.UUID) error {
	if err := tx.Where("guest_id = ?", guestID).Delete(&seating.Assignment{}).Error; err != nil {
		return fmt.Errorf("failed to remove existing assignment: %w", err)
	}

	assignment := &seating.Assignment{
		EventID: eventID,
		TableID: tableID,
		GuestID: guestID,
	}
	if err := tx.Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// ReplaceSeats swaps a table's full seat set in one transaction
func (r *PostgresTableRepository) ReplaceSeats(tableID uuid.UUID, seats []seating.Seat) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_id = ?", tableID).Delete(&seating.Seat{}).Error; err != nil {
			return fmt.Errorf("failed to delete seats: %w", err)
		}
		if len(seats) > 0 {
			if err := tx.CreateInBatches(seats, 100).Error; err != nil {
				return fmt.Errorf("failed to create seats: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to replace seats", "table_id", tableID, "error", err)
		return err
	}

	r.log.Info("seats regenerated", "table_id", tableID, "seat_count", len(seats))
	return nil
}

// AssignGuest assigns a guest to a table, displacing any prior assignment
func (r *PostgresTableRepository) AssignGuest(eventID, tableID, guestID uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return reassignGuest(tx, eventID, tableID, guestID)
	})
	if err != nil {
		r.log.Error("failed to assign guest", "table_id", tableID, "guest_id", guestID, "error", err)
		return err
	}

	r.log.Info("guest assigned", "table_id", tableID, "guest_id", guestID)
	return nil
}

// AssignSeat binds a guest to a specific seat of their table. Any other seat
// at the table holding that guest is released first.
func (r *PostgresTableRepository) AssignSeat(tableID uuid.UUID, seatNumber int, guestID uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&seating.Seat{}).
			Where("table_id = ? AND guest_id = ?", tableID, guestID).
			Update("guest_id", nil).Error; err != nil {
			return fmt.Errorf("failed to release previous seat: %w", err)
		}

		result := tx.Model(&seating.Seat{}).
			Where("table_id = ? AND seat_number = ?", tableID, seatNumber).
			Update("guest_id", guestID)
		if result.Error != nil {
			return fmt.Errorf("failed to assign seat: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("seat not found")
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to assign seat", "table_id", tableID, "seat_number", seatNumber, "error", err)
		return err
	}

	return nil
}
