package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/shaysadin/wedding-seating-api/internal/domain/event"
	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/domain/user"
)

// EventRepository defines the methods for interacting with events in the DB
type EventRepository interface {
	Create(event *event.Event) error
	GetByID(id string) (*event.Event, error)
	GetAll() ([]*event.Event, error)
	GetByOwner(ownerID string) ([]*event.Event, error)
	UpdateStage(eventID string, stage event.Stage) error
}

// UserRepository defines the methods for interacting with users in the DB
type UserRepository interface {
	Create(user *user.User) error
	GetByID(id string) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
}

// GuestRepository defines the methods for interacting with guests and their
// RSVP records in the DB
type GuestRepository interface {
	Create(guest *guest.Guest) error
	GetByID(id string) (*guest.Guest, error)
	GetByEventID(eventID string) ([]*guest.Guest, error)
	Update(guest *guest.Guest) error
	Delete(id string) error
	UpsertRSVP(guestID string, status guest.RSVPStatus, guestCount int) error
}

// TableRepository defines the methods for interacting with tables, seats and
// assignments in the DB. ApplyPlan is the allocator's persistence primitive:
// it must commit the whole plan atomically or leave the previous table set
// intact.
type TableRepository interface {
	GetByID(id string) (*seating.Table, error)
	GetByEventID(eventID string) ([]*seating.Table, error)
	CountByEventID(eventID string) (int64, error)
	GetAssignmentsByEventID(eventID string) ([]*seating.Assignment, error)
	ApplyPlan(ctx context.Context, eventID uuid.UUID, plan *seating.Plan, clearExisting bool) error
	ReplaceSeats(tableID uuid.UUID, seats []seating.Seat) error
	AssignGuest(eventID, tableID, guestID uuid.UUID) error
	AssignSeat(tableID uuid.UUID, seatNumber int, guestID uuid.UUID) error
}

// RepositoryContainer aggregates every repository behind one handle
type RepositoryContainer interface {
	Events() EventRepository
	Users() UserRepository
	Guests() GuestRepository
	Tables() TableRepository
	Health() error
	Close() error
}
