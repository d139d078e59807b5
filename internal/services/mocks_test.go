package services_test

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shaysadin/wedding-seating-api/internal/domain/event"
	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/domain/user"
)

// In-memory repository fakes for service tests. They implement the postgres
// repository interfaces without a database.

type memEventRepo struct {
	events []*event.Event
}

func (r *memEventRepo) Create(e *event.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *memEventRepo) GetByID(id string) (*event.Event, error) {
	for _, e := range r.events {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return nil, errors.New("event not found")
}

func (r *memEventRepo) GetAll() ([]*event.Event, error) {
	return r.events, nil
}

func (r *memEventRepo) GetByOwner(ownerID string) ([]*event.Event, error) {
	var out []*event.Event
	for _, e := range r.events {
		if e.OwnerID.String() == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEventRepo) UpdateStage(eventID string, stage event.Stage) error {
	e, err := r.GetByID(eventID)
	if err != nil {
		return err
	}
	e.Stage = stage
	return nil
}

type memUserRepo struct {
	users []*user.User
}

func (r *memUserRepo) Create(u *user.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *memUserRepo) GetByID(id string) (*user.User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *memUserRepo) GetByEmail(email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

type memGuestRepo struct {
	guests []*guest.Guest
}

func (r *memGuestRepo) Create(g *guest.Guest) error {
	r.guests = append(r.guests, g)
	return nil
}

func (r *memGuestRepo) GetByID(id string) (*guest.Guest, error) {
	for _, g := range r.guests {
		if g.ID.String() == id {
			return g, nil
		}
	}
	return nil, errors.New("guest not found")
}

func (r *memGuestRepo) GetByEventID(eventID string) ([]*guest.Guest, error) {
	var out []*guest.Guest
	for _, g := range r.guests {
		if g.EventID.String() == eventID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGuestRepo) Update(g *guest.Guest) error {
	return nil
}

func (r *memGuestRepo) Delete(id string) error {
	for i, g := range r.guests {
		if g.ID.String() == id {
			r.guests = append(r.guests[:i], r.guests[i+1:]...)
			return nil
		}
	}
	return errors.New("guest not found")
}

func (r *memGuestRepo) UpsertRSVP(guestID string, status guest.RSVPStatus, guestCount int) error {
	g, err := r.GetByID(guestID)
	if err != nil {
		return err
	}
	g.RSVP = &guest.RSVP{GuestID: g.ID, Status: status, GuestCount: guestCount}
	return nil
}

// memTableRepo mirrors the persistence semantics of ApplyPlan closely enough
// for assertions: the optional wipe, table creation, and assignment rows.
type memTableRepo struct {
	tables      []*seating.Table
	assignments []*seating.Assignment

	applyCalls int
	lastClear  bool
	failApply  error
}

func (r *memTableRepo) GetByID(id string) (*seating.Table, error) {
	for _, t := range r.tables {
		if t.ID.String() == id {
			return t, nil
		}
	}
	return nil, errors.New("table not found")
}

func (r *memTableRepo) GetByEventID(eventID string) ([]*seating.Table, error) {
	var out []*seating.Table
	for _, t := range r.tables {
		if t.EventID.String() == eventID {
			t.Assignments = nil
			for _, a := range r.assignments {
				if a.TableID == t.ID {
					t.Assignments = append(t.Assignments, *a)
				}
			}
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTableRepo) CountByEventID(eventID string) (int64, error) {
	var count int64
	for _, t := range r.tables {
		if t.EventID.String() == eventID {
			count++
		}
	}
	return count, nil
}

func (r *memTableRepo) GetAssignmentsByEventID(eventID string) ([]*seating.Assignment, error) {
	var out []*seating.Assignment
	for _, a := range r.assignments {
		if a.EventID.String() == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memTableRepo) ApplyPlan(ctx context.Context, eventID uuid.UUID, plan *seating.Plan, clearExisting bool) error {
	r.applyCalls++
	r.lastClear = clearExisting
	if r.failApply != nil {
		return r.failApply
	}

	if clearExisting {
		var keptTables []*seating.Table
		for _, t := range r.tables {
			if t.EventID != eventID {
				keptTables = append(keptTables, t)
			}
		}
		r.tables = keptTables

		var keptAssignments []*seating.Assignment
		for _, a := range r.assignments {
			if a.EventID != eventID {
				keptAssignments = append(keptAssignments, a)
			}
		}
		r.assignments = keptAssignments
	}

	for _, tp := range plan.NewTables {
		tp.Table.EventID = eventID
		r.tables = append(r.tables, tp.Table)
		for _, g := range tp.Guests {
			r.assignments = append(r.assignments, &seating.Assignment{
				ID:      uuid.New(),
				EventID: eventID,
				TableID: tp.Table.ID,
				GuestID: g.ID,
			})
		}
	}

	for _, p := range plan.MixedIn {
		r.assignments = append(r.assignments, &seating.Assignment{
			ID:      uuid.New(),
			EventID: eventID,
			TableID: p.Table.ID,
			GuestID: p.Guest.ID,
		})
	}

	return nil
}

func (r *memTableRepo) ReplaceSeats(tableID uuid.UUID, seats []seating.Seat) error {
	for _, t := range r.tables {
		if t.ID == tableID {
			t.Seats = seats
			return nil
		}
	}
	return errors.New("table not found")
}

func (r *memTableRepo) AssignGuest(eventID, tableID, guestID uuid.UUID) error {
	var kept []*seating.Assignment
	for _, a := range r.assignments {
		if a.GuestID != guestID {
			kept = append(kept, a)
		}
	}
	r.assignments = append(kept, &seating.Assignment{
		ID:      uuid.New(),
		EventID: eventID,
		TableID: tableID,
		GuestID: guestID,
	})
	return nil
}

func (r *memTableRepo) AssignSeat(tableID uuid.UUID, seatNumber int, guestID uuid.UUID) error {
	for _, t := range r.tables {
		if t.ID != tableID {
			continue
		}
		for i := range t.Seats {
			if t.Seats[i].SeatNumber == seatNumber {
				id := guestID
				t.Seats[i].GuestID = &id
				return nil
			}
		}
	}
	return errors.New("seat not found")
}
