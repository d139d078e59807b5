package migrations

import (
	"github.com/shaysadin/wedding-seating-api/internal/domain/event"
	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/domain/user"
)

// AllModels returns a slice of all models for migration. Order matters:
// referenced tables come before the tables that point at them.
func AllModels() []any {
	return []any{
		&user.User{},
		&event.Event{},
		&guest.Guest{},
		&guest.RSVP{},
		&seating.Table{},
		&seating.Seat{},
		&seating.Assignment{},
	}
}
