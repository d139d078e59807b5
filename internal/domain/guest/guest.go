package guest

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest represents a single invitation on an event's guest list. One guest
// record may stand for a whole party: ExpectedGuests is the pre-RSVP estimate
// and the RSVP sub-record carries the confirmed head count once it exists.
type Guest struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventID        uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"not null"`
	Phone          string    `json:"phone"`
	Side           string    `json:"side"`
	GroupName      string    `json:"group_name"`
	ExpectedGuests int       `json:"expected_guests" gorm:"default:1"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	RSVP *RSVP `json:"rsvp,omitempty" gorm:"foreignKey:GuestID"`
}

// RSVP is a guest's attendance reply. GuestCount is the confirmed party size
// and is only meaningful once Status is accepted.
type RSVP struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	GuestID    uuid.UUID  `json:"guest_id" gorm:"type:uuid;not null;uniqueIndex"`
	Status     RSVPStatus `json:"status" gorm:"type:rsvp_status;not null;default:'pending'"`
	GuestCount int        `json:"guest_count" gorm:"default:0"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Guest) TableName() string {
	return "guests"
}

func (RSVP) TableName() string {
	return "rsvps"
}

// BeforeCreate sets a UUID before creating the record
func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (r *RSVP) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewGuest creates a new guest for an event
func NewGuest(eventID uuid.UUID, name, side, groupName string, expectedGuests int) *Guest {
	if expectedGuests < 1 {
		expectedGuests = 1
	}
	return &Guest{
		ID:             uuid.New(),
		EventID:        eventID,
		Name:           name,
		Side:           side,
		GroupName:      groupName,
		ExpectedGuests: expectedGuests,
		CreatedAt:      time.Now(),
	}
}

// Validate checks if the guest data is valid
func (g *Guest) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("name is required")
	}
	if g.EventID == uuid.Nil {
		return fmt.Errorf("event_id is required")
	}
	if g.ExpectedGuests < 1 {
		return fmt.Errorf("expected_guests must be at least 1")
	}
	return nil
}

// Status returns the guest's RSVP status, RSVPPending when no reply exists.
func (g *Guest) Status() RSVPStatus {
	if g.RSVP == nil {
		return RSVPPending
	}
	return g.RSVP.Status
}

// SeatDemand is the number of seats this guest's party occupies. It is the
// single source of truth for every capacity computation: a declined guest
// needs no seats, an accepted guest needs the confirmed count, and anyone
// still pending is counted at the pre-RSVP estimate.
func (g *Guest) SeatDemand() int {
	if g.RSVP != nil {
		switch g.RSVP.Status {
		case RSVPDeclined:
			return 0
		case RSVPAccepted:
			if g.RSVP.GuestCount > 0 {
				return g.RSVP.GuestCount
			}
			return 1
		}
	}
	if g.ExpectedGuests > 0 {
		return g.ExpectedGuests
	}
	return 1
}

// RSVPStatus represents the attendance confirmation status
type RSVPStatus byte

const (
	RSVPPending RSVPStatus = iota
	RSVPAccepted
	RSVPDeclined
)

// Priority orders statuses for seating: confirmed guests are placed into
// tables before uncertain ones within the same group/side bucket.
func (s RSVPStatus) Priority() int {
	switch s {
	case RSVPAccepted:
		return 0
	case RSVPPending:
		return 1
	case RSVPDeclined:
		return 2
	default:
		return 1
	}
}

func (s RSVPStatus) String() string {
	switch s {
	case RSVPPending:
		return "pending"
	case RSVPAccepted:
		return "accepted"
	case RSVPDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaler interface
func (s RSVPStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *RSVPStatus) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	status, valid := RSVPStatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid rsvp status: %s", str)
	}
	*s = status
	return nil
}

// RSVPStatusFromString converts a string to an RSVPStatus
func RSVPStatusFromString(s string) (RSVPStatus, bool) {
	switch s {
	case "pending":
		return RSVPPending, true
	case "accepted":
		return RSVPAccepted, true
	case "declined":
		return RSVPDeclined, true
	default:
		return RSVPPending, false
	}
}

// Scan implements the sql.Scanner interface for database deserialization
func (s *RSVPStatus) Scan(value interface{}) error {
	if value == nil {
		*s = RSVPPending
		return nil
	}

	str, ok := value.(string)
	if !ok {
		if b, isBytes := value.([]byte); isBytes {
			str = string(b)
		} else {
			return fmt.Errorf("cannot scan %T into RSVPStatus", value)
		}
	}

	status, valid := RSVPStatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid rsvp status value: %s", str)
	}
	*s = status
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (s RSVPStatus) Value() (driver.Value, error) {
	return s.String(), nil
}
