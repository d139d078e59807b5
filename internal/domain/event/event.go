package event

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event represents a wedding event with its guest list and seating plan
type Event struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	BrideName string    `json:"bride_name"`
	GroomName string    `json:"groom_name"`
	Venue     string    `json:"venue"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null"`
	Date      time.Time `json:"date" gorm:"not null"`
	Stage     Stage     `json:"stage" gorm:"type:event_stage;not null;default:'draft'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Event) TableName() string {
	return "events"
}

// BeforeCreate sets a UUID before creating the record
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewEvent creates a new event with the given parameters
func NewEvent(name, brideName, groomName, venue string, ownerID uuid.UUID, date time.Time) *Event {
	return &Event{
		ID:        uuid.New(),
		Name:      name,
		BrideName: brideName,
		GroomName: groomName,
		Venue:     venue,
		OwnerID:   ownerID,
		Date:      date,
		Stage:     StageDraft,
		CreatedAt: time.Now(),
	}
}

// IsOwner checks if the given user ID owns this event
func (e *Event) IsOwner(userID uuid.UUID) bool {
	return e.OwnerID == userID
}

// CanTransitionTo checks if the event can transition to a new stage
func (e *Event) CanTransitionTo(newStage Stage) bool {
	transitions := map[Stage][]Stage{
		StageDraft:       {StageInvitations},
		StageInvitations: {StageSeating},
		StageSeating:     {StageFinal},
		StageFinal:       {StageSeating}, // seating can be reopened
	}

	allowedTransitions, exists := transitions[e.Stage]
	if !exists {
		return false
	}

	return slices.Contains(allowedTransitions, newStage)
}

// UpdateStage updates the stage if the transition is valid
func (e *Event) UpdateStage(newStage Stage) error {
	if !e.CanTransitionTo(newStage) {
		return fmt.Errorf("cannot transition from %s to %s", e.Stage, newStage)
	}
	e.Stage = newStage
	return nil
}

// Validate checks if the event data is valid
func (e *Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if e.OwnerID == uuid.Nil {
		return fmt.Errorf("owner_id is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// Stage represents the planning stage of an event
type Stage byte

const (
	StageDraft Stage = iota
	StageInvitations
	StageSeating
	StageFinal
)

func (s Stage) String() string {
	switch s {
	case StageDraft:
		return "draft"
	case StageInvitations:
		return "invitations"
	case StageSeating:
		return "seating"
	case StageFinal:
		return "final"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaler interface
func (s Stage) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Stage) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	stage, valid := StageFromString(str)
	if !valid {
		return fmt.Errorf("invalid stage: %s", str)
	}
	*s = stage
	return nil
}

// StageFromString converts a string to a Stage
func StageFromString(s string) (Stage, bool) {
	switch s {
	case "draft":
		return StageDraft, true
	case "invitations":
		return StageInvitations, true
	case "seating":
		return StageSeating, true
	case "final":
		return StageFinal, true
	default:
		return StageDraft, false
	}
}

// Scan implements the sql.Scanner interface for database deserialization
func (s *Stage) Scan(value interface{}) error {
	if value == nil {
		*s = StageDraft
		return nil
	}

	str, ok := value.(string)
	if !ok {
		if b, isBytes := value.([]byte); isBytes {
			str = string(b)
		} else {
			return fmt.Errorf("cannot scan %T into Stage", value)
		}
	}

	stage, valid := StageFromString(str)
	if !valid {
		return fmt.Errorf("invalid stage value: %s", str)
	}
	*s = stage
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (s Stage) Value() (driver.Value, error) {
	return s.String(), nil
}
