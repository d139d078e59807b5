package seating

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Table represents a physical table on the event floor plan. Capacity bounds
// intended occupancy but is advisory: the allocator may place a party whose
// demand slightly exceeds it (see the overflow allowance in the bin-packer),
// which is surfaced as a warning, never an error.
type Table struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventID            uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	Name               string    `json:"name" gorm:"not null"`
	Number             int       `json:"number" gorm:"not null"`
	Capacity           int       `json:"capacity" gorm:"not null"`
	Shape              Shape     `json:"shape" gorm:"type:table_shape;not null;default:'circle'"`
	SeatingArrangement string    `json:"seating_arrangement" gorm:"default:'even'"`
	Width              float64   `json:"width" gorm:"default:120"`
	Height             float64   `json:"height" gorm:"default:120"`
	PositionX          float64   `json:"position_x"`
	PositionY          float64   `json:"position_y"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Seats       []Seat       `json:"seats,omitempty" gorm:"foreignKey:TableID;constraint:OnDelete:CASCADE"`
	Assignments []Assignment `json:"assignments,omitempty" gorm:"foreignKey:TableID;constraint:OnDelete:CASCADE"`
}

// Seat is a single position around a table. Positions are relative to the
// table center and derived entirely from (capacity, shape, arrangement,
// width, height); regenerating a table's seats replaces all of them.
type Seat struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TableID    uuid.UUID  `json:"table_id" gorm:"type:uuid;not null;index:idx_seats_table_number,unique"`
	SeatNumber int        `json:"seat_number" gorm:"not null;index:idx_seats_table_number,unique"`
	RelativeX  float64    `json:"relative_x"`
	RelativeY  float64    `json:"relative_y"`
	Angle      float64    `json:"angle"`
	GuestID    *uuid.UUID `json:"guest_id,omitempty" gorm:"type:uuid"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// Assignment links a guest to a table. It is a guest-to-table link, not a
// guest-to-seat one: a guest has at most one active assignment at a time.
type Assignment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventID   uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	TableID   uuid.UUID `json:"table_id" gorm:"type:uuid;not null;index"`
	GuestID   uuid.UUID `json:"guest_id" gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableConfig is a request-time descriptor of how many tables of a given
// shape and size to create. It is never persisted as-is; GroupAssignments,
// when non-empty, dedicates the batch to the named guest groups.
type TableConfig struct {
	Shape            Shape          `json:"shape"`
	Capacity         int            `json:"capacity"`
	Count            int            `json:"count"`
	Width            float64        `json:"width"`
	Height           float64        `json:"height"`
	GroupAssignments pq.StringArray `json:"group_assignments,omitempty" gorm:"type:text[]"`
}

func (Table) TableName() string {
	return "tables"
}

func (Seat) TableName() string {
	return "seats"
}

func (Assignment) TableName() string {
	return "assignments"
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Validate checks if the table config is usable for allocation
func (c TableConfig) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1")
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	if !c.Shape.Valid() {
		return fmt.Errorf("invalid table shape: %s", c.Shape)
	}
	return nil
}

// Shape is the geometric shape of a table
type Shape string

const (
	ShapeCircle    Shape = "circle"
	ShapeRectangle Shape = "rectangle"
	ShapeSquare    Shape = "square"
	ShapeOval      Shape = "oval"
)

// Valid reports whether s is a known shape
func (s Shape) Valid() bool {
	switch s {
	case ShapeCircle, ShapeRectangle, ShapeSquare, ShapeOval:
		return true
	default:
		return false
	}
}

// Round reports whether seats are laid out on an ellipse rather than edges
func (s Shape) Round() bool {
	return s == ShapeCircle || s == ShapeOval
}

// Scan implements the sql.Scanner interface for database deserialization
func (s *Shape) Scan(value interface{}) error {
	if value == nil {
		*s = ShapeCircle
		return nil
	}

	str, ok := value.(string)
	if !ok {
		if b, isBytes := value.([]byte); isBytes {
			str = string(b)
		} else {
			return fmt.Errorf("cannot scan %T into Shape", value)
		}
	}

	shape := Shape(str)
	if !shape.Valid() {
		return fmt.Errorf("invalid shape value: %s", str)
	}
	*s = shape
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (s Shape) Value() (driver.Value, error) {
	return string(s), nil
}
