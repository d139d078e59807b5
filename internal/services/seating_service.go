package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
	"github.com/shaysadin/wedding-seating-api/internal/storage/postgres"
	"github.com/shaysadin/wedding-seating-api/internal/validation"
)

// ErrAllGuestsSeated means an incremental run found matching guests but every
// one of them already holds an assignment.
var ErrAllGuestsSeated = errors.New("all matching guests are already seated")

// SeatingService orchestrates the allocation engine against storage: it loads
// the candidate pool, runs the pure allocator, and persists the resulting plan
// in a single transaction.
type SeatingService struct {
	guestRepo postgres.GuestRepository
	tableRepo postgres.TableRepository
	log       *log.Logger
}

// NewSeatingService creates a new seating service instance
func NewSeatingService(guestRepo postgres.GuestRepository, tableRepo postgres.TableRepository) *SeatingService {
	return &SeatingService{
		guestRepo: guestRepo,
		tableRepo: tableRepo,
		log:       logger.Service("seating"),
	}
}

// AutoArrangeRequest parameterizes a single-strategy allocation run
type AutoArrangeRequest struct {
	TableSize          int      `json:"table_size" binding:"required"`
	TableShape         string   `json:"table_shape"`
	SeatingArrangement string   `json:"seating_arrangement"`
	TableWidth         float64  `json:"table_width"`
	TableHeight        float64  `json:"table_height"`
	GroupingStrategy   string   `json:"grouping_strategy"`
	SideFilter         string   `json:"side_filter"`
	GroupFilter        string   `json:"group_filter"`
	IncludeRSVPStatus  []string `json:"include_rsvp_status"`
	ClearExisting      bool     `json:"clear_existing"`
	Labels             string   `json:"labels"`
}

// TableConfigRequest describes one table config of a multi-config run
type TableConfigRequest struct {
	Shape            string   `json:"shape"`
	Capacity         int      `json:"capacity" binding:"required"`
	Count            int      `json:"count" binding:"required"`
	Width            float64  `json:"width"`
	Height           float64  `json:"height"`
	GroupAssignments []string `json:"group_assignments"`
}

// AutoArrangeConfigsRequest parameterizes a multi-config allocation run
type AutoArrangeConfigsRequest struct {
	Configs           []TableConfigRequest `json:"configs" binding:"required"`
	MixRemaining      bool                 `json:"mix_remaining"`
	SideFilter        string               `json:"side_filter"`
	GroupFilter       string               `json:"group_filter"`
	IncludeRSVPStatus []string             `json:"include_rsvp_status"`
	ClearExisting     bool                 `json:"clear_existing"`
	Labels            string               `json:"labels"`
}

// AutoArrange runs a single-strategy allocation for an event and persists the
// outcome. remaining_unseated > 0 in the result is a notice, not an error.
func (s *SeatingService) AutoArrange(ctx context.Context, eventID string, req AutoArrangeRequest) (*seating.Result, error) {
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		return nil, err
	}
	eventUUID, _ := uuid.Parse(eventID)

	pool, err := s.candidatePool(eventID, req.SideFilter, req.GroupFilter, req.IncludeRSVPStatus, req.ClearExisting)
	if err != nil {
		return nil, err
	}

	startNumber, err := s.startNumber(eventID, req.ClearExisting)
	if err != nil {
		return nil, err
	}

	alloc := s.allocator(req.Labels)
	plans, result, err := alloc.Arrange(seating.OrderGuests(pool), seating.ArrangeRequest{
		TableSize:          req.TableSize,
		Shape:              seating.Shape(req.TableShape),
		SeatingArrangement: req.SeatingArrangement,
		Width:              req.TableWidth,
		Height:             req.TableHeight,
		Strategy:           seating.GroupingStrategy(req.GroupingStrategy),
		StartNumber:        startNumber,
	})
	if err != nil {
		return nil, err
	}

	plan := &seating.Plan{NewTables: plans, Result: result}
	if err := s.tableRepo.ApplyPlan(ctx, eventUUID, plan, req.ClearExisting); err != nil {
		return nil, err
	}

	s.log.Info("auto-arrange completed",
		"event_id", eventID,
		"tables_created", result.TablesCreated,
		"guests_seated", result.GuestsSeated,
		"remaining_unseated", result.RemainingUnseated)
	return &result, nil
}

// AutoArrangeConfigs runs a multi-config allocation (group-exclusive phase,
// open tables, optional remainder mixing) and persists the outcome.
func (s *SeatingService) AutoArrangeConfigs(ctx context.Context, eventID string, req AutoArrangeConfigsRequest) (*seating.Result, error) {
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		return nil, err
	}
	eventUUID, _ := uuid.Parse(eventID)

	pool, err := s.candidatePool(eventID, req.SideFilter, req.GroupFilter, req.IncludeRSVPStatus, req.ClearExisting)
	if err != nil {
		return nil, err
	}

	var existing []*seating.ExistingTable
	if !req.ClearExisting {
		existing, err = s.existingTables(eventID)
		if err != nil {
			return nil, err
		}
	}

	startNumber, err := s.startNumber(eventID, req.ClearExisting)
	if err != nil {
		return nil, err
	}

	configs := make([]seating.TableConfig, len(req.Configs))
	for i, c := range req.Configs {
		shape := seating.Shape(c.Shape)
		if shape == "" {
			shape = seating.ShapeCircle
		}
		configs[i] = seating.TableConfig{
			Shape:            shape,
			Capacity:         c.Capacity,
			Count:            c.Count,
			Width:            c.Width,
			Height:           c.Height,
			GroupAssignments: pq.StringArray(c.GroupAssignments),
		}
	}

	alloc := s.allocator(req.Labels)
	plan, err := alloc.ArrangeWithConfigs(seating.OrderGuests(pool), existing, seating.ConfigRequest{
		Configs:      configs,
		MixRemaining: req.MixRemaining,
		StartNumber:  startNumber,
	})
	if err != nil {
		return nil, err
	}

	if err := s.tableRepo.ApplyPlan(ctx, eventUUID, plan, req.ClearExisting); err != nil {
		return nil, err
	}

	s.log.Info("auto-arrange with configs completed",
		"event_id", eventID,
		"tables_created", plan.Result.TablesCreated,
		"guests_seated", plan.Result.GuestsSeated,
		"remaining_unseated", plan.Result.RemainingUnseated,
		"mixed_in", len(plan.MixedIn))
	return &plan.Result, nil
}

// GetTables returns an event's tables with seats and assignments
func (s *SeatingService) GetTables(eventID string) ([]*seating.Table, error) {
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		return nil, err
	}
	return s.tableRepo.GetByEventID(eventID)
}

// RegenerateSeats recomputes a table's seat perimeter from its current shape
// and dimensions, preserving guest-to-seat bindings by seat number.
func (s *SeatingService) RegenerateSeats(tableID string) (*seating.Table, error) {
	if err := validation.ValidateUUID(tableID, "table_id"); err != nil {
		return nil, err
	}

	t, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		return nil, err
	}

	t.Seats = seating.RegenerateSeats(t)

	if err := s.tableRepo.ReplaceSeats(t.ID, t.Seats); err != nil {
		return nil, err
	}

	return t, nil
}

// AssignGuest manually assigns a guest to a table, displacing any prior
// assignment, and optionally binds a specific seat.
func (s *SeatingService) AssignGuest(tableID, guestID string, seatNumber *int) error {
	if err := validation.ValidateUUID(tableID, "table_id"); err != nil {
		return err
	}
	if err := validation.ValidateUUID(guestID, "guest_id"); err != nil {
		return err
	}

	t, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		return err
	}

	g, err := s.guestRepo.GetByID(guestID)
	if err != nil {
		return errors.New("guest not found")
	}
	if g.EventID != t.EventID {
		return errors.New("guest does not belong to the table's event")
	}

	if err := s.tableRepo.AssignGuest(t.EventID, t.ID, g.ID); err != nil {
		return err
	}

	if seatNumber != nil {
		if *seatNumber < 1 || *seatNumber > t.Capacity {
			return fmt.Errorf("seat number %d out of range for capacity %d", *seatNumber, t.Capacity)
		}
		if err := s.tableRepo.AssignSeat(t.ID, *seatNumber, g.ID); err != nil {
			return err
		}
	}

	return nil
}

// candidatePool loads and filters an event's guests. In incremental mode
// (clearExisting=false) guests already holding an assignment are excluded
// before allocation.
func (s *SeatingService) candidatePool(eventID, side, group string, statuses []string, clearExisting bool) ([]*guest.Guest, error) {
	guests, err := s.guestRepo.GetByEventID(eventID)
	if err != nil {
		return nil, err
	}

	include, err := parseStatuses(statuses)
	if err != nil {
		return nil, err
	}

	pool := seating.SelectGuests(guests, seating.Filter{
		Side:            side,
		GroupName:       group,
		IncludeStatuses: include,
	})

	if len(pool) == 0 {
		return nil, seating.ErrNoGuestsMatched
	}

	if clearExisting {
		return pool, nil
	}

	assignments, err := s.tableRepo.GetAssignmentsByEventID(eventID)
	if err != nil {
		return nil, err
	}

	assigned := make(map[uuid.UUID]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.GuestID] = true
	}

	unseated := pool[:0:0]
	for _, g := range pool {
		if !assigned[g.ID] {
			unseated = append(unseated, g)
		}
	}

	if len(unseated) == 0 {
		return nil, ErrAllGuestsSeated
	}
	return unseated, nil
}

// existingTables resolves the event's persisted tables and their occupants
// for the remainder-mixing phase. Occupants whose guest record cannot be
// resolved are counted as unknown and assumed to use one seat.
func (s *SeatingService) existingTables(eventID string) ([]*seating.ExistingTable, error) {
	tables, err := s.tableRepo.GetByEventID(eventID)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}

	guests, err := s.guestRepo.GetByEventID(eventID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*guest.Guest, len(guests))
	for _, g := range guests {
		byID[g.ID] = g
	}

	existing := make([]*seating.ExistingTable, 0, len(tables))
	for _, t := range tables {
		et := &seating.ExistingTable{Table: t}
		for _, a := range t.Assignments {
			if g, ok := byID[a.GuestID]; ok {
				et.Occupants = append(et.Occupants, g)
			} else {
				et.UnknownOccupants++
			}
		}
		existing = append(existing, et)
	}
	return existing, nil
}

// startNumber continues table numbering after the event's surviving tables
func (s *SeatingService) startNumber(eventID string, clearExisting bool) (int, error) {
	if clearExisting {
		return 0, nil
	}
	count, err := s.tableRepo.CountByEventID(eventID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *SeatingService) allocator(labels string) *seating.Allocator {
	alloc := seating.NewAllocator()
	if labels == "hebrew" {
		alloc.Labels = seating.HebrewLabels()
	}
	return alloc
}

func parseStatuses(names []string) ([]guest.RSVPStatus, error) {
	if len(names) == 0 {
		return nil, nil
	}
	statuses := make([]guest.RSVPStatus, 0, len(names))
	for _, name := range names {
		status, ok := guest.RSVPStatusFromString(name)
		if !ok {
			return nil, errors.New("unknown RSVP status: " + name)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
