package seating

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
)

var (
	// ErrNoGuestsMatched means the filters selected an empty candidate pool
	ErrNoGuestsMatched = errors.New("no guests match the seating filters")
	// ErrNoTableConfigs means a multi-config run was requested without configs
	ErrNoTableConfigs = errors.New("at least one table config is required")
)

// Allocator runs the seating allocation pipeline. It is pure: it reads guest
// records and emits table plans, performing no I/O. Persistence of a plan is
// the caller's concern.
type Allocator struct {
	Labels Labels
	// OverflowAllowance is the "never strand a party" rule: a party whose
	// demand alone exceeds a table's capacity still receives that table.
	OverflowAllowance bool
	Canvas            Canvas
}

// NewAllocator returns an allocator with the production defaults
func NewAllocator() *Allocator {
	return &Allocator{
		Labels:            IdentityLabels(),
		OverflowAllowance: true,
		Canvas:            DefaultCanvas(),
	}
}

// TablePlan is one table the allocator decided to create, together with the
// guests assigned to it.
type TablePlan struct {
	Table  *Table
	Guests []*guest.Guest
}

// Placement records a guest added to a pre-existing table during remainder
// mixing.
type Placement struct {
	Table *Table
	Guest *guest.Guest
}

// ExistingTable describes a table already persisted for the event, with its
// current occupants resolved to guest records where possible. Occupants whose
// guest record could not be resolved are counted in UnknownOccupants and
// assumed to use one seat each.
type ExistingTable struct {
	Table            *Table
	Occupants        []*guest.Guest
	UnknownOccupants int
}

// Result summarizes an allocation run. RemainingUnseated > 0 is a notice for
// the user, never an error: guestsSeated + remainingUnseated always equals
// the size of the candidate pool.
type Result struct {
	TablesCreated     int `json:"tables_created"`
	GuestsSeated      int `json:"guests_seated"`
	RemainingUnseated int `json:"remaining_unseated"`
}

// Plan is the full outcome of a multi-config allocation run
type Plan struct {
	NewTables []*TablePlan
	MixedIn   []Placement
	Result    Result
}

// allocationState threads the running table counter and the seated set
// through the pipeline phases, so the allocator holds no mutable state
// between runs.
type allocationState struct {
	tableNumber int
	seated      map[uuid.UUID]bool
}

func newAllocationState(startNumber int) *allocationState {
	return &allocationState{
		tableNumber: startNumber,
		seated:      make(map[uuid.UUID]bool),
	}
}

func (s *allocationState) nextNumber() int {
	s.tableNumber++
	return s.tableNumber
}

// ArrangeRequest parameterizes a single-strategy run: every table shares one
// size and shape, and guests are packed bucket by bucket.
type ArrangeRequest struct {
	TableSize          int
	Shape              Shape
	SeatingArrangement string
	Width              float64
	Height             float64
	Strategy           GroupingStrategy
	// StartNumber continues table numbering after existing tables; zero
	// starts at table 1.
	StartNumber int
}

// Arrange packs an ordered, filtered guest list into uniformly sized tables,
// one bucket (group, or group+side) at a time. Buckets are never mixed within
// a table.
func (a *Allocator) Arrange(guests []*guest.Guest, req ArrangeRequest) ([]*TablePlan, Result, error) {
	if len(guests) == 0 {
		return nil, Result{}, ErrNoGuestsMatched
	}
	if req.TableSize < 1 {
		return nil, Result{}, fmt.Errorf("table size must be at least 1")
	}
	strategy := req.Strategy
	if strategy == "" {
		strategy = GroupOnly
	}
	if !strategy.Valid() {
		return nil, Result{}, fmt.Errorf("unknown grouping strategy: %s", req.Strategy)
	}
	if req.Shape == "" {
		req.Shape = ShapeCircle
	}
	if !req.Shape.Valid() {
		return nil, Result{}, fmt.Errorf("invalid table shape: %s", req.Shape)
	}

	state := newAllocationState(req.StartNumber)
	policy := PackPolicy{TableSize: req.TableSize, OverflowAllowance: a.OverflowAllowance}

	var plans []*TablePlan
	unplacedTotal := 0

	for _, bucket := range BucketGuests(guests, strategy) {
		bins, unplaced := PackBucket(bucket.Guests, policy)
		unplacedTotal += len(unplaced)

		for _, bin := range bins {
			plan := a.newTablePlan(state, req.TableSize, req.Shape, req.SeatingArrangement,
				req.Width, req.Height, a.bucketLabel(bucket.Key, strategy))
			plan.Guests = bin
			for _, g := range bin {
				state.seated[g.ID] = true
			}
			plans = append(plans, plan)
		}
	}

	a.placeNewTables(plans, req.Width, req.Height)

	result := Result{
		TablesCreated:     len(plans),
		GuestsSeated:      len(guests) - unplacedTotal,
		RemainingUnseated: unplacedTotal,
	}
	return plans, result, nil
}

// ConfigRequest parameterizes a multi-config run
type ConfigRequest struct {
	Configs      []TableConfig
	MixRemaining bool
	// StartNumber continues table numbering after existing tables
	StartNumber int
}

// ArrangeWithConfigs allocates tables from a list of table configs in three
// phases: group-exclusive configs first (hard exclusivity, fair-share table
// distribution), then open configs as reserved blank tables, then an optional
// remainder-mixing pass over every table's free capacity. candidates must
// already be filtered and ordered; existing describes tables surviving an
// incremental run (empty for a clearing run).
func (a *Allocator) ArrangeWithConfigs(candidates []*guest.Guest, existing []*ExistingTable, req ConfigRequest) (*Plan, error) {
	if len(candidates) == 0 {
		return nil, ErrNoGuestsMatched
	}
	if len(req.Configs) == 0 {
		return nil, ErrNoTableConfigs
	}
	for i, cfg := range req.Configs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("table config %d: %w", i+1, err)
		}
	}

	state := newAllocationState(req.StartNumber)
	plan := &Plan{}

	// Phase 1: group-exclusive configs
	for _, cfg := range req.Configs {
		if len(cfg.GroupAssignments) == 0 {
			continue
		}
		a.allocateGroupTables(plan, state, candidates, cfg)
	}

	// Phase 2: open configs become reserved blank tables
	for _, cfg := range req.Configs {
		if len(cfg.GroupAssignments) > 0 {
			continue
		}
		for i := 0; i < cfg.Count; i++ {
			plan.NewTables = append(plan.NewTables, a.newTablePlan(state,
				cfg.Capacity, cfg.Shape, "even", cfg.Width, cfg.Height, ""))
		}
	}

	// Phase 3: mix still-unseated guests into any free capacity
	if req.MixRemaining {
		a.mixRemaining(plan, state, candidates, existing)
	}

	maxW, maxH := maxConfigSize(req.Configs)
	a.placeNewTables(plan.NewTables, maxW, maxH)

	seated := 0
	for _, g := range candidates {
		if state.seated[g.ID] {
			seated++
		}
	}
	plan.Result = Result{
		TablesCreated:     len(plan.NewTables),
		GuestsSeated:      seated,
		RemainingUnseated: len(candidates) - seated,
	}
	return plan, nil
}

// allocateGroupTables distributes one config's table budget across its named
// groups with a two-pass fair share: every group with at least one unseated
// guest gets one table, then the remaining budget goes round-robin to groups
// whose allocated capacity still falls short of their seat demand. Each
// group's tables are then filled with that group's guests only.
func (a *Allocator) allocateGroupTables(plan *Plan, state *allocationState, candidates []*guest.Guest, cfg TableConfig) {
	groups := make([]string, 0, len(cfg.GroupAssignments))
	guestsByGroup := make(map[string][]*guest.Guest)
	seatsNeeded := make(map[string]int)

	for _, name := range cfg.GroupAssignments {
		if _, dup := guestsByGroup[name]; dup {
			continue
		}
		var members []*guest.Guest
		need := 0
		for _, g := range candidates {
			if g.GroupName == name && !state.seated[g.ID] {
				members = append(members, g)
				need += g.SeatDemand()
			}
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, name)
		guestsByGroup[name] = members
		seatsNeeded[name] = need
	}

	budget := cfg.Count
	allocated := make(map[string]int)

	// Pass A: one table per group while the budget lasts
	for _, name := range groups {
		if budget == 0 {
			break
		}
		allocated[name] = 1
		budget--
	}

	// Pass B: round-robin to groups still short of their seat demand
	for budget > 0 {
		awarded := false
		for _, name := range groups {
			if budget == 0 {
				break
			}
			if allocated[name]*cfg.Capacity < seatsNeeded[name] {
				allocated[name]++
				budget--
				awarded = true
			}
		}
		if !awarded {
			break
		}
	}

	policy := PackPolicy{TableSize: cfg.Capacity, OverflowAllowance: a.OverflowAllowance}

	for _, name := range groups {
		tables := make([]*TablePlan, 0, allocated[name])
		for i := 0; i < allocated[name]; i++ {
			tables = append(tables, a.newTablePlan(state, cfg.Capacity, cfg.Shape,
				"even", cfg.Width, cfg.Height, a.Labels.Group(name)))
		}

		bins, _ := PackBucket(guestsByGroup[name], policy)
		for i, bin := range bins {
			if i >= len(tables) {
				// Budget ran out; the rest of the group stays unseated
				// for the mixing phase or the remainder report.
				break
			}
			tables[i].Guests = bin
			for _, g := range bin {
				state.seated[g.ID] = true
			}
		}

		plan.NewTables = append(plan.NewTables, tables...)
	}
}

// mixRemaining walks every table of the event, newly created ones first, and
// fills free capacity from the pool of still-unseated guests in their global
// order. Each table is filled with the same bin-fill rule as the packer: the
// walk over a table stops at the first guest who no longer fits, which keeps
// the priority order contiguous across tables.
func (a *Allocator) mixRemaining(plan *Plan, state *allocationState, candidates []*guest.Guest, existing []*ExistingTable) {
	pool := make([]*guest.Guest, 0)
	for _, g := range candidates {
		if !state.seated[g.ID] {
			pool = append(pool, g)
		}
	}
	if len(pool) == 0 {
		return
	}

	type target struct {
		table *Table
		used  int
		isNew bool
		plan  *TablePlan
	}

	targets := make([]*target, 0, len(plan.NewTables)+len(existing))
	for _, tp := range plan.NewTables {
		used := 0
		for _, g := range tp.Guests {
			used += g.SeatDemand()
		}
		targets = append(targets, &target{table: tp.Table, used: used, isNew: true, plan: tp})
	}
	for _, et := range existing {
		used := et.UnknownOccupants
		for _, g := range et.Occupants {
			used += g.SeatDemand()
		}
		targets = append(targets, &target{table: et.Table, used: used})
	}

	next := 0
	for _, tgt := range targets {
		for next < len(pool) {
			g := pool[next]
			demand := g.SeatDemand()

			fits := tgt.used+demand <= tgt.table.Capacity
			if !fits && tgt.used == 0 && a.OverflowAllowance {
				fits = true
			}
			if !fits {
				break
			}

			if tgt.isNew {
				tgt.plan.Guests = append(tgt.plan.Guests, g)
			} else {
				plan.MixedIn = append(plan.MixedIn, Placement{Table: tgt.table, Guest: g})
			}
			state.seated[g.ID] = true
			tgt.used += demand
			next++
		}
		if next == len(pool) {
			break
		}
	}
}

// newTablePlan creates an empty table plan with freshly computed seats and
// the next running number. The label, when present, is embedded in the
// human-readable name; it has no effect on allocation.
func (a *Allocator) newTablePlan(state *allocationState, capacity int, shape Shape, arrangement string, width, height float64, label string) *TablePlan {
	if arrangement == "" {
		arrangement = "even"
	}
	number := state.nextNumber()

	name := fmt.Sprintf("Table %d", number)
	if label != "" {
		name = fmt.Sprintf("Table %d - %s", number, label)
	}

	t := &Table{
		ID:                 uuid.New(),
		Name:               name,
		Number:             number,
		Capacity:           capacity,
		Shape:              shape,
		SeatingArrangement: arrangement,
		Width:              width,
		Height:             height,
	}
	t.Seats = BuildSeats(t)

	return &TablePlan{Table: t}
}

// bucketLabel renders the human-readable bucket label for a table name
func (a *Allocator) bucketLabel(key BucketKey, strategy GroupingStrategy) string {
	group := key.Group
	if group == "" {
		group = "other"
	}
	label := a.Labels.Group(group)

	if strategy == SideThenGroup {
		side := key.Side
		if side == "" {
			side = "both"
		}
		label = fmt.Sprintf("%s (%s)", label, a.Labels.Side(side))
	}
	return label
}

// placeNewTables assigns default canvas positions to the run's new tables
func (a *Allocator) placeNewTables(plans []*TablePlan, maxW, maxH float64) {
	if len(plans) == 0 {
		return
	}
	tables := make([]*Table, len(plans))
	for i, p := range plans {
		tables[i] = p.Table
	}
	a.Canvas.PlaceOnGrid(tables, maxW, maxH)
}

// maxConfigSize returns the largest configured width and height, used to set
// the grid pitch.
func maxConfigSize(configs []TableConfig) (float64, float64) {
	var w, h float64
	for _, cfg := range configs {
		if cfg.Width > w {
			w = cfg.Width
		}
		if cfg.Height > h {
			h = cfg.Height
		}
	}
	return w, h
}
