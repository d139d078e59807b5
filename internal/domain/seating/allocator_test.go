package seating

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
)

func familyOf(n int, group string) []*guest.Guest {
	guests := make([]*guest.Guest, 0, n)
	for i := 0; i < n; i++ {
		guests = append(guests, testGuest(fmt.Sprintf("%s %d", group, i+1), group, "bride", 1))
	}
	return guests
}

func TestArrange_SimpleGroupSplit(t *testing.T) {
	a := NewAllocator()
	guests := OrderGuests(familyOf(7, "family"))

	plans, result, err := a.Arrange(guests, ArrangeRequest{
		TableSize: 4,
		Shape:     ShapeCircle,
		Strategy:  GroupOnly,
	})

	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Len(t, plans[0].Guests, 4)
	assert.Len(t, plans[1].Guests, 3)
	assert.Equal(t, Result{TablesCreated: 2, GuestsSeated: 7, RemainingUnseated: 0}, result)
}

func TestArrange_EmptyGuestListFails(t *testing.T) {
	a := NewAllocator()

	_, _, err := a.Arrange(nil, ArrangeRequest{TableSize: 4})

	assert.ErrorIs(t, err, ErrNoGuestsMatched)
}

func TestArrange_TableNumberingAndNaming(t *testing.T) {
	a := NewAllocator()
	guests := OrderGuests(familyOf(3, "family"))

	plans, _, err := a.Arrange(guests, ArrangeRequest{
		TableSize:   4,
		Strategy:    GroupOnly,
		StartNumber: 5, // event already has 5 tables
	})

	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 6, plans[0].Table.Number)
	assert.Equal(t, "Table 6 - family", plans[0].Table.Name)
}

func TestArrange_LabelsTranslateNames(t *testing.T) {
	a := NewAllocator()
	a.Labels = HebrewLabels()
	guests := OrderGuests(familyOf(2, "family"))

	plans, _, err := a.Arrange(guests, ArrangeRequest{TableSize: 4, Strategy: GroupOnly})

	require.NoError(t, err)
	assert.Equal(t, "Table 1 - משפחה", plans[0].Table.Name)
}

func TestArrange_SideThenGroupKeepsSidesApart(t *testing.T) {
	a := NewAllocator()
	guests := OrderGuests([]*guest.Guest{
		testGuest("Avi", "family", "bride", 1),
		testGuest("Ben", "family", "groom", 1),
	})

	plans, _, err := a.Arrange(guests, ArrangeRequest{TableSize: 4, Strategy: SideThenGroup})

	require.NoError(t, err)
	assert.Len(t, plans, 2, "different sides of the same group get separate tables")
}

func TestArrange_TablesCarrySeats(t *testing.T) {
	a := NewAllocator()
	guests := OrderGuests(familyOf(3, "family"))

	plans, _, err := a.Arrange(guests, ArrangeRequest{
		TableSize: 6,
		Shape:     ShapeRectangle,
		Width:     200,
		Height:    100,
	})

	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Len(t, plans[0].Table.Seats, 6, "seat count follows capacity, not occupancy")
	for _, s := range plans[0].Table.Seats {
		assert.Equal(t, plans[0].Table.ID, s.TableID)
	}
}

func TestArrangeWithConfigs_GroupExclusivity(t *testing.T) {
	a := NewAllocator()
	candidates := OrderGuests(append(familyOf(5, "family"), familyOf(5, "friends")...))

	plan, err := a.ArrangeWithConfigs(candidates, nil, ConfigRequest{
		Configs: []TableConfig{{
			Shape:            ShapeCircle,
			Capacity:         4,
			Count:            4,
			Width:            120,
			Height:           120,
			GroupAssignments: []string{"family", "friends"},
		}},
	})

	require.NoError(t, err)
	for _, tp := range plan.NewTables {
		groups := map[string]bool{}
		for _, g := range tp.Guests {
			groups[g.GroupName] = true
		}
		assert.LessOrEqual(t, len(groups), 1, "group-exclusive tables never mix groups")
	}
	assert.Equal(t, 10, plan.Result.GuestsSeated+plan.Result.RemainingUnseated)
}

func TestArrangeWithConfigs_FairShareDistribution(t *testing.T) {
	a := NewAllocator()
	// family needs 2 tables of 4, friends needs 1; budget is 3.
	candidates := OrderGuests(append(familyOf(8, "family"), familyOf(3, "friends")...))

	plan, err := a.ArrangeWithConfigs(candidates, nil, ConfigRequest{
		Configs: []TableConfig{{
			Shape:            ShapeCircle,
			Capacity:         4,
			Count:            3,
			Width:            120,
			Height:           120,
			GroupAssignments: []string{"family", "friends"},
		}},
	})

	require.NoError(t, err)
	require.Len(t, plan.NewTables, 3)

	perGroup := map[string]int{}
	for _, tp := range plan.NewTables {
		for _, g := range tp.Guests {
			perGroup[g.GroupName]++
		}
	}
	assert.Equal(t, 8, perGroup["family"])
	assert.Equal(t, 3, perGroup["friends"])
	assert.Equal(t, 0, plan.Result.RemainingUnseated)
}

func TestArrangeWithConfigs_BudgetExhaustionLeavesRemainder(t *testing.T) {
	a := NewAllocator()
	candidates := OrderGuests(familyOf(9, "family"))

	plan, err := a.ArrangeWithConfigs(candidates, nil, ConfigRequest{
		Configs: []TableConfig{{
			Shape:            ShapeCircle,
			Capacity:         4,
			Count:            2,
			Width:            120,
			Height:           120,
			GroupAssignments: []string{"family"},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, 8, plan.Result.GuestsSeated)
	assert.Equal(t, 1, plan.Result.RemainingUnseated, "unseatable guests are a notice, not an error")
}

func TestArrangeWithConfigs_OpenConfigsStayEmpty(t *testing.T) {
	a := NewAllocator()
	candidates := OrderGuests(familyOf(4, "family"))

	plan, err := a.ArrangeWithConfigs(candidates, nil, ConfigRequest{
		Configs: []TableConfig{
			{Shape: ShapeCircle, Capacity: 4, Count: 1, Width: 120, Height: 120, GroupAssignments: []string{"family"}},
			{Shape: ShapeSquare, Capacity: 8, Count: 2, Width: 150, Height: 150},
		},
	})

	require.NoError(t, err)
	require.Len(t, plan.NewTables, 3)

	empty := 0
	for _, tp := range plan.NewTables {
		if len(tp.Guests) == 0 {
			empty++
		}
	}
	assert.Equal(t, 2, empty, "open configs are reserved blank tables")
}

func TestArrangeWithConfigs_MixRemainingFillsFreeSeats(t *testing.T) {
	a := NewAllocator()
	candidates := OrderGuests(append(familyOf(5, "family"), familyOf(2, "friends")...))

	plan, err := a.ArrangeWithConfigs(candidates, nil, ConfigRequest{
		MixRemaining: true,
		Configs: []TableConfig{
			// One table for family only; friends have nowhere to go in phase 1.
			{Shape: ShapeCircle, Capacity: 8, Count: 1, Width: 120, Height: 120, GroupAssignments: []string{"family"}},
			{Shape: ShapeCircle, Capacity: 4, Count: 1, Width: 120, Height: 120},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, plan.Result.RemainingUnseated)
	assert.Equal(t, 7, plan.Result.GuestsSeated)
}

func TestArrangeWithConfigs_MixIntoExistingTables(t *testing.T) {
	a := NewAllocator()
	candidates := OrderGuests(familyOf(2, "friends"))

	existingTable := &Table{Capacity: 6, Shape: ShapeCircle, Number: 1, Width: 120, Height: 120}
	existing := []*ExistingTable{{
		Table:            existingTable,
		Occupants:        familyOf(3, "family"),
		UnknownOccupants: 1, // assignment row whose guest record is gone; counts as one seat
	}}

	plan, err := a.ArrangeWithConfigs(candidates, existing, ConfigRequest{
		MixRemaining: true,
		Configs: []TableConfig{
			{Shape: ShapeCircle, Capacity: 2, Count: 1, Width: 120, Height: 120},
		},
	})

	require.NoError(t, err)
	// The open table takes priority (new tables are filled first); capacity 2
	// holds both friends.
	assert.Equal(t, 2, plan.Result.GuestsSeated)
	assert.Equal(t, 0, plan.Result.RemainingUnseated)
}

func TestArrangeWithConfigs_ExistingCapacityRespected(t *testing.T) {
	a := NewAllocator()
	candidates := OrderGuests(familyOf(3, "friends"))

	// 6-seat table already holding 4 known + 1 unknown occupant: one free seat.
	existingTable := &Table{Capacity: 6, Shape: ShapeCircle, Number: 1, Width: 120, Height: 120}
	existing := []*ExistingTable{{
		Table:            existingTable,
		Occupants:        familyOf(4, "family"),
		UnknownOccupants: 1,
	}}

	plan, err := a.ArrangeWithConfigs(candidates, existing, ConfigRequest{
		MixRemaining: true,
		Configs: []TableConfig{
			// Decoy group config that matches nobody, so all three friends
			// depend on the mixing phase.
			{Shape: ShapeCircle, Capacity: 4, Count: 1, Width: 120, Height: 120, GroupAssignments: []string{"family"}},
		},
	})

	require.NoError(t, err)
	require.Len(t, plan.MixedIn, 1, "only one seat is free on the existing table")
	assert.Equal(t, existingTable, plan.MixedIn[0].Table)
	assert.Equal(t, 1, plan.Result.GuestsSeated)
	assert.Equal(t, 2, plan.Result.RemainingUnseated)
}

func TestArrangeWithConfigs_EmptyCandidatesFails(t *testing.T) {
	a := NewAllocator()

	_, err := a.ArrangeWithConfigs(nil, nil, ConfigRequest{
		Configs: []TableConfig{{Shape: ShapeCircle, Capacity: 4, Count: 1}},
	})

	assert.ErrorIs(t, err, ErrNoGuestsMatched)
}

func TestArrangeWithConfigs_NoConfigsFails(t *testing.T) {
	a := NewAllocator()

	_, err := a.ArrangeWithConfigs(familyOf(2, "family"), nil, ConfigRequest{})

	assert.ErrorIs(t, err, ErrNoTableConfigs)
}

func TestArrangeWithConfigs_Conservation(t *testing.T) {
	a := NewAllocator()
	candidates := OrderGuests(append(append(
		familyOf(6, "family"),
		familyOf(4, "friends")...),
		accepted(testGuest("Couple", "work", "groom", 1), 2)))

	plan, err := a.ArrangeWithConfigs(candidates, nil, ConfigRequest{
		MixRemaining: true,
		Configs: []TableConfig{
			{Shape: ShapeCircle, Capacity: 4, Count: 2, Width: 120, Height: 120, GroupAssignments: []string{"family"}},
			{Shape: ShapeCircle, Capacity: 4, Count: 1, Width: 120, Height: 120},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, len(candidates), plan.Result.GuestsSeated+plan.Result.RemainingUnseated,
		"no guest is lost or duplicated")
}

func TestCanvas_PlaceOnGrid(t *testing.T) {
	canvas := DefaultCanvas()
	tables := make([]*Table, 9)
	for i := range tables {
		tables[i] = &Table{Width: 120, Height: 120}
	}

	canvas.PlaceOnGrid(tables, 120, 120)

	// 9 tables cap at a 3-wide square-ish grid.
	assert.Equal(t, tables[0].PositionY, tables[1].PositionY)
	assert.Equal(t, tables[0].PositionY, tables[2].PositionY)
	assert.Less(t, tables[0].PositionY, tables[3].PositionY)

	// Rows repeat the same X positions.
	assert.Equal(t, tables[0].PositionX, tables[3].PositionX)

	for _, tbl := range tables {
		assert.GreaterOrEqual(t, tbl.PositionX, canvas.MarginX)
		assert.LessOrEqual(t, tbl.PositionX, canvas.Width-canvas.MarginX)
	}
}
