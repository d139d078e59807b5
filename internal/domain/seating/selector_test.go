package seating

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
)

func testGuest(name, group, side string, expected int) *guest.Guest {
	return guest.NewGuest(uuid.New(), name, side, group, expected)
}

func accepted(g *guest.Guest, count int) *guest.Guest {
	g.RSVP = &guest.RSVP{Status: guest.RSVPAccepted, GuestCount: count}
	return g
}

func declined(g *guest.Guest) *guest.Guest {
	g.RSVP = &guest.RSVP{Status: guest.RSVPDeclined}
	return g
}

func names(guests []*guest.Guest) []string {
	out := make([]string, len(guests))
	for i, g := range guests {
		out[i] = g.Name
	}
	return out
}

func TestFilter_DefaultExcludesDeclined(t *testing.T) {
	guests := []*guest.Guest{
		testGuest("Avi", "family", "groom", 1),
		declined(testGuest("Ben", "family", "groom", 1)),
	}

	selected := SelectGuests(guests, Filter{})

	assert.Equal(t, []string{"Avi"}, names(selected))
}

func TestFilter_SideAndGroupAreExactMatches(t *testing.T) {
	guests := []*guest.Guest{
		testGuest("Avi", "family", "groom", 1),
		testGuest("Ben", "family", "bride", 1),
		testGuest("Gil", "friends", "groom", 1),
		testGuest("Dan", "Family", "groom", 1), // different case, no match
	}

	selected := SelectGuests(guests, Filter{Side: "groom", GroupName: "family"})

	assert.Equal(t, []string{"Avi"}, names(selected))
}

func TestFilter_ExplicitStatusSetAdmitsDeclined(t *testing.T) {
	guests := []*guest.Guest{
		testGuest("Avi", "family", "groom", 1),
		declined(testGuest("Ben", "family", "groom", 1)),
	}

	selected := SelectGuests(guests, Filter{
		IncludeStatuses: []guest.RSVPStatus{guest.RSVPDeclined},
	})

	assert.Equal(t, []string{"Ben"}, names(selected))
}

func TestOrderGuests_FourKeyOrder(t *testing.T) {
	guests := []*guest.Guest{
		testGuest("Ziv", "friends", "bride", 1),
		accepted(testGuest("Noa", "family", "groom", 1), 1),
		testGuest("Avi", "family", "groom", 1),       // pending, after accepted Noa
		accepted(testGuest("Ben", "family", "bride", 1), 1),
		testGuest("Gil", "", "groom", 1),             // no group sorts last
	}

	ordered := OrderGuests(guests)

	assert.Equal(t, []string{"Ben", "Noa", "Avi", "Ziv", "Gil"}, names(ordered))
}

func TestOrderGuests_GroupComparisonIgnoresCase(t *testing.T) {
	guests := []*guest.Guest{
		testGuest("Ben", "Family", "bride", 1),
		testGuest("Avi", "family", "bride", 1),
	}

	ordered := OrderGuests(guests)

	// Same group bucket, so the name decides.
	assert.Equal(t, []string{"Avi", "Ben"}, names(ordered))
}

func TestOrderGuests_Deterministic(t *testing.T) {
	guests := []*guest.Guest{
		testGuest("Ziv", "friends", "bride", 1),
		testGuest("Avi", "family", "groom", 2),
		accepted(testGuest("Noa", "family", "groom", 1), 3),
		testGuest("Gil", "", "", 1),
		testGuest("Dan", "work", "both", 1),
	}

	first := OrderGuests(guests)
	second := OrderGuests(guests)

	require.Equal(t, names(first), names(second), "sorting twice must yield identical output")
}

func TestOrderGuests_DoesNotMutateInput(t *testing.T) {
	guests := []*guest.Guest{
		testGuest("Ziv", "friends", "bride", 1),
		testGuest("Avi", "family", "groom", 1),
	}

	OrderGuests(guests)

	assert.Equal(t, "Ziv", guests[0].Name)
}
