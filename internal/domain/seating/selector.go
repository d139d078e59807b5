package seating

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
)

// Filter narrows an event's guest list before allocation. Side and GroupName
// are case-sensitive exact matches on the raw fields; an empty value means no
// restriction. A nil IncludeStatuses admits everything except declined guests.
type Filter struct {
	Side            string
	GroupName       string
	IncludeStatuses []guest.RSVPStatus
}

// Matches reports whether g passes the filter
func (f Filter) Matches(g *guest.Guest) bool {
	if f.Side != "" && g.Side != f.Side {
		return false
	}
	if f.GroupName != "" && g.GroupName != f.GroupName {
		return false
	}

	status := g.Status()
	if f.IncludeStatuses == nil {
		return status != guest.RSVPDeclined
	}
	for _, s := range f.IncludeStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// SelectGuests filters the event's guest list and returns it in seating
// priority order. The ordering is the contract every downstream stage relies
// on: when a capacity constraint forces a group to split across tables, the
// guests most likely to attend are filled in first.
func SelectGuests(guests []*guest.Guest, f Filter) []*guest.Guest {
	selected := make([]*guest.Guest, 0, len(guests))
	for _, g := range guests {
		if f.Matches(g) {
			selected = append(selected, g)
		}
	}
	return OrderGuests(selected)
}

// OrderGuests returns a new slice sorted by the 4-key seating order:
// group name, side, RSVP priority (accepted before pending before declined),
// then name. Group and side compare case-insensitively and guests missing a
// value sort after every named one.
func OrderGuests(guests []*guest.Guest) []*guest.Guest {
	ordered := make([]*guest.Guest, len(guests))
	copy(ordered, guests)

	coll := collate.New(language.Und)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		if c := compareCategory(a.GroupName, b.GroupName); c != 0 {
			return c < 0
		}
		if c := compareCategory(a.Side, b.Side); c != 0 {
			return c < 0
		}
		if pa, pb := a.Status().Priority(), b.Status().Priority(); pa != pb {
			return pa < pb
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})

	return ordered
}

// compareCategory orders free-form categorical fields case-insensitively,
// with the missing value acting as a sentinel that sorts after all named
// categories.
func compareCategory(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
