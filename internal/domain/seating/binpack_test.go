package seating

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
)

func TestBucketGuests_GroupOnly(t *testing.T) {
	ordered := OrderGuests([]*guest.Guest{
		testGuest("Avi", "family", "bride", 1),
		testGuest("Ben", "family", "groom", 1),
		testGuest("Gil", "friends", "bride", 1),
	})

	buckets := BucketGuests(ordered, GroupOnly)

	require.Len(t, buckets, 2)
	assert.Equal(t, BucketKey{Group: "family"}, buckets[0].Key)
	assert.Len(t, buckets[0].Guests, 2)
	assert.Equal(t, BucketKey{Group: "friends"}, buckets[1].Key)
}

func TestBucketGuests_SideThenGroup(t *testing.T) {
	ordered := OrderGuests([]*guest.Guest{
		testGuest("Avi", "family", "bride", 1),
		testGuest("Ben", "family", "groom", 1),
		testGuest("Gil", "friends", "bride", 1),
	})

	buckets := BucketGuests(ordered, SideThenGroup)

	require.Len(t, buckets, 3)
	assert.Equal(t, BucketKey{Group: "family", Side: "bride"}, buckets[0].Key)
	assert.Equal(t, BucketKey{Group: "family", Side: "groom"}, buckets[1].Key)
	assert.Equal(t, BucketKey{Group: "friends", Side: "bride"}, buckets[2].Key)
}

func TestPackBucket_SimpleGroupSplit(t *testing.T) {
	// 7 guests, each demand 1, table size 4: one full table and one with 3.
	var guests []*guest.Guest
	for i := 0; i < 7; i++ {
		guests = append(guests, testGuest(fmt.Sprintf("Guest %d", i+1), "family", "bride", 1))
	}

	bins, unplaced := PackBucket(guests, PackPolicy{TableSize: 4, OverflowAllowance: true})

	require.Len(t, bins, 2)
	assert.Len(t, bins[0], 4)
	assert.Len(t, bins[1], 3)
	assert.Empty(t, unplaced)
}

func TestPackBucket_LoneLargePartyOverflows(t *testing.T) {
	big := testGuest("Big Party", "friends", "bride", 6)

	bins, unplaced := PackBucket([]*guest.Guest{big}, PackPolicy{TableSize: 4, OverflowAllowance: true})

	require.Len(t, bins, 1)
	assert.Equal(t, []*guest.Guest{big}, bins[0], "an oversized party still gets its own table")
	assert.Empty(t, unplaced)
}

func TestPackBucket_OverflowDisabledLeavesPartyUnplaced(t *testing.T) {
	big := testGuest("Big Party", "friends", "bride", 6)
	small := testGuest("Small", "friends", "bride", 2)

	bins, unplaced := PackBucket([]*guest.Guest{big, small}, PackPolicy{TableSize: 4, OverflowAllowance: false})

	require.Len(t, bins, 1)
	assert.Equal(t, []*guest.Guest{small}, bins[0])
	assert.Equal(t, []*guest.Guest{big}, unplaced)
}

func TestPackBucket_CapacityProperty(t *testing.T) {
	// Mixed party sizes: every bin respects the table size unless it holds
	// exactly one oversized party.
	guests := []*guest.Guest{
		testGuest("A", "family", "bride", 3),
		testGuest("B", "family", "bride", 2),
		testGuest("C", "family", "bride", 2),
		testGuest("D", "family", "bride", 7),
		testGuest("E", "family", "bride", 1),
		testGuest("F", "family", "bride", 4),
	}

	const tableSize = 5
	bins, unplaced := PackBucket(guests, PackPolicy{TableSize: tableSize, OverflowAllowance: true})

	assert.Empty(t, unplaced)

	total := 0
	for _, bin := range bins {
		demand := 0
		for _, g := range bin {
			demand += g.SeatDemand()
		}
		total += len(bin)
		if demand > tableSize {
			assert.Len(t, bin, 1, "only a lone oversized party may exceed the table size")
		}
	}
	assert.Equal(t, len(guests), total, "no guest is lost or duplicated")
}

func TestPackBucket_RespectsOrder(t *testing.T) {
	guests := []*guest.Guest{
		testGuest("First", "family", "bride", 2),
		testGuest("Second", "family", "bride", 2),
		testGuest("Third", "family", "bride", 2),
	}

	bins, _ := PackBucket(guests, PackPolicy{TableSize: 4, OverflowAllowance: true})

	require.Len(t, bins, 2)
	assert.Equal(t, []string{"First", "Second"}, names(bins[0]))
	assert.Equal(t, []string{"Third"}, names(bins[1]))
}
