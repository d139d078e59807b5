package seating

import (
	"github.com/shaysadin/wedding-seating-api/internal/domain/guest"
)

// GroupingStrategy controls how guests are bucketed before bin-packing
type GroupingStrategy string

const (
	// GroupOnly buckets guests by group name alone
	GroupOnly GroupingStrategy = "group-only"
	// SideThenGroup buckets guests by the group name + side composite key
	SideThenGroup GroupingStrategy = "side-then-group"
)

// Valid reports whether s is a known strategy
func (s GroupingStrategy) Valid() bool {
	return s == GroupOnly || s == SideThenGroup
}

// BucketKey identifies one bucket of guests that must be packed together
type BucketKey struct {
	Group string
	Side  string
}

// Bucket is an ordered run of guests sharing a bucket key
type Bucket struct {
	Key    BucketKey
	Guests []*guest.Guest
}

// BucketGuests partitions an already-ordered guest list into buckets. The
// input must be in seating priority order (OrderGuests): because that order
// sorts by group then side first, buckets are contiguous runs and a single
// pass suffices, preserving the global order within each bucket.
func BucketGuests(ordered []*guest.Guest, strategy GroupingStrategy) []Bucket {
	var buckets []Bucket

	for _, g := range ordered {
		key := BucketKey{Group: g.GroupName}
		if strategy == SideThenGroup {
			key.Side = g.Side
		}

		if n := len(buckets); n > 0 && buckets[n-1].Key == key {
			buckets[n-1].Guests = append(buckets[n-1].Guests, g)
			continue
		}
		buckets = append(buckets, Bucket{Key: key, Guests: []*guest.Guest{g}})
	}

	return buckets
}

// PackPolicy parameterizes the greedy bin-packer. OverflowAllowance is the
// "never strand a party" rule: a guest whose demand alone exceeds TableSize
// still gets a table of their own instead of being dropped.
type PackPolicy struct {
	TableSize         int
	OverflowAllowance bool
}

// PackBucket walks the bucket's guests in order and partitions them into
// table-sized bins. A guest joins the in-progress bin when their demand fits,
// or when the bin is still empty and the overflow allowance applies; otherwise
// the bin is closed and a new one starts with that guest. With the allowance
// disabled, a party too large for any table is returned in unplaced instead
// of being silently dropped. Deterministic for a given input order.
func PackBucket(guests []*guest.Guest, policy PackPolicy) (bins [][]*guest.Guest, unplaced []*guest.Guest) {
	var current []*guest.Guest
	seatsUsed := 0

	for _, g := range guests {
		demand := g.SeatDemand()

		if demand > policy.TableSize && !policy.OverflowAllowance {
			unplaced = append(unplaced, g)
			continue
		}

		fits := seatsUsed+demand <= policy.TableSize
		if !fits && len(current) == 0 {
			// Overflow allowance: a lone oversized party keeps its bin.
			fits = true
		}

		if !fits {
			bins = append(bins, current)
			current = nil
			seatsUsed = 0
		}

		current = append(current, g)
		seatsUsed += demand
	}

	if len(current) > 0 {
		bins = append(bins, current)
	}

	return bins, unplaced
}
