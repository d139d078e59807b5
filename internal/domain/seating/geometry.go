package seating

import (
	"math"
)

// SeatPosition is one computed seat placement, relative to the table center.
// Y grows downward to match the floor-plan canvas. Angle is the direction the
// seat faces (inward, toward the center), in degrees within [0, 360).
type SeatPosition struct {
	SeatNumber int
	X          float64
	Y          float64
	Angle      float64
}

// SeatPositions deterministically computes capacity seat placements around a
// table's perimeter. Round and oval shapes distribute seats at equal angular
// increments on an ellipse sized to (width, height); rectangular and square
// shapes distribute seats along the four edges proportionally to edge length,
// keeping clear of the corners. The arrangement hint is reserved for future
// layouts; every known value currently spaces seats evenly.
func SeatPositions(capacity int, shape Shape, arrangement string, width, height float64) []SeatPosition {
	if capacity < 1 {
		return nil
	}
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 120
	}

	if shape.Round() {
		return ellipseSeats(capacity, width, height)
	}
	return edgeSeats(capacity, width, height)
}

// ellipseSeats spaces seats 360/capacity degrees apart, starting at the top
// of the table and proceeding clockwise.
func ellipseSeats(capacity int, width, height float64) []SeatPosition {
	seats := make([]SeatPosition, 0, capacity)
	step := 360.0 / float64(capacity)

	for i := 0; i < capacity; i++ {
		theta := (step*float64(i) - 90) * math.Pi / 180
		x := (width / 2) * math.Cos(theta)
		y := (height / 2) * math.Sin(theta)

		seats = append(seats, SeatPosition{
			SeatNumber: i + 1,
			X:          x,
			Y:          y,
			Angle:      facingAngle(x, y),
		})
	}

	return seats
}

// edgeSeats allocates seats to the four edges proportionally to edge length
// (largest remainder keeps the total exact), then spaces each edge's seats at
// interior fractions so corner positions are avoided. Numbering runs
// clockwise: top left-to-right, right top-to-bottom, bottom right-to-left,
// left bottom-to-top.
func edgeSeats(capacity int, width, height float64) []SeatPosition {
	counts := splitByEdge(capacity, width, height)
	seats := make([]SeatPosition, 0, capacity)
	number := 1

	emit := func(x, y float64) {
		seats = append(seats, SeatPosition{
			SeatNumber: number,
			X:          x,
			Y:          y,
			Angle:      facingAngle(x, y),
		})
		number++
	}

	// top: left to right
	for i := 0; i < counts[0]; i++ {
		t := float64(i+1) / float64(counts[0]+1)
		emit(-width/2+t*width, -height/2)
	}
	// right: top to bottom
	for i := 0; i < counts[1]; i++ {
		t := float64(i+1) / float64(counts[1]+1)
		emit(width/2, -height/2+t*height)
	}
	// bottom: right to left
	for i := 0; i < counts[2]; i++ {
		t := float64(i+1) / float64(counts[2]+1)
		emit(width/2-t*width, height/2)
	}
	// left: bottom to top
	for i := 0; i < counts[3]; i++ {
		t := float64(i+1) / float64(counts[3]+1)
		emit(-width/2, height/2-t*height)
	}

	return seats
}

// splitByEdge apportions capacity over [top, right, bottom, left] by edge
// length using the largest-remainder method; ties resolve in edge order so
// the split is deterministic.
func splitByEdge(capacity int, width, height float64) [4]int {
	lengths := [4]float64{width, height, width, height}
	perimeter := 2 * (width + height)

	var counts [4]int
	var fractions [4]float64
	assigned := 0

	for i, l := range lengths {
		exact := float64(capacity) * l / perimeter
		counts[i] = int(math.Floor(exact))
		fractions[i] = exact - math.Floor(exact)
		assigned += counts[i]
	}

	for assigned < capacity {
		best := 0
		for i := 1; i < 4; i++ {
			if fractions[i] > fractions[best] {
				best = i
			}
		}
		counts[best]++
		fractions[best] = -1
		assigned++
	}

	return counts
}

// facingAngle points from the seat toward the table center at the origin
func facingAngle(x, y float64) float64 {
	// Atan2 spans [-180, 180] and a tiny negative would round up to exactly
	// 360 under a plain += 360; Mod keeps the result in [0, 360).
	return math.Mod(math.Atan2(-y, -x)*180/math.Pi+360, 360)
}

// BuildSeats materializes Seat records for a table from its current
// geometry. The returned seats are unoccupied.
func BuildSeats(t *Table) []Seat {
	positions := SeatPositions(t.Capacity, t.Shape, t.SeatingArrangement, t.Width, t.Height)
	seats := make([]Seat, 0, len(positions))
	for _, p := range positions {
		seats = append(seats, Seat{
			TableID:    t.ID,
			SeatNumber: p.SeatNumber,
			RelativeX:  p.X,
			RelativeY:  p.Y,
			Angle:      p.Angle,
		})
	}
	return seats
}

// RegenerateSeats recomputes a table's full seat geometry and carries
// guest-to-seat bindings over by seat number: a guest stays on seat N when
// the new layout still has a seat N. Guests on seats that no longer exist
// become unseated; their table assignment is untouched.
func RegenerateSeats(t *Table) []Seat {
	occupied := make(map[int]*Seat, len(t.Seats))
	for i := range t.Seats {
		if t.Seats[i].GuestID != nil {
			occupied[t.Seats[i].SeatNumber] = &t.Seats[i]
		}
	}

	seats := BuildSeats(t)
	for i := range seats {
		if prev, ok := occupied[seats[i].SeatNumber]; ok {
			seats[i].GuestID = prev.GuestID
		}
	}
	return seats
}
