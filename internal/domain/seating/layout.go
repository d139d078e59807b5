package seating

import (
	"math"
)

// Canvas bounds the floor-plan area tables are placed on. Positions are a
// rendering default only; they never affect who sits where.
type Canvas struct {
	Width      float64
	Height     float64
	MarginX    float64
	MarginY    float64
	MinSpacing float64
}

// DefaultCanvas matches the floor-plan editor's initial viewport
func DefaultCanvas() Canvas {
	return Canvas{
		Width:      1400,
		Height:     900,
		MarginX:    60,
		MarginY:    60,
		MinSpacing: 40,
	}
}

// PlaceOnGrid assigns a default canvas position to each table using a
// square-ish grid capped by what fits horizontally: columns are the smaller
// of floor(availableWidth / (maxWidth+minSpacing)) and ceil(sqrt(n)). The
// grid is centered within the available width; the vertical pitch is the
// tallest table plus the minimum gap.
func (c Canvas) PlaceOnGrid(tables []*Table, maxWidth, maxHeight float64) {
	n := len(tables)
	if n == 0 {
		return
	}
	if maxWidth <= 0 {
		maxWidth = 120
	}
	if maxHeight <= 0 {
		maxHeight = 120
	}

	availableWidth := c.Width - 2*c.MarginX

	cols := int(math.Floor(availableWidth / (maxWidth + c.MinSpacing)))
	if square := int(math.Ceil(math.Sqrt(float64(n)))); square < cols {
		cols = square
	}
	if cols < 1 {
		cols = 1
	}

	gridWidth := float64(cols)*maxWidth + float64(cols-1)*c.MinSpacing
	startX := c.MarginX + (availableWidth-gridWidth)/2
	pitchY := maxHeight + c.MinSpacing

	for i, t := range tables {
		col := i % cols
		row := i / cols
		t.PositionX = startX + float64(col)*(maxWidth+c.MinSpacing) + maxWidth/2
		t.PositionY = c.MarginY + float64(row)*pitchY + maxHeight/2
	}
}
