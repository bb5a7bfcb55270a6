// Package pitch bins pitch coordinates into grid cells and tactical zones.
//
// Coordinates are on a normalized 0..100 scale on both axes. A point (x, y)
// belongs to cell (row, col) with row = floor(y / (100/n)) and
// col = floor(x / (100/n)), clamped to [0, n-1] so that 100 falls in the last
// cell. Points outside [0,100] on either axis belong to no cell.
package pitch

import (
	"math"

	"github.com/pable/go-match-analytics/internal/model"
)

// Size is the side length of the normalized pitch.
const Size = 100.0

// Default grid resolutions for heatmaps.
const (
	FullFieldGrid = 10
	PlayerGrid    = 8
	CompactGrid   = 6
)

// Cell returns the grid cell that contains (x, y) on an n×n grid.
// ok is false for points off the pitch or for n < 1.
func Cell(x, y float64, n int) (row, col int, ok bool) {
	if n < 1 || !onPitch(x) || !onPitch(y) {
		return 0, 0, false
	}
	width := Size / float64(n)
	return clampIndex(y/width, n), clampIndex(x/width, n), true
}

func onPitch(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= Size
}

func clampIndex(v float64, n int) int {
	i := int(math.Floor(v))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// GridCell is one heatmap cell: its centre and the number of events in it.
type GridCell struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value int     `json:"value"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
}

// BinGrid counts events per cell of an n×n grid. The result always has n*n
// entries in row-major order. Events without coordinates, or off the pitch,
// are not counted. n < 1 is treated as 1.
func BinGrid(events []model.Event, n int) []GridCell {
	if n < 1 {
		n = 1
	}
	width := Size / float64(n)
	grid := make([]GridCell, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			grid[row*n+col] = GridCell{
				X:   float64(col)*width + width/2,
				Y:   float64(row)*width + width/2,
				Row: row,
				Col: col,
			}
		}
	}
	for _, e := range events {
		if !e.HasCoords {
			continue
		}
		row, col, ok := Cell(e.X, e.Y, n)
		if !ok {
			continue
		}
		grid[row*n+col].Value++
	}
	return grid
}

// MaxValue returns the largest cell count, 0 for an empty grid.
func MaxValue(grid []GridCell) int {
	maxV := 0
	for _, c := range grid {
		if c.Value > maxV {
			maxV = c.Value
		}
	}
	return maxV
}
