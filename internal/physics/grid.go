package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SpatialGrid is a uniform grid for broad-phase collision detection over a
// bounded world. Items are inserted by bounding box into every cell the box
// covers, so objects of any size are found by a query over their own box.
//
// Boxes reaching past the world edge are clamped to the border cells.
type SpatialGrid struct {
	origin      r2.Vec
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell

	// seen[i] == stamp marks item i as already reported by the running query.
	seen  []uint32
	stamp uint32
}

// gridCell stores the indices of objects overlapping a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering world.
// cellSize should be close to the typical object size: much smaller cells
// multiply insertions, much larger ones degrade to all-pairs tests.
func NewSpatialGrid(world r2.Box, cellSize float64) *SpatialGrid {
	w := world.Max.X - world.Min.X
	h := world.Max.Y - world.Min.Y
	cols := int(math.Ceil(w / cellSize))
	rows := int(math.Ceil(h / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		origin:      world.Min,
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds the item identified by index to every cell box overlaps.
// Indices must be non-negative; they are usually positions in a slice the
// caller rebuilds each frame.
func (g *SpatialGrid) Insert(box r2.Box, index int) {
	c0, r0 := g.posToCell(box.Min)
	c1, r1 := g.posToCell(box.Max)

	for r := r0; r <= r1; r++ {
		rowOffset := r * g.cols
		for c := c0; c <= c1; c++ {
			cell := &g.cells[rowOffset+c]
			cell.items = append(cell.items, index)
		}
	}

	if index >= len(g.seen) {
		g.seen = append(g.seen, make([]uint32, index+1-len(g.seen))...)
	}
}

// Query calls fn once for each item sharing at least one cell with box.
// Items are candidates only; their boxes may still be disjoint from box.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) Query(box r2.Box, fn func(index int) bool) {
	g.stamp++
	if g.stamp == 0 {
		// Wrapped around: old marks could collide with the new stamp.
		clear(g.seen)
		g.stamp = 1
	}

	c0, r0 := g.posToCell(box.Min)
	c1, r1 := g.posToCell(box.Max)

	for r := r0; r <= r1; r++ {
		rowOffset := r * g.cols
		for c := c0; c <= c1; c++ {
			for _, item := range g.cells[rowOffset+c].items {
				if g.seen[item] == g.stamp {
					continue
				}
				g.seen[item] = g.stamp
				if fn(item) {
					return
				}
			}
		}
	}
}

// Cells returns the grid dimensions in cells.
func (g *SpatialGrid) Cells() (cols, rows int) {
	return g.cols, g.rows
}

// posToCell converts world coordinates to grid cell coordinates.
// Clamps to valid range to handle positions outside the world.
func (g *SpatialGrid) posToCell(p r2.Vec) (col, row int) {
	col = int(math.Floor((p.X - g.origin.X) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((p.Y - g.origin.Y) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
