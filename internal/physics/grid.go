package physics

import "math"

// SpatialGrid is a uniform grid over the course plane (X across, Z along)
// for broad-phase hit tests. Items are inserted by position and index, then
// nearby items can be queried via a 3x3 neighborhood lookup.
//
// The grid covers a window that is re-anchored every frame as the ship
// moves. Positions outside the window clamp into the edge cells, so a query
// never misses a neighbor; it only sees extra candidates there. Y is
// ignored: callers finish with an exact distance test.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding items so that all potential hits are found within the 3x3
// neighborhood.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	originX     float64
	originZ     float64
	cells       []gridCell
}

// gridCell stores the indices of items that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering width units across and depth units
// along the course. cellSize should be >= the maximum hit distance.
func NewSpatialGrid(width, depth, cellSize float64) *SpatialGrid {
	cols := max(int(math.Ceil(width/cellSize)), 1)
	rows := max(int(math.Ceil(depth/cellSize)), 1)

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Reset clears the grid and anchors its window so that (minX, minZ) is the
// corner of cell (0, 0).
func (g *SpatialGrid) Reset(minX, minZ float64) {
	g.originX = minX
	g.originZ = minZ
	g.Clear()
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(p Vec3, index int) {
	col, row := g.posToCell(p.X, p.Z)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around p. If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(p Vec3, fn func(index int) bool) {
	col, row := g.posToCell(p.X, p.Z)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts course coordinates to grid cell coordinates, clamped
// to the window.
func (g *SpatialGrid) posToCell(x, z float64) (col, row int) {
	col = int(math.Floor((x - g.originX) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((z - g.originZ) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
