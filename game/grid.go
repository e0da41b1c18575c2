package game

import "fmt"

// Grid is the static part of a scenario: map dimensions, water mask and
// precomputed hex adjacency. It never changes after construction, so clones
// of a scenario share the same Grid.
//
// Tiles live in a flat arena indexed row*Cols+col. The hexes use offset
// coordinates with odd columns shifted down, so the six neighbors of a tile
// depend on column parity.
type Grid struct {
	Rows, Cols int
	Water      []bool
	neighbors  [][6]int
}

// NoTile marks an off-map neighbor slot.
const NoTile = -1

// Offsets of the six neighbors as (row, col) deltas, clockwise from north.
var (
	evenColOffsets = [6][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 0}, {0, -1}, {-1, -1}}
	oddColOffsets  = [6][2]int{{-1, 0}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}}
)

// NewGrid builds a rows x cols grid with every tile marked as water.
// Callers carve land by clearing entries of Water before play starts.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		Rows:      rows,
		Cols:      cols,
		Water:     make([]bool, rows*cols),
		neighbors: make([][6]int, rows*cols),
	}
	for i := range g.Water {
		g.Water[i] = true
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			offsets := evenColOffsets
			if c%2 == 1 {
				offsets = oddColOffsets
			}
			t := r*cols + c
			for d, off := range offsets {
				nr, nc := r+off[0], c+off[1]
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					g.neighbors[t][d] = NoTile
				} else {
					g.neighbors[t][d] = nr*cols + nc
				}
			}
		}
	}
	return g
}

// Size returns the number of tiles in the arena, water included.
func (g *Grid) Size() int {
	return g.Rows * g.Cols
}

// Index converts row/column coordinates to a tile index.
func (g *Grid) Index(row, col int) (int, error) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return NoTile, fmt.Errorf("%w: (%d, %d) outside %dx%d map", ErrInvalidCoordinate, row, col, g.Rows, g.Cols)
	}
	return row*g.Cols + col, nil
}

// RowCol converts a tile index back to row/column coordinates.
func (g *Grid) RowCol(tile int) (int, int) {
	return tile / g.Cols, tile % g.Cols
}

// Neighbors returns the six neighbor indexes of a tile, NoTile where the
// map edge cuts a direction off. The array is shared; do not mutate it.
func (g *Grid) Neighbors(tile int) [6]int {
	return g.neighbors[tile]
}

// IsLand reports whether a tile index is on the map and not water.
func (g *Grid) IsLand(tile int) bool {
	return tile >= 0 && tile < len(g.Water) && !g.Water[tile]
}
