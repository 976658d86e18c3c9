package grid

import (
	"fmt"

	"github.com/notargets/gomhd/types"
)

// NoNeighbor marks an edge of a tile that lies on the global domain boundary
const NoNeighbor = -1

/*
Axis describes one direction of a uniformly spaced tile. Vertex i sits at the
upper side of cell i, so Vertex(0) is the lower edge of the tile and
Vertex(N) its upper edge.
*/
type Axis struct {
	N        int     // Interior cells on this tile
	Offset   int     // Global index of this tile's vertex 0
	NGlobal  int     // Interior cells in the whole domain
	Min, Max float64 // Physical extent of the whole domain
	Delta    float64
}

func NewAxis(n, offset, nGlobal int, min, max float64) Axis {
	return Axis{
		N:       n,
		Offset:  offset,
		NGlobal: nGlobal,
		Min:     min,
		Max:     max,
		Delta:   (max - min) / float64(nGlobal),
	}
}

func (a Axis) Vertex(i int) float64 { return a.Min + float64(a.Offset+i)*a.Delta }

// Width is the extent of cell i
func (a Axis) Width(i int) float64 { return a.Vertex(i) - a.Vertex(i-1) }

type Tile struct {
	Rank      int
	Coords    [2]int // Position in the process grid
	Nx, Ny    int
	X, Y      Axis
	Neighbors [4]int // Rank across each edge, indexed by types.Edge, NoNeighbor on the domain boundary
}

func (t *Tile) IsBoundary(e types.Edge) bool { return t.Neighbors[e] == NoNeighbor }

// AxisFor returns the axis normal to an edge
func (t *Tile) AxisFor(e types.Edge) Axis {
	if e.IsX() {
		return t.X
	}
	return t.Y
}

func (t *Tile) String() string {
	return fmt.Sprintf("tile[%d] at (%d,%d) %dx%d, neighbors %v",
		t.Rank, t.Coords[0], t.Coords[1], t.Nx, t.Ny, t.Neighbors)
}

// NewSingleTile is a whole-domain tile with no neighbors on any side
func NewSingleTile(nx, ny int, xMin, xMax, yMin, yMax float64) (t *Tile) {
	t = &Tile{
		Nx:        nx,
		Ny:        ny,
		X:         NewAxis(nx, 0, nx, xMin, xMax),
		Y:         NewAxis(ny, 0, ny, yMin, yMax),
		Neighbors: [4]int{NoNeighbor, NoNeighbor, NoNeighbor, NoNeighbor},
	}
	return
}
