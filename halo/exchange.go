package halo

import (
	"fmt"

	"github.com/notargets/gomhd/grid"
	"github.com/notargets/gomhd/types"
	"github.com/notargets/gomhd/utils"
)

// Exchanger fills a field's ghost cells from the neighboring tiles. It blocks
// until the neighbors' data has arrived and leaves ghost cells on edges
// without a neighbor untouched.
type Exchanger interface {
	Exchange(f *grid.Field)
}

const (
	tagLowX = iota // Fills the receiver's ghosts below index 1
	tagHighX
	tagLowY
	tagHighY
)

// Envelopes a rank may have in flight before a sender blocks. Neighbors are
// never more than one exchange apart, which needs at most 8 per rank.
const mailDepth = 64

/*
ProcessGrid is an in-process stand-in for a 2D grid of processes, one
goroutine per tile. Each axis is split with a PartitionMap; an axis marked
periodic wraps its neighbors around, otherwise the outer tiles get NoNeighbor.
*/
type ProcessGrid struct {
	PX, PY             int
	NxGlobal, NyGlobal int
	Periodic           [2]bool
	XPart, YPart       *utils.PartitionMap
	Tiles              []*grid.Tile
	mb                 *utils.MailBox[[]float64]
}

func NewProcessGrid(nxGlobal, nyGlobal, px, py int, periodicX, periodicY bool,
	xMin, xMax, yMin, yMax float64) (pg *ProcessGrid, err error) {
	switch {
	case px < 1 || py < 1:
		err = fmt.Errorf("process grid must have at least one tile per axis, have %dx%d", px, py)
		return
	case xMax <= xMin || yMax <= yMin:
		err = fmt.Errorf("domain extents are empty: x [%g, %g], y [%g, %g]", xMin, xMax, yMin, yMax)
		return
	}
	pg = &ProcessGrid{
		PX:       px,
		PY:       py,
		NxGlobal: nxGlobal,
		NyGlobal: nyGlobal,
		Periodic: [2]bool{periodicX, periodicY},
		XPart:    utils.NewPartitionMap(px, nxGlobal),
		YPart:    utils.NewPartitionMap(py, nyGlobal),
		mb:       utils.NewMailBox[[]float64](px*py, mailDepth),
	}
	if n := pg.XPart.MinBucketDimension(); n < grid.Halo+1 {
		err = fmt.Errorf("x decomposition of %d cells over %d tiles leaves %d cells, need at least %d",
			nxGlobal, px, n, grid.Halo+1)
		return nil, err
	}
	if n := pg.YPart.MinBucketDimension(); n < grid.Halo+1 {
		err = fmt.Errorf("y decomposition of %d cells over %d tiles leaves %d cells, need at least %d",
			nyGlobal, py, n, grid.Halo+1)
		return nil, err
	}
	pg.Tiles = make([]*grid.Tile, px*py)
	for cy := 0; cy < py; cy++ {
		for cx := 0; cx < px; cx++ {
			var (
				x0, x1 = pg.XPart.GetBucketRange(cx)
				y0, y1 = pg.YPart.GetBucketRange(cy)
				rank   = pg.Rank(cx, cy)
			)
			pg.Tiles[rank] = &grid.Tile{
				Rank:   rank,
				Coords: [2]int{cx, cy},
				Nx:     x1 - x0,
				Ny:     y1 - y0,
				X:      grid.NewAxis(x1-x0, x0, nxGlobal, xMin, xMax),
				Y:      grid.NewAxis(y1-y0, y0, nyGlobal, yMin, yMax),
				Neighbors: [4]int{
					pg.neighbor(cx-1, cy), pg.neighbor(cx+1, cy),
					pg.neighbor(cx, cy-1), pg.neighbor(cx, cy+1),
				},
			}
		}
	}
	return
}

func (pg *ProcessGrid) NP() int { return pg.PX * pg.PY }

func (pg *ProcessGrid) Rank(cx, cy int) int { return cx + pg.PX*cy }

func (pg *ProcessGrid) neighbor(cx, cy int) (rank int) {
	if cx < 0 || cx >= pg.PX {
		if !pg.Periodic[0] {
			return grid.NoNeighbor
		}
		cx = (cx + pg.PX) % pg.PX
	}
	if cy < 0 || cy >= pg.PY {
		if !pg.Periodic[1] {
			return grid.NoNeighbor
		}
		cy = (cy + pg.PY) % pg.PY
	}
	return pg.Rank(cx, cy)
}

// Owner returns the rank holding global cell (gi, gj), counted from 1 like a
// tile's interior, and the cell's local index on that tile. A cell outside the
// domain has rank NoNeighbor.
func (pg *ProcessGrid) Owner(gi, gj int) (rank, i, j int) {
	var (
		cx, x0, _ = pg.XPart.GetBucket(gi - 1)
		cy, y0, _ = pg.YPart.GetBucket(gj - 1)
	)
	if cx < 0 || cy < 0 {
		return grid.NoNeighbor, 0, 0
	}
	return pg.Rank(cx, cy), gi - x0, gj - y0
}

// Comm is the exchanger used by the goroutine that owns one tile
type Comm struct {
	pg   *ProcessGrid
	tile *grid.Tile
}

func (pg *ProcessGrid) Comm(rank int) *Comm {
	return &Comm{pg: pg, tile: pg.Tiles[rank]}
}

func (c *Comm) Tile() *grid.Tile { return c.tile }

/*
Exchange swaps the x ghosts first, then the y ghosts over the full x range so
the corner ghosts come from the diagonal tile. Low ghosts -Halo..0 come from
the lower neighbor's N-Halo..N, high ghosts N+1..N+Halo from the upper
neighbor's 1..Halo. Every tile must exchange the same fields in the same order.
*/
func (c *Comm) Exchange(f *grid.Field) {
	var (
		t      = c.tile
		me     = t.Rank
		mb     = c.pg.mb
		nx, ny = f.Nx, f.Ny
		nb     = t.Neighbors
	)
	if nx != t.Nx || ny != t.Ny {
		panic(fmt.Errorf("field %s is %dx%d, tile %d is %dx%d", f.Name, nx, ny, me, t.Nx, t.Ny))
	}
	if nb[types.XMax] != grid.NoNeighbor {
		mb.PostMessage(me, nb[types.XMax], tagLowX, f.PackX(nx-grid.Halo, nx))
	}
	if nb[types.XMin] != grid.NoNeighbor {
		mb.PostMessage(me, nb[types.XMin], tagHighX, f.PackX(1, grid.Halo))
	}
	if nb[types.XMin] != grid.NoNeighbor {
		f.UnpackX(-grid.Halo, 0, mb.ReceiveMessage(me, nb[types.XMin], tagLowX))
	}
	if nb[types.XMax] != grid.NoNeighbor {
		f.UnpackX(nx+1, nx+grid.Halo, mb.ReceiveMessage(me, nb[types.XMax], tagHighX))
	}
	if nb[types.YMax] != grid.NoNeighbor {
		mb.PostMessage(me, nb[types.YMax], tagLowY, f.PackY(ny-grid.Halo, ny))
	}
	if nb[types.YMin] != grid.NoNeighbor {
		mb.PostMessage(me, nb[types.YMin], tagHighY, f.PackY(1, grid.Halo))
	}
	if nb[types.YMin] != grid.NoNeighbor {
		f.UnpackY(-grid.Halo, 0, mb.ReceiveMessage(me, nb[types.YMin], tagLowY))
	}
	if nb[types.YMax] != grid.NoNeighbor {
		f.UnpackY(ny+1, ny+grid.Halo, mb.ReceiveMessage(me, nb[types.YMax], tagHighY))
	}
}
