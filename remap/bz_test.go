package remap

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomhd/boundary"
	"github.com/notargets/gomhd/grid"
	"github.com/notargets/gomhd/halo"
	"github.com/notargets/gomhd/types"
)

type recordingRefresher struct {
	calls int
}

func (rr *recordingRefresher) BzBCs(bz *grid.Field) { rr.calls++ }

func newFields(nx, ny int) (bx, by, vz1, bz *grid.Field) {
	bx = grid.NewField("bx", grid.XFace, nx, ny)
	by = grid.NewField("by", grid.YFace, nx, ny)
	vz1 = grid.NewField("vz1", grid.Vertex, nx, ny)
	bz = grid.NewField("bz", grid.CellCentred, nx, ny)
	return
}

func snapshot(f *grid.Field) (c *grid.Field) {
	c = grid.NewField(f.Name, f.Stagger, f.Nx, f.Ny)
	c.CopyFrom(f)
	return
}

func randomize(seed uint64, fields ...*grid.Field) {
	rng := rand.New(rand.NewPCG(seed, 1))
	for _, f := range fields {
		f.Apply(func(i, j int) float64 { return 2*rng.Float64() - 1 })
	}
}

func TestRemapZeroVelocity(t *testing.T) {
	var (
		nx, ny          = 7, 5
		bx, by, vz1, bz = newFields(nx, ny)
		rr              = &recordingRefresher{}
	)
	randomize(1, bx, by, bz)
	before := snapshot(bz)
	r := NewBzRemap(nx, ny, rr)
	r.Apply(bx, by, vz1, bz, 0.3)
	assert.Equal(t, 1, rr.calls)
	assert.Equal(t, before.Data(), bz.Data())
	for _, fl := range append(r.FluxX, r.FluxY...) {
		assert.Equal(t, 0., fl)
	}
}

func TestRemapUniform(t *testing.T) {
	var (
		nx, ny          = 4, 4
		bx, by, vz1, bz = newFields(nx, ny)
	)
	bx.Fill(1)
	by.Fill(1)
	vz1.Fill(1)
	randomize(2, bz)
	{ // Every cell passes on what it receives
		c := snapshot(bz)
		RemapBz(bx, by, vz1, c, 1, nil)
		assert.Equal(t, bz.Data(), c.Data())
	}
	{ // Only ghost cells change once a wall refresh follows
		pg, err := halo.NewProcessGrid(nx, ny, 1, 1, false, false, 0, 1, 0, 1)
		require.NoError(t, err)
		comm := pg.Comm(0)
		kinds := types.EdgeKinds{types.BC_User, types.BC_User, types.BC_User, types.BC_User}
		m, err := boundary.NewManager(boundary.Config{Kinds: kinds}, comm.Tile(), comm)
		require.NoError(t, err)
		c := snapshot(bz)
		NewBzRemap(nx, ny, m).Apply(bx, by, vz1, c, 1)
		for i := 1; i <= nx; i++ {
			for j := 1; j <= ny; j++ {
				assert.Equal(t, bz.At(i, j), c.At(i, j))
			}
		}
		assert.NotEqual(t, bz.At(0, 2), c.At(0, 2))
		assert.Equal(t, c.At(1, 2), c.At(0, 2))
		assert.Equal(t, c.At(3, ny), c.At(3, ny+1))
	}
}

func TestRemapConservation(t *testing.T) {
	var (
		nx, ny          = 9, 6
		dt              = 0.05
		bx, by, vz1, bz = newFields(nx, ny)
	)
	randomize(3, bx, by, vz1, bz)
	before := bz.InteriorSum()
	r := NewBzRemap(nx, ny, nil)
	r.Apply(bx, by, vz1, bz, dt)

	// Interior faces cancel, leaving what crosses the tile's outer faces
	var boundaryFlux float64
	faceX := func(i, j int) float64 { return dt * 0.5 * (vz1.At(i, j) + vz1.At(i, j-1)) * bx.At(i, j) }
	faceY := func(i, j int) float64 { return dt * 0.5 * (vz1.At(i, j) + vz1.At(i-1, j)) * by.At(i, j) }
	for j := 1; j <= ny; j++ {
		boundaryFlux += faceX(0, j) - faceX(nx, j)
	}
	for i := 1; i <= nx; i++ {
		boundaryFlux += faceY(i, 0) - faceY(i, ny)
	}
	assert.InDelta(t, before+boundaryFlux, bz.InteriorSum(), 1.e-12)

	// The buffers hold the last row and column swept
	assert.InDelta(t, faceX(nx, ny), r.FluxX[nx], 1.e-15)
	assert.InDelta(t, faceY(nx, 0), r.FluxY[0], 1.e-15)

	// A single cell sees the difference of its own faces
	{
		var (
			b0       = snapshot(bz)
			i, j     = 4, 3
			expected = b0.At(i, j) + faceX(i-1, j) - faceX(i, j) + faceY(i, j-1) - faceY(i, j)
		)
		r.Apply(bx, by, vz1, bz, dt)
		assert.InDelta(t, expected, bz.At(i, j), 1.e-14)
	}
	assert.Panics(t, func() {
		r.Apply(bx, by, vz1, grid.NewField("bz", grid.CellCentred, nx+1, ny), dt)
	})
}
