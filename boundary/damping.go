package boundary

import (
	"fmt"

	"github.com/notargets/gomhd/grid"
	"github.com/notargets/gomhd/types"
)

type DampingConfig struct {
	Enabled bool
	Cells   float64 // Layer depth in cells of the edge's width
	Scale   float64 // Relaxation rate at the edge
}

func (dc DampingConfig) Validate() (err error) {
	if !dc.Enabled {
		return
	}
	switch {
	case dc.Cells <= 0:
		err = fmt.Errorf("damping layer depth must be positive, have %g cells", dc.Cells)
	case dc.Scale < 0:
		err = fmt.Errorf("damping scale must be non-negative, have %g", dc.Scale)
	}
	return
}

/*
Damping relaxes velocity inside a layer along every edge of the tile that
lies on the domain boundary. Edges are applied one after another in the order
XMin, XMax, YMin, YMax, so vertices near a corner are damped by both passes.
*/
type Damping struct {
	DampingConfig
	tile *grid.Tile
}

func NewDamping(tile *grid.Tile, cfg DampingConfig) (d *Damping, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	d = &Damping{DampingConfig: cfg, tile: tile}
	return
}

// Depth is the layer thickness at an edge, Cells times the width of the cell touching it
func (d *Damping) Depth(e types.Edge) float64 {
	ax := d.tile.AxisFor(e)
	if e.IsMax() {
		return d.Cells * ax.Width(ax.N)
	}
	return d.Cells * ax.Width(1)
}

// Distance is the signed distance of vertex index k, along the edge normal, into the domain
func (d *Damping) Distance(e types.Edge, k int) float64 {
	ax := d.tile.AxisFor(e)
	if e.IsMax() {
		return ax.Max - ax.Vertex(k)
	}
	return ax.Vertex(k) - ax.Min
}

// Factor is the divisor applied at a distance from the edge; 1 at and beyond depth.
// It grows with (depth-distance)/depth, so damping is strongest on the edge
// and falls to none at depth.
func (d *Damping) Factor(distance, depth, dt float64) float64 {
	if distance >= depth {
		return 1.
	}
	return 1. + dt*d.Scale*(depth-distance)/depth
}

func (d *Damping) Apply(v [3]*grid.Field, dt float64) {
	if !d.Enabled {
		return
	}
	var (
		t = d.tile
	)
	for _, e := range types.Edges {
		if !t.IsBoundary(e) {
			continue
		}
		depth := d.Depth(e)
		if e.IsX() {
			for i := -grid.Halo; i <= t.Nx+grid.Halo; i++ {
				dist := d.Distance(e, i)
				if dist >= depth {
					continue
				}
				a := d.Factor(dist, depth, dt)
				for _, f := range v {
					for j := -grid.Halo; j <= t.Ny+grid.Halo; j++ {
						f.Set(i, j, f.At(i, j)/a)
					}
				}
			}
		} else {
			for j := -grid.Halo; j <= t.Ny+grid.Halo; j++ {
				dist := d.Distance(e, j)
				if dist >= depth {
					continue
				}
				a := d.Factor(dist, depth, dt)
				for _, f := range v {
					for i := -grid.Halo; i <= t.Nx+grid.Halo; i++ {
						f.Set(i, j, f.At(i, j)/a)
					}
				}
			}
		}
	}
}
