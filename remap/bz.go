package remap

import (
	"fmt"

	"github.com/notargets/gomhd/grid"
)

// BzRefresher fills bz's ghost cells once the sweeps are done
type BzRefresher interface {
	BzBCs(bz *grid.Field)
}

/*
BzRemap advects the out of plane field through the cell faces. Each sweep
builds one flux per face, the half step vz averaged along the face times the
in-plane component normal to it, and updates every cell with the difference
of the fluxes on its two faces. A face flux enters one cell with the opposite
sign it leaves the other, so the update sums to the boundary fluxes over any
block of cells.
*/
type BzRemap struct {
	Nx, Ny       int
	FluxX, FluxY []float64 // Face fluxes of the last sweep, index 0 is the low boundary face
	bc           BzRefresher
}

// NewBzRemap sizes the flux buffers for an nx x ny tile. A nil refresher skips the halo refresh.
func NewBzRemap(nx, ny int, bc BzRefresher) *BzRemap {
	return &BzRemap{
		Nx:    nx,
		Ny:    ny,
		FluxX: make([]float64, nx+1),
		FluxY: make([]float64, ny+1),
		bc:    bc,
	}
}

func (r *BzRemap) check(fields ...*grid.Field) {
	for _, f := range fields {
		if f.Nx != r.Nx || f.Ny != r.Ny {
			panic(fmt.Errorf("remap is sized %dx%d, field %s is %dx%d", r.Nx, r.Ny, f.Name, f.Nx, f.Ny))
		}
	}
}

// Apply runs the x sweep, then the y sweep on the updated bz, then refreshes bz's halo
func (r *BzRemap) Apply(bx, by, vz1, bz *grid.Field, dt float64) {
	r.check(bx, by, vz1, bz)
	r.XSweep(bx, vz1, bz, dt)
	r.YSweep(by, vz1, bz, dt)
	if r.bc != nil {
		r.bc.BzBCs(bz)
	}
}

func (r *BzRemap) XSweep(bx, vz1, bz *grid.Field, dt float64) {
	flux := r.FluxX
	for j := 1; j <= r.Ny; j++ {
		for i := 0; i <= r.Nx; i++ {
			flux[i] = dt * 0.5 * (vz1.At(i, j) + vz1.At(i, j-1)) * bx.At(i, j)
		}
		for i := 1; i <= r.Nx; i++ {
			bz.Add(i, j, flux[i-1]-flux[i])
		}
	}
}

func (r *BzRemap) YSweep(by, vz1, bz *grid.Field, dt float64) {
	flux := r.FluxY
	for i := 1; i <= r.Nx; i++ {
		for j := 0; j <= r.Ny; j++ {
			flux[j] = dt * 0.5 * (vz1.At(i, j) + vz1.At(i-1, j)) * by.At(i, j)
		}
		for j := 1; j <= r.Ny; j++ {
			bz.Add(i, j, flux[j-1]-flux[j])
		}
	}
}

// RemapBz is a one shot remap with freshly allocated buffers
func RemapBz(bx, by, vz1, bz *grid.Field, dt float64, bc BzRefresher) {
	NewBzRemap(bz.Nx, bz.Ny, bc).Apply(bx, by, vz1, bz, dt)
}
