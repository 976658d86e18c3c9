package boundary

import (
	"github.com/notargets/gomhd/grid"
	"github.com/notargets/gomhd/types"
)

// OpenBoundary fills the ghost layers of a field on an edge configured Open
type OpenBoundary interface {
	Apply(f *grid.Field, e types.Edge)
}

// onBoundary is true when index 0 (and N) of the field sits on edges normal to e
func onBoundary(s grid.Stagger, e types.Edge) bool {
	if s == grid.Vertex {
		return true
	}
	if e.IsX() {
		return s == grid.XFace
	}
	return s == grid.YFace
}

// ExtrapolateOpen copies the outermost owned layer into every ghost layer. It
// stands in for a characteristic treatment when none is supplied.
type ExtrapolateOpen struct{}

func (ExtrapolateOpen) Apply(f *grid.Field, e types.Edge) {
	var (
		src int
	)
	switch e {
	case types.XMin:
		if src = 1; onBoundary(f.Stagger, e) {
			src = 0
		}
		for i := -grid.Halo; i < src; i++ {
			copyLayerX(f, i, src)
		}
	case types.XMax:
		for i := f.Nx + 1; i <= f.Nx+grid.Halo; i++ {
			copyLayerX(f, i, f.Nx)
		}
	case types.YMin:
		if src = 1; onBoundary(f.Stagger, e) {
			src = 0
		}
		for j := -grid.Halo; j < src; j++ {
			copyLayerY(f, j, src)
		}
	case types.YMax:
		for j := f.Ny + 1; j <= f.Ny+grid.Halo; j++ {
			copyLayerY(f, j, f.Ny)
		}
	}
}

func copyLayerX(f *grid.Field, dst, src int) {
	for j := -grid.Halo; j <= f.Ny+grid.Halo; j++ {
		f.Set(dst, j, f.At(src, j))
	}
}

func copyLayerY(f *grid.Field, dst, src int) {
	for i := -grid.Halo; i <= f.Nx+grid.Halo; i++ {
		f.Set(i, dst, f.At(i, src))
	}
}

func zeroLayerX(f *grid.Field, i int) {
	for j := -grid.Halo; j <= f.Ny+grid.Halo; j++ {
		f.Set(i, j, 0)
	}
}

func zeroLayerY(f *grid.Field, j int) {
	for i := -grid.Halo; i <= f.Nx+grid.Halo; i++ {
		f.Set(i, j, 0)
	}
}
