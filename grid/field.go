package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Halo is the ghost depth on each side of a tile. The low side also carries
// the boundary face/vertex at index 0, so the logical range is -Halo..N+Halo.
const Halo = 2

// Stagger is the location of a field's samples within a cell
type Stagger uint8

const (
	CellCentred Stagger = iota
	XFace               // index i is the face between cells i and i+1
	YFace               // index j is the face between cells j and j+1
	Vertex              // index (i,j) is the upper right corner of cell (i,j)
)

var staggerNames = [...]string{"CellCentred", "XFace", "YFace", "Vertex"}

func (s Stagger) String() string {
	if int(s) < len(staggerNames) {
		return staggerNames[s]
	}
	return fmt.Sprintf("Stagger(%d)", uint8(s))
}

/*
Field stores one real quantity over a tile including its halo. Logical
coordinates (i,j) run from -Halo to N+Halo and are shifted onto a dense
row-major gonum matrix, row = i+Halo, column = j+Halo.
*/
type Field struct {
	Name    string
	Stagger Stagger
	Nx, Ny  int
	M       *mat.Dense
	stride  int
	data    []float64
}

func NewField(name string, stagger Stagger, nx, ny int) (f *Field) {
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("field %s needs a positive size, have nx, ny = %d, %d", name, nx, ny))
	}
	var (
		nr, nc = nx + 2*Halo + 1, ny + 2*Halo + 1
		m      = mat.NewDense(nr, nc, nil)
		raw    = m.RawMatrix()
	)
	f = &Field{
		Name:    name,
		Stagger: stagger,
		Nx:      nx,
		Ny:      ny,
		M:       m,
		stride:  raw.Stride,
		data:    raw.Data,
	}
	return
}

// Index maps a logical coordinate onto the raw storage offset
func (f *Field) Index(i, j int) int { return (i+Halo)*f.stride + j + Halo }

func (f *Field) At(i, j int) float64     { return f.data[f.Index(i, j)] }
func (f *Field) Set(i, j int, v float64) { f.data[f.Index(i, j)] = v }
func (f *Field) Add(i, j int, v float64) { f.data[f.Index(i, j)] += v }

// Data is the raw storage, aliased to M
func (f *Field) Data() []float64 { return f.data }

// Bounds returns the inclusive logical index limits of the field
func (f *Field) Bounds() (iMin, iMax, jMin, jMax int) {
	return -Halo, f.Nx + Halo, -Halo, f.Ny + Halo
}

func (f *Field) InRange(i, j int) bool {
	return i >= -Halo && i <= f.Nx+Halo && j >= -Halo && j <= f.Ny+Halo
}

func (f *Field) Fill(val float64) {
	for i := range f.data {
		f.data[i] = val
	}
}

// Apply sets every point, halo included, from a function of the logical coordinate
func (f *Field) Apply(fn func(i, j int) float64) {
	for i := -Halo; i <= f.Nx+Halo; i++ {
		for j := -Halo; j <= f.Ny+Halo; j++ {
			f.Set(i, j, fn(i, j))
		}
	}
}

func (f *Field) CopyFrom(src *Field) {
	if src.Nx != f.Nx || src.Ny != f.Ny {
		panic(fmt.Errorf("mismatch in copy: %s is %dx%d, %s is %dx%d",
			f.Name, f.Nx, f.Ny, src.Name, src.Nx, src.Ny))
	}
	f.M.Copy(src.M)
}

// InteriorSum sums cells 1..Nx, 1..Ny
func (f *Field) InteriorSum() (sum float64) {
	for i := 1; i <= f.Nx; i++ {
		sum += floats.Sum(f.data[f.Index(i, 1) : f.Index(i, f.Ny)+1])
	}
	return
}

// MaxAbs is the largest magnitude over the inclusive logical box
func (f *Field) MaxAbs(i0, i1, j0, j1 int) (m float64) {
	if !f.InRange(i0, j0) || !f.InRange(i1, j1) {
		panic(fmt.Errorf("box [%d:%d, %d:%d] outside %s", i0, i1, j0, j1, f.Name))
	}
	for i := i0; i <= i1; i++ {
		row := f.data[f.Index(i, j0) : f.Index(i, j1)+1]
		if v := floats.Norm(row, math.Inf(1)); v > m {
			m = v
		}
	}
	return
}

/*
PackX copies the strip of rows i0..i1 (all j, halo included) into a new
buffer, PackY the strip of columns j0..j1 (all i). Unpack is the inverse.
*/
func (f *Field) PackX(i0, i1 int) (buf []float64) {
	var (
		nc = f.Ny + 2*Halo + 1
	)
	buf = make([]float64, 0, (i1-i0+1)*nc)
	for i := i0; i <= i1; i++ {
		buf = append(buf, f.data[f.Index(i, -Halo):f.Index(i, f.Ny+Halo)+1]...)
	}
	return
}

func (f *Field) UnpackX(i0, i1 int, buf []float64) {
	var (
		nc = f.Ny + 2*Halo + 1
	)
	if len(buf) != (i1-i0+1)*nc {
		panic(fmt.Errorf("unpack of %s rows %d..%d: have %d values, need %d",
			f.Name, i0, i1, len(buf), (i1-i0+1)*nc))
	}
	for i := i0; i <= i1; i++ {
		copy(f.data[f.Index(i, -Halo):f.Index(i, f.Ny+Halo)+1], buf[(i-i0)*nc:])
	}
}

func (f *Field) PackY(j0, j1 int) (buf []float64) {
	var (
		nr = f.Nx + 2*Halo + 1
	)
	buf = make([]float64, 0, (j1-j0+1)*nr)
	for i := -Halo; i <= f.Nx+Halo; i++ {
		buf = append(buf, f.data[f.Index(i, j0):f.Index(i, j1)+1]...)
	}
	return
}

func (f *Field) UnpackY(j0, j1 int, buf []float64) {
	var (
		nr = f.Nx + 2*Halo + 1
		nj = j1 - j0 + 1
	)
	if len(buf) != nj*nr {
		panic(fmt.Errorf("unpack of %s columns %d..%d: have %d values, need %d",
			f.Name, j0, j1, len(buf), nj*nr))
	}
	for i := -Halo; i <= f.Nx+Halo; i++ {
		copy(f.data[f.Index(i, j0):f.Index(i, j1)+1], buf[(i+Halo)*nj:])
	}
}
