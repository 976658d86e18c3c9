package MHD2D

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomhd/utils"
)

type Diagnostics struct {
	TotalBz float64 // Sum of interior bz
	MaxDivB float64 // Largest discrete |div B| over interior cells
	MaxVz   float64 // Largest |vz| over owned vertices
	NaN     bool
}

func (ts *TileState) Diagnose() (d Diagnostics) {
	var (
		fs     = ts.Fields
		t      = ts.Tile
		nx, ny = t.Nx, t.Ny
	)
	d.TotalBz = fs.Bz.InteriorSum()
	for i := 1; i <= nx; i++ {
		dx := t.X.Width(i)
		for j := 1; j <= ny; j++ {
			dy := t.Y.Width(j)
			div := (fs.Bx.At(i, j)-fs.Bx.At(i-1, j))/dx + (fs.By.At(i, j)-fs.By.At(i, j-1))/dy
			d.MaxDivB = math.Max(d.MaxDivB, math.Abs(div))
		}
	}
	d.MaxVz = fs.Vz.MaxAbs(0, nx, 0, ny)
	for _, f := range fs.All() {
		if utils.IsNan(f.Data()) {
			d.NaN = true
			break
		}
	}
	return
}

// ReduceDiagnostics combines per tile values into domain totals and maxima
func ReduceDiagnostics(diags []Diagnostics) (d Diagnostics) {
	var (
		total = make([]float64, len(diags))
		divB  = make([]float64, len(diags))
		vz    = make([]float64, len(diags))
	)
	for n, dd := range diags {
		total[n], divB[n], vz[n] = dd.TotalBz, dd.MaxDivB, dd.MaxVz
		d.NaN = d.NaN || dd.NaN
	}
	if len(diags) == 0 {
		return
	}
	d.TotalBz = floats.Sum(total)
	d.MaxDivB = floats.Max(divB)
	d.MaxVz = floats.Max(vz)
	return
}

// GatherBz assembles the interior bz of every tile into one NxGlobal x NyGlobal
// matrix, global cell (gi, gj) at row gi-1, column gj-1
func (s *Simulation) GatherBz() (bz *mat.Dense) {
	bz = mat.NewDense(s.NxGlobal, s.NyGlobal, nil)
	for gi := 1; gi <= s.NxGlobal; gi++ {
		for gj := 1; gj <= s.NyGlobal; gj++ {
			rank, i, j := s.PG.Owner(gi, gj)
			bz.Set(gi-1, gj-1, s.Tiles[rank].Fields.Bz.At(i, j))
		}
	}
	return
}
