package MHD2D

import (
	"fmt"
	"math"
	"strings"
)

type InitType uint

const (
	UNIFORM InitType = iota
	SHEAR
)

var (
	InitNames = map[string]InitType{
		"uniform": UNIFORM,
		"shear":   SHEAR,
	}
	InitPrintNames = []string{"Uniform State", "Sinusoidal Shear in vz"}
)

func (it InitType) Print() string {
	if int(it) < len(InitPrintNames) {
		return InitPrintNames[it]
	}
	return fmt.Sprintf("InitType(%d)", uint(it))
}

func NewInitType(label string) (it InitType, err error) {
	var ok bool
	if len(label) == 0 {
		err = fmt.Errorf("empty init type, must be one of %v", InitPrintNames)
		return
	}
	if it, ok = InitNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use init type named %s", label)
	}
	return
}

/*
InitializeTile sets the starting state on one tile, halo included:
  - rho = 1, energy = 1 and temperature from the ideal gas, T = (gamma-1)e
  - the field components B0 on their faces and in the cells
  - velocity V0, with Shear replacing vz by V0z sin(2 pi x / Lx) at the vertices
*/
func (s *Simulation) InitializeTile(ts *TileState) {
	var (
		fs     = ts.Fields
		B0, V0 = s.B0, s.V0
		ax     = ts.Tile.X
		Lx     = ax.Max - ax.Min
	)
	fs.Rho.Fill(1)
	fs.Energy.Fill(1)
	fs.Temperature.Fill(s.Gamma - 1)
	fs.Bx.Fill(B0[0])
	fs.By.Fill(B0[1])
	fs.Bz.Fill(B0[2])
	fs.Vx.Fill(V0[0])
	fs.Vy.Fill(V0[1])
	switch s.Case {
	case SHEAR:
		fs.Vz.Apply(func(i, j int) float64 {
			return V0[2] * math.Sin(2*math.Pi*(ax.Vertex(i)-ax.Min)/Lx)
		})
	default:
		fs.Vz.Fill(V0[2])
	}
	for n, f := range fs.Predictor() {
		f.CopyFrom(fs.Velocity()[n])
	}
}
