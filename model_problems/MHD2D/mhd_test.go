package MHD2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomhd/InputParameters"
	"github.com/notargets/gomhd/grid"
	"github.com/notargets/gomhd/types"
)

func shearInput(px, py int) *InputParameters.InputParameters2D {
	return &InputParameters.InputParameters2D{
		Title:    "shear",
		Nx:       12,
		Ny:       8,
		ProcX:    px,
		ProcY:    py,
		XMin:     0,
		XMax:     1,
		YMin:     0,
		YMax:     1,
		Dt:       0.01,
		MaxSteps: 5,
		Gamma:    1.4,
		InitType: "Shear",
		B0:       [3]float64{1, 0.5, 0.2},
		V0:       [3]float64{0, 0, 0.3},
		BCs: map[string]string{
			"XMin": "periodic", "XMax": "periodic",
			"YMin": "userdefined", "YMax": "userdefined",
		},
	}
}

func TestNewSimulation(t *testing.T) {
	{ // Setup from parameters
		s, err := NewSimulation(shearInput(2, 2), false)
		require.NoError(t, err)
		assert.Len(t, s.Tiles, 4)
		assert.Equal(t, SHEAR, s.Case)
		assert.Equal(t, types.BC_Periodic, s.Kinds[types.XMax])
		assert.Len(t, s.RunID, 20)
		for _, ts := range s.Tiles {
			assert.Equal(t, ts.Tile, ts.Comm.Tile())
			assert.InDelta(t, 0.4, ts.Fields.Temperature.At(1, 1), 1.e-15)
			assert.Equal(t, 1., ts.Fields.Bx.At(0, 0))
			ax := ts.Tile.X
			assert.InDelta(t, 0.3*math.Sin(2*math.Pi*ax.Vertex(2)), ts.Fields.Vz.At(2, 3), 1.e-14)
		}
		// Bottom tiles have walls applied at time 0
		assert.Equal(t, 0., s.Tiles[0].Fields.Vz.At(3, 0))
	}
	{ // Rejected setups
		ip := shearInput(1, 1)
		ip.InitType = "vortex"
		_, err := NewSimulation(ip, false)
		assert.Error(t, err)
		ip = shearInput(1, 1)
		ip.BCs["YMin"] = "sticky"
		_, err = NewSimulation(ip, false)
		assert.Error(t, err)
		ip = shearInput(5, 1)
		_, err = NewSimulation(ip, false)
		assert.Error(t, err)
		ip = shearInput(1, 1)
		ip.Driven = true
		ip.BCs["YMin"] = "open"
		_, err = NewSimulation(ip, false)
		assert.Error(t, err)
	}
	{
		it, err := NewInitType("UNIFORM")
		assert.NoError(t, err)
		assert.Equal(t, UNIFORM, it)
		_, err = NewInitType("")
		assert.Error(t, err)
	}
}

func TestSolve(t *testing.T) {
	{ // Uniform state is a fixed point
		ip := shearInput(2, 1)
		ip.InitType = "uniform"
		ip.BCs = map[string]string{"xmin": "periodic", "xmax": "periodic", "ymin": "periodic", "ymax": "periodic"}
		s, err := NewSimulation(ip, false)
		require.NoError(t, err)
		before := s.GatherBz()
		require.NoError(t, s.Solve())
		assert.Equal(t, 5, s.Steps)
		assert.InDelta(t, 0.05, s.Time, 1.e-12)
		assert.True(t, mat.Equal(before, s.GatherBz()))
		d := ReduceDiagnostics(s.diags)
		assert.Equal(t, 0., d.MaxDivB)
		assert.InDelta(t, 0.2*float64(ip.Nx*ip.Ny), d.TotalBz, 1.e-12)
		assert.InDelta(t, 0.3, d.MaxVz, 1.e-15)
	}
	{ // Shear between walls conserves total bz, independent of the decomposition
		single, err := NewSimulation(shearInput(1, 1), false)
		require.NoError(t, err)
		split, err := NewSimulation(shearInput(3, 2), false)
		require.NoError(t, err)
		total0 := ReduceDiagnostics([]Diagnostics{single.Tiles[0].Diagnose()}).TotalBz
		require.NoError(t, single.Solve())
		require.NoError(t, split.Solve())
		gs, gp := single.GatherBz(), split.GatherBz()
		assert.True(t, mat.Equal(gs, gp))
		assert.NotEqual(t, mat.Min(gs), mat.Max(gs))
		// Spot check the gather against the owning tile directly
		for _, ts := range split.Tiles {
			tile := ts.Tile
			assert.Equal(t, ts.Fields.Bz.At(1, tile.Ny), gp.At(tile.X.Offset, tile.Y.Offset+tile.Ny-1))
		}
		d := ReduceDiagnostics(split.diags)
		assert.InDelta(t, total0, d.TotalBz, 1.e-12)
		assert.InDelta(t, d.TotalBz, mat.Sum(gp), 1.e-12)
		assert.False(t, d.NaN)
	}
	{ // Driven lower edge with damping
		ip := shearInput(2, 2)
		ip.InitType = "uniform"
		ip.V0 = [3]float64{}
		ip.Driven = true
		ip.Driver = InputParameters.DriverParameters{NumBins: 50, MinOmega: 1, MaxOmega: 30, Amplitude: 0.5, RiseTime: 0.02, Seed: 9}
		ip.Damping = InputParameters.DampingParameters{Enabled: true, Cells: 2, Scale: 5}
		s, err := NewSimulation(ip, false)
		require.NoError(t, err)
		d := s.Step()
		assert.Greater(t, d.MaxVz, 0.)
		// Only the bottom row of tiles is driven
		assert.NotNil(t, s.Tiles[0].BCs.Spectrum())
		assert.Nil(t, s.Tiles[2].BCs.Spectrum())
		assert.Equal(t, 0., s.Tiles[2].Fields.Vz.MaxAbs(1, s.Tiles[2].Tile.Nx, 1, s.Tiles[2].Tile.Ny))
	}
	{ // NaN aborts the run
		s, err := NewSimulation(shearInput(2, 1), false)
		require.NoError(t, err)
		s.Tiles[1].Fields.Rho.Set(2, 2, math.NaN())
		err = s.Solve()
		assert.Error(t, err)
		assert.Equal(t, 1, s.Steps)
	}
	{ // Stop on final time
		ip := shearInput(1, 1)
		ip.MaxSteps, ip.FinalTime = 0, 0.1
		s, err := NewSimulation(ip, false)
		require.NoError(t, err)
		require.NoError(t, s.Solve())
		assert.Equal(t, 10, s.Steps)
	}
}

func TestKinematic(t *testing.T) {
	fs := grid.NewFieldSet(3, 3)
	fs.Vx.Fill(1)
	fs.Vz.Set(2, 2, 5)
	Kinematic{}.Predict(fs, 0.1)
	assert.Equal(t, fs.Vx.Data(), fs.Vx1.Data())
	assert.Equal(t, 5., fs.Vz1.At(2, 2))
	assert.Equal(t, 0., fs.Vy1.At(2, 2))
}

func TestReduceDiagnostics(t *testing.T) {
	d := ReduceDiagnostics([]Diagnostics{
		{TotalBz: 1, MaxDivB: 0.1, MaxVz: 3},
		{TotalBz: 2, MaxDivB: 0.5, MaxVz: 1, NaN: true},
	})
	assert.Equal(t, Diagnostics{TotalBz: 3, MaxDivB: 0.5, MaxVz: 3, NaN: true}, d)
	assert.Equal(t, Diagnostics{}, ReduceDiagnostics(nil))
}
