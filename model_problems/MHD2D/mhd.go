package MHD2D

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomhd/InputParameters"
	"github.com/notargets/gomhd/boundary"
	"github.com/notargets/gomhd/grid"
	"github.com/notargets/gomhd/halo"
	"github.com/notargets/gomhd/remap"
	"github.com/notargets/gomhd/types"
	"github.com/notargets/gomhd/utils"
)

/*
Simulation is the whole run state, threaded through every step. The domain
is split into tiles over a process grid, each tile owning its fields, its
boundary manager and its remap buffers. A step runs every tile in its own go
routine; tiles meet only inside the halo exchanges.
*/
type Simulation struct {
	// Input parameters
	Title              string
	RunID              string
	Dt, FinalTime      float64
	MaxSteps           int
	Gamma              float64
	B0, V0             [3]float64
	Case               InitType
	Kinds              types.EdgeKinds
	PlotSteps          int
	Predictor          Predictor
	PG                 *halo.ProcessGrid
	Tiles              []*TileState
	Time               float64
	Steps              int
	verbose            bool
	diags              []Diagnostics
	NxGlobal, NyGlobal int
}

type TileState struct {
	Comm   *halo.Comm
	Tile   *grid.Tile
	Fields *grid.FieldSet
	BCs    *boundary.Manager
	Remap  *remap.BzRemap
}

func NewSimulation(ip *InputParameters.InputParameters2D, verbose bool) (s *Simulation, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	s = &Simulation{
		Title:     ip.Title,
		RunID:     xid.New().String(),
		Dt:        ip.Dt,
		FinalTime: ip.FinalTime,
		MaxSteps:  ip.MaxSteps,
		Gamma:     ip.Gamma,
		B0:        ip.B0,
		V0:        ip.V0,
		PlotSteps: 1,
		Predictor: Kinematic{},
		verbose:   verbose,
		NxGlobal:  ip.Nx,
		NyGlobal:  ip.Ny,
	}
	if s.Case, err = NewInitType(ip.InitType); err != nil {
		return nil, err
	}
	if s.Kinds, err = ip.EdgeKinds(); err != nil {
		return nil, err
	}
	s.PG, err = halo.NewProcessGrid(ip.Nx, ip.Ny, ip.ProcX, ip.ProcY,
		s.Kinds[types.XMin] == types.BC_Periodic, s.Kinds[types.YMin] == types.BC_Periodic,
		ip.XMin, ip.XMax, ip.YMin, ip.YMax)
	if err != nil {
		return nil, err
	}
	cfg := boundary.Config{
		Kinds:  s.Kinds,
		Driven: ip.Driven,
		Driver: boundary.DriverConfig{
			NumBins:   ip.Driver.NumBins,
			MinOmega:  ip.Driver.MinOmega,
			MaxOmega:  ip.Driver.MaxOmega,
			Amplitude: ip.Driver.Amplitude,
			RiseTime:  ip.Driver.RiseTime,
			Seed:      ip.Driver.Seed,
		},
		Damping: boundary.DampingConfig{
			Enabled: ip.Damping.Enabled,
			Cells:   ip.Damping.Cells,
			Scale:   ip.Damping.Scale,
		},
	}
	NP := s.PG.NP()
	s.Tiles = make([]*TileState, NP)
	s.diags = make([]Diagnostics, NP)
	for np := 0; np < NP; np++ {
		comm := s.PG.Comm(np)
		ts := &TileState{
			Comm:   comm,
			Tile:   comm.Tile(),
			Fields: grid.NewFieldSet(comm.Tile().Nx, comm.Tile().Ny),
		}
		if ts.BCs, err = boundary.NewManager(cfg, ts.Tile, comm); err != nil {
			return nil, err
		}
		ts.Remap = remap.NewBzRemap(ts.Tile.Nx, ts.Tile.Ny, ts.BCs)
		s.Tiles[np] = ts
	}
	s.InitializeSolution()
	if verbose {
		fmt.Printf("MHD Lagrangian Remap in 2 Dimensions\n")
		fmt.Printf("Using %d go routines in parallel, one per tile\n", NP)
		fmt.Printf("Solving %s\n", s.Case.Print())
		fmt.Printf("Boundaries: XMin=%s XMax=%s YMin=%s YMax=%s\n",
			s.Kinds[types.XMin], s.Kinds[types.XMax], s.Kinds[types.YMin], s.Kinds[types.YMax])
	}
	return
}

// InitializeSolution sets the starting state and fills every halo for time 0
func (s *Simulation) InitializeSolution() {
	for _, ts := range s.Tiles {
		s.InitializeTile(ts)
	}
	s.parallel(func(np int, ts *TileState) {
		ts.BCs.Apply(ts.Fields, 0, 0)
	})
}

// parallel runs fn on every tile concurrently and waits for all of them
func (s *Simulation) parallel(fn func(np int, ts *TileState)) {
	var wg sync.WaitGroup
	for np, ts := range s.Tiles {
		wg.Add(1)
		go func(np int, ts *TileState) {
			defer wg.Done()
			fn(np, ts)
		}(np, ts)
	}
	wg.Wait()
}

// Step advances all tiles by one time step and returns the reduced diagnostics
func (s *Simulation) Step() (d Diagnostics) {
	var (
		dt = s.Dt
	)
	s.Time += dt
	s.Steps++
	Time := s.Time
	s.parallel(func(np int, ts *TileState) {
		fs := ts.Fields
		s.Predictor.Predict(fs, dt)
		ts.BCs.Apply(fs, Time, dt)
		ts.Remap.Apply(fs.Bx, fs.By, fs.Vz1, fs.Bz, dt)
		ts.BCs.Damping.Apply(fs.Velocity(), dt)
		s.diags[np] = ts.Diagnose()
	})
	d = ReduceDiagnostics(s.diags)
	return
}

func (s *Simulation) CheckIfFinished() (finished bool) {
	if s.FinalTime > 0 && s.Time+1.e-9*s.Dt >= s.FinalTime {
		finished = true
	}
	if s.MaxSteps > 0 && s.Steps >= s.MaxSteps {
		finished = true
	}
	return
}

// Solve steps until finished, aborting with an error when a NaN shows up
func (s *Simulation) Solve() (err error) {
	var (
		finished bool
		d        Diagnostics
		start    time.Time
		elapsed  time.Duration
	)
	if s.PlotSteps < 1 {
		s.PlotSteps = 1
	}
	if s.verbose {
		s.PrintInitialization()
	}
	for !finished {
		start = time.Now()
		d = s.Step()
		elapsed += time.Since(start)
		finished = s.CheckIfFinished()
		if s.verbose && (finished || s.Steps%s.PlotSteps == 0 || s.Steps == 1) {
			s.PrintUpdate(d)
		}
		if d.NaN {
			err = fmt.Errorf("NaN detected at step %d, time %8.5f", s.Steps, s.Time)
			return
		}
	}
	if s.verbose {
		s.PrintFinal(elapsed)
	}
	return
}

func (s *Simulation) PrintInitialization() {
	fmt.Printf("Run [%s] \"%s\"\n", s.RunID, s.Title)
	fmt.Printf("Grid %d x %d on a %d x %d process grid\n", s.NxGlobal, s.NyGlobal, s.PG.PX, s.PG.PY)
	for _, ts := range s.Tiles {
		fmt.Printf("\t%s\n", ts.Tile)
	}
	if s.MaxSteps > 0 {
		fmt.Printf("Solving until finaltime = %8.5f or %d steps\n", s.FinalTime, s.MaxSteps)
	} else {
		fmt.Printf("Solving until finaltime = %8.5f\n", s.FinalTime)
	}
	fmt.Printf("    iter    time      dt")
	fmt.Printf("   total_bz   max|divB|   max|vz|\n")
}

func (s *Simulation) PrintUpdate(d Diagnostics) {
	format := "%11.4e"
	fmt.Printf("%8d%8.5f%8.5f", s.Steps, s.Time, s.Dt)
	fmt.Printf(format, d.TotalBz)
	fmt.Printf(format, d.MaxDivB)
	fmt.Printf(format, d.MaxVz)
	fmt.Printf("\n")
}

func (s *Simulation) PrintFinal(elapsed time.Duration) {
	rate := float64(elapsed.Microseconds()) / float64(s.NxGlobal*s.NyGlobal*s.Steps)
	fmt.Printf("\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, s.Steps)
	bz := s.GatherBz()
	fmt.Printf("Final bz range [%11.4e, %11.4e]\n", mat.Min(bz), mat.Max(bz))
	fmt.Printf("%s\n", utils.GetMemUsage())
}
