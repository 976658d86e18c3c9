package boundary

import (
	"fmt"
	"sync"

	"github.com/notargets/gomhd/grid"
	"github.com/notargets/gomhd/halo"
	"github.com/notargets/gomhd/types"
)

// DrivenEdge is the only edge that can carry the spectral vz drive
const DrivenEdge = types.YMin

type DriverConfig struct {
	NumBins            int
	MinOmega, MaxOmega float64
	Amplitude          float64 // A0 in A0*omega^(-5/6)
	RiseTime           float64 // Duration of the startup ramp
	Seed               uint64
}

func (dc DriverConfig) Validate() (err error) {
	switch {
	case dc.NumBins < 1:
		err = fmt.Errorf("driver needs at least one frequency bin, have %d", dc.NumBins)
	case dc.MinOmega <= 0 || dc.MaxOmega < dc.MinOmega:
		err = fmt.Errorf("driver frequency range must satisfy 0 < min <= max, have [%g, %g]",
			dc.MinOmega, dc.MaxOmega)
	case dc.RiseTime < 0:
		err = fmt.Errorf("driver rise time must be non-negative, have %g", dc.RiseTime)
	}
	return
}

type Config struct {
	Kinds   types.EdgeKinds
	Driven  bool // Drive vz on DrivenEdge, which must be UserDefined
	Driver  DriverConfig
	Damping DampingConfig
}

/*
Manager fills the ghost layers of every field on one tile. Each fill starts
with a halo exchange of that field; afterwards each edge of the tile on the
domain boundary is overwritten according to its kind:
  - Periodic edges keep what the exchange delivered.
  - Open edges are handed to the OpenBoundary.
  - UserDefined edges get a zero gradient copy for scalars and tangential
    field components, a mirror about the boundary face for the normal field
    component, and a no-slip wall (or the spectral drive) for velocity.
*/
type Manager struct {
	Kinds   types.EdgeKinds
	AnyOpen bool
	Driven  bool
	Driver  DriverConfig
	Tile    *grid.Tile
	Open    OpenBoundary
	Damping *Damping

	exchanger    halo.Exchanger
	newSource    func(seed uint64) PhaseSource
	spectrumOnce sync.Once
	spectrum     *Spectrum
}

type Option func(m *Manager)

func WithOpenBoundary(ob OpenBoundary) Option {
	return func(m *Manager) { m.Open = ob }
}

// WithPhaseSource replaces the seeded generator used when the spectrum is built
func WithPhaseSource(newSource func(seed uint64) PhaseSource) Option {
	return func(m *Manager) { m.newSource = newSource }
}

func NewManager(cfg Config, tile *grid.Tile, exchanger halo.Exchanger, opts ...Option) (m *Manager, err error) {
	if err = cfg.Kinds.Validate(); err != nil {
		return
	}
	for _, e := range types.Edges {
		if cfg.Kinds[e] == types.BC_Periodic && tile.IsBoundary(e) {
			err = fmt.Errorf("edge %s is periodic but tile %d has no neighbor there", e, tile.Rank)
			return
		}
	}
	if cfg.Driven {
		if cfg.Kinds[DrivenEdge] != types.BC_User {
			err = fmt.Errorf("driven boundary on %s requires kind %s, have %s",
				DrivenEdge, types.BC_User, cfg.Kinds[DrivenEdge])
			return
		}
		if err = cfg.Driver.Validate(); err != nil {
			return
		}
	}
	m = &Manager{
		Kinds:     cfg.Kinds,
		AnyOpen:   cfg.Kinds.AnyOpen(),
		Driven:    cfg.Driven,
		Driver:    cfg.Driver,
		Tile:      tile,
		Open:      ExtrapolateOpen{},
		exchanger: exchanger,
		newSource: NewPhaseSource,
	}
	if m.Damping, err = NewDamping(tile, cfg.Damping); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(m)
	}
	return
}

// Spectrum builds the drive table on first use. It is nil when driving is off
// or this tile does not touch the driven edge.
func (m *Manager) Spectrum() *Spectrum {
	if !m.drives() {
		return nil
	}
	m.spectrumOnce.Do(func() {
		var (
			err   error
			dc    = m.Driver
			ncols = m.Tile.Nx + 2*grid.Halo + 1
		)
		m.spectrum, err = NewSpectrum(dc.NumBins, ncols, dc.MinOmega, dc.MaxOmega,
			dc.Amplitude, m.newSource(dc.Seed))
		if err != nil {
			panic(err) // Parameters were validated in NewManager
		}
	})
	return m.spectrum
}

func (m *Manager) drives() bool {
	return m.Driven && m.Tile.IsBoundary(DrivenEdge)
}

// Apply refreshes the ghost layers of every field. The half step velocity is
// driven at time-dt/2, the full step velocity at time.
func (m *Manager) Apply(fs *grid.FieldSet, time, dt float64) {
	m.BFieldBCs(fs)
	m.DensityBCs(fs)
	m.EnergyBCs(fs)
	m.TemperatureBCs(fs)
	m.VelocityBCs(fs, time)
	m.PredictorVelocityBCs(fs, time, dt)
}

func (m *Manager) BFieldBCs(fs *grid.FieldSet) {
	m.fieldBCs(fs.Bx)
	m.fieldBCs(fs.By)
	m.fieldBCs(fs.Bz)
}

// BzBCs refreshes bz alone, as needed after the remap
func (m *Manager) BzBCs(bz *grid.Field)             { m.fieldBCs(bz) }
func (m *Manager) DensityBCs(fs *grid.FieldSet)     { m.fieldBCs(fs.Rho) }
func (m *Manager) EnergyBCs(fs *grid.FieldSet)      { m.fieldBCs(fs.Energy) }
func (m *Manager) TemperatureBCs(fs *grid.FieldSet) { m.fieldBCs(fs.Temperature) }

func (m *Manager) VelocityBCs(fs *grid.FieldSet, time float64) {
	m.velocityBCs(fs.Velocity(), time)
}

func (m *Manager) PredictorVelocityBCs(fs *grid.FieldSet, time, dt float64) {
	m.velocityBCs(fs.Predictor(), time-0.5*dt)
}

func (m *Manager) fieldBCs(f *grid.Field) {
	m.exchanger.Exchange(f)
	for _, e := range types.Edges {
		if !m.Tile.IsBoundary(e) {
			continue
		}
		switch m.Kinds[e] {
		case types.BC_User:
			zeroGradient(f, e)
		case types.BC_Open:
			m.Open.Apply(f, e)
		}
	}
}

func (m *Manager) velocityBCs(v [3]*grid.Field, time float64) {
	for _, f := range v {
		m.exchanger.Exchange(f)
	}
	for _, e := range types.Edges {
		if !m.Tile.IsBoundary(e) {
			continue
		}
		switch m.Kinds[e] {
		case types.BC_User:
			if e == DrivenEdge && m.Driven {
				wall(v[0], e)
				wall(v[1], e)
				m.drive(v[2], time)
			} else {
				for _, f := range v {
					wall(f, e)
				}
			}
		case types.BC_Open:
			for _, f := range v {
				m.Open.Apply(f, e)
			}
		}
	}
}

// drive sets vz on the boundary vertex row and the ghost rows below it
func (m *Manager) drive(vz *grid.Field, time float64) {
	values := m.Spectrum().Evaluate(time, m.Driver.RiseTime)
	for j := -grid.Halo; j <= 0; j++ {
		for i := -grid.Halo; i <= vz.Nx+grid.Halo; i++ {
			vz.Set(i, j, values[i+grid.Halo])
		}
	}
}

// wall zeroes the boundary vertex layer and the ghost layers beyond it
func wall(f *grid.Field, e types.Edge) {
	switch e {
	case types.XMin:
		for i := -grid.Halo; i <= 0; i++ {
			zeroLayerX(f, i)
		}
	case types.XMax:
		for i := f.Nx; i <= f.Nx+grid.Halo; i++ {
			zeroLayerX(f, i)
		}
	case types.YMin:
		for j := -grid.Halo; j <= 0; j++ {
			zeroLayerY(f, j)
		}
	case types.YMax:
		for j := f.Ny; j <= f.Ny+grid.Halo; j++ {
			zeroLayerY(f, j)
		}
	}
}

/*
zeroGradient fills the two ghost layers of a field on a UserDefined edge. The
normal field component lives on the boundary face and is mirrored about it,
f(-1)=f(1), f(-2)=f(2). Everything else is copied from the two nearest
interior layers, f(0)=f(1), f(-1)=f(2). Max edges use the mirrored indices.
*/
func zeroGradient(f *grid.Field, e types.Edge) {
	var (
		mirror = f.Stagger != grid.Vertex && onBoundary(f.Stagger, e)
		nx, ny = f.Nx, f.Ny
	)
	switch e {
	case types.XMin:
		if mirror {
			copyLayerX(f, -1, 1)
			copyLayerX(f, -2, 2)
		} else {
			copyLayerX(f, 0, 1)
			copyLayerX(f, -1, 2)
		}
	case types.XMax:
		if mirror {
			copyLayerX(f, nx+1, nx-1)
			copyLayerX(f, nx+2, nx-2)
		} else {
			copyLayerX(f, nx+1, nx)
			copyLayerX(f, nx+2, nx-1)
		}
	case types.YMin:
		if mirror {
			copyLayerY(f, -1, 1)
			copyLayerY(f, -2, 2)
		} else {
			copyLayerY(f, 0, 1)
			copyLayerY(f, -1, 2)
		}
	case types.YMax:
		if mirror {
			copyLayerY(f, ny+1, ny-1)
			copyLayerY(f, ny+2, ny-2)
		} else {
			copyLayerY(f, ny+1, ny)
			copyLayerY(f, ny+2, ny-1)
		}
	}
}
