package boundary

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PhaseSource is the random stream the bin phases are drawn from
type PhaseSource = rand.Source

// NewPhaseSource is the default seeded source, a PCG stream keyed by seed
func NewPhaseSource(seed uint64) PhaseSource {
	return rand.NewPCG(seed, seed)
}

const (
	DefaultNumBins = 1000
	SpectralIndex  = -5. / 6. // Amplitude goes as omega^SpectralIndex
)

/*
Spectrum is the multi-tone waveform used to drive vz on a boundary. Each bin
has a frequency, a phase and an amplitude. The tables are shaped bins x
columns to match the boundary's extent, but every column of a bin holds the
same phase and amplitude, so the drive is uniform along the boundary. The
tables are never written after construction and can be read concurrently.
*/
type Spectrum struct {
	NumBins, NCols   int
	Omega            []float64
	Phase, Amplitude *mat.Dense
}

func NewSpectrum(numBins, ncols int, minOmega, maxOmega, a0 float64, src PhaseSource) (sp *Spectrum, err error) {
	switch {
	case numBins < 1 || ncols < 1:
		err = fmt.Errorf("spectrum needs at least one bin and one column, have %d bins, %d columns",
			numBins, ncols)
		return
	case minOmega <= 0 || maxOmega < minOmega:
		err = fmt.Errorf("spectrum frequency range must satisfy 0 < min <= max, have [%g, %g]",
			minOmega, maxOmega)
		return
	case src == nil:
		err = fmt.Errorf("spectrum needs a phase source")
		return
	}
	sp = &Spectrum{
		NumBins:   numBins,
		NCols:     ncols,
		Omega:     make([]float64, numBins),
		Phase:     mat.NewDense(numBins, ncols, nil),
		Amplitude: mat.NewDense(numBins, ncols, nil),
	}
	phases := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
	if numBins == 1 {
		sp.Omega[0] = minOmega
	} else {
		floats.Span(sp.Omega, minOmega, maxOmega)
	}
	for b, omega := range sp.Omega {
		var (
			phase = phases.Rand()
			amp   = a0 * math.Pow(omega, SpectralIndex)
		)
		for c := 0; c < ncols; c++ {
			sp.Phase.Set(b, c, phase)
			sp.Amplitude.Set(b, c, amp)
		}
	}
	return
}

// Envelope is the startup ramp, rising smoothly from 0 at time 0 to 1 at riseTime
func Envelope(time, riseTime float64) float64 {
	if riseTime > 0 && time < riseTime {
		return 0.5 * (1. - math.Cos(math.Pi*time/riseTime))
	}
	return 1.
}

// Evaluate returns the drive for every column at the given time. It holds no
// state, repeated calls with the same arguments give the same values.
func (sp *Spectrum) Evaluate(time, riseTime float64) (v []float64) {
	v = make([]float64, sp.NCols)
	for b, omega := range sp.Omega {
		var (
			wt    = omega * time
			phase = sp.Phase.RawRowView(b)
			amp   = sp.Amplitude.RawRowView(b)
		)
		for c := range v {
			v[c] += amp[c] * math.Sin(wt+phase[c])
		}
	}
	if env := Envelope(time, riseTime); env != 1 {
		floats.Scale(env, v)
	}
	return
}
