package MHD2D

import "github.com/notargets/gomhd/grid"

// Predictor produces the half step velocity (and may advance bx, by) ahead of the remap
type Predictor interface {
	Predict(fs *grid.FieldSet, dt float64)
}

// Kinematic freezes the flow, the half step velocity is the current velocity
type Kinematic struct{}

func (Kinematic) Predict(fs *grid.FieldSet, dt float64) {
	v := fs.Velocity()
	for n, f := range fs.Predictor() {
		f.CopyFrom(v[n])
	}
}
