// Package refsig generates the reference sequences the closed loop is
// asked to track: a constant step or a constant-slope ramp on a uniform
// sample grid.
package refsig

import (
	"fmt"

	"github.com/tanklab/tanksim/internal/lti"
)

// Kind names a reference signal shape.
type Kind string

const (
	Step Kind = "step"
	Ramp Kind = "ramp"
)

// Valid reports whether k names a known reference shape.
func (k Kind) Valid() bool { return k == Step || k == Ramp }

// Grid returns the uniform time vector 0, T, 2T, ... up to but excluding
// the horizon.
func Grid(T, horizon float64) ([]float64, error) {
	if T <= 0 {
		return nil, fmt.Errorf("refsig: T=%g: %w", T, lti.ErrInvalidSamplePeriod)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("refsig: horizon must be positive, got %g", horizon)
	}
	n := int(horizon / T)
	if float64(n)*T < horizon {
		n++
	}
	g := make([]float64, n)
	for i := range g {
		g[i] = float64(i) * T
	}
	return g, nil
}

// StepSignal returns a constant reference of the given amplitude.
func StepSignal(n int, amplitude float64) []float64 {
	u := make([]float64, n)
	for i := range u {
		u[i] = amplitude
	}
	return u
}

// RampSignal returns slope*t evaluated on the time grid.
func RampSignal(time []float64, slope float64) []float64 {
	u := make([]float64, len(time))
	for i, t := range time {
		u[i] = slope * t
	}
	return u
}

// Generate builds the reference for a kind on a time grid. Step uses the
// amplitude, ramp the slope.
func Generate(k Kind, time []float64, amplitude, slope float64) ([]float64, error) {
	switch k {
	case Step:
		return StepSignal(len(time), amplitude), nil
	case Ramp:
		return RampSignal(time, slope), nil
	default:
		return nil, fmt.Errorf("refsig: unknown reference kind %q", k)
	}
}
