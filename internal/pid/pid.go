// Package pid synthesizes the discrete positional-form PID controller
//
//	C(z) = (b0 + b1 z^-1 + b2 z^-2) / (1 - z^-1)
//
// from continuous gains and a sample period. The integral term is
// discretized with the trapezoidal rule and the derivative term with a
// backward difference, a robust and common digital PID form.
package pid

import (
	"fmt"

	"github.com/tanklab/tanksim/internal/lti"
)

// Gains holds the continuous PID gains.
type Gains struct {
	Kp float64
	Ki float64
	Kd float64
}

// derivativeTapLimit bounds the backward-difference tap Kd/T before the
// controller is flagged as ill-conditioned. The growth of b2 as T shrinks
// is a property of the design, so it is reported, never rejected.
const derivativeTapLimit = 1e6

// Synthesize returns the discrete PID transfer function for the given
// gains and sample period T. The denominator is fixed at [1, -1, 0],
// the factor (1 - z^-1): a digital integrator placing a pole at z=1 for
// true integral action.
func Synthesize(g Gains, T float64) (lti.Model, error) {
	if T <= 0 {
		return lti.Model{}, fmt.Errorf("pid: T=%g: %w", T, lti.ErrInvalidSamplePeriod)
	}

	b0 := g.Kp + g.Ki*T/2 + g.Kd/T
	b1 := -g.Kp + g.Ki*T/2 - 2*g.Kd/T
	b2 := g.Kd / T

	return lti.New([]float64{b0, b1, b2}, []float64{1, -1, 0}, T)
}

// ConditioningNote reports a human-readable warning when the derivative
// tap Kd/T is large enough to dominate the numerator, and whether the
// warning applies.
func ConditioningNote(g Gains, T float64) (string, bool) {
	if T <= 0 {
		return "", false
	}
	tap := g.Kd / T
	if tap > derivativeTapLimit || tap < -derivativeTapLimit {
		return fmt.Sprintf("derivative tap Kd/T = %.3g exceeds %.0e; controller is ill-conditioned at this sample period", tap, float64(derivativeTapLimit)), true
	}
	return "", false
}
