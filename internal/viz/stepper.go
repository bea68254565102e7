package viz

import (
	"github.com/tanklab/tanksim/internal/lti"
)

// stepper advances a discrete model one sample at a time, for the live
// viewer. It runs the same normalized difference equation as the batch
// simulator, keeping its own input/output history.
type stepper struct {
	b, a []float64
	u, y []float64
}

func newStepper(m lti.Model) *stepper {
	den := lti.TrimLeading(m.Den)
	num := lti.TrimLeading(m.Num)
	a0 := den[0]

	a := make([]float64, len(den))
	for i, v := range den {
		a[i] = v / a0
	}
	b := make([]float64, len(den))
	if len(num) <= len(den) {
		for i, v := range num {
			b[len(den)-len(num)+i] = v / a0
		}
	}
	return &stepper{b: b, a: a}
}

func (s *stepper) step(u float64) float64 {
	s.u = append(s.u, u)
	n := len(s.u) - 1

	y := 0.0
	for k := 0; k < len(s.b) && k <= n; k++ {
		y += s.b[k] * s.u[n-k]
	}
	for k := 1; k < len(s.a) && k <= n; k++ {
		y -= s.a[k] * s.y[n-k]
	}
	s.y = append(s.y, y)
	return y
}

func (s *stepper) reset() {
	s.u = s.u[:0]
	s.y = s.y[:0]
}
