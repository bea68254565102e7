package sim

import "math"

// Trace is the result of one simulation: aligned time, input and output
// sequences of equal length. For closed-loop runs the input column is the
// reference signal; for controller-effort runs it is the tracking error.
type Trace struct {
	Time   []float64
	Input  []float64
	Output []float64
}

// Len returns the number of samples in the trace.
func (t Trace) Len() int { return len(t.Time) }

// IsValid reports whether every output sample is finite.
func (t Trace) IsValid() bool {
	for _, v := range t.Output {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Error returns the elementwise input-output difference, the tracking
// error for a closed-loop trace.
func (t Trace) Error() []float64 {
	e := make([]float64, t.Len())
	for i := range e {
		e[i] = t.Input[i] - t.Output[i]
	}
	return e
}
