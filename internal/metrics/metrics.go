// Package metrics derives performance figures from simulation traces:
// settling time, overshoot and steady-state error for step references,
// velocity error for ramps, and peak control effort.
package metrics

import (
	"fmt"
	"math"

	"github.com/tanklab/tanksim/internal/lti"
	"github.com/tanklab/tanksim/internal/sim"
)

// Options tunes metric extraction.
type Options struct {
	// SettlingWindow bounds the backward scan for the settling instant to
	// the last N samples of the trace. A loop that truly settles before
	// the window may still be reported as not settled; the bound is kept
	// deliberately rather than scanning the whole trace.
	SettlingWindow int

	// Band is the settling tolerance as a fraction of the final reference
	// value.
	Band float64
}

// DefaultOptions matches the conventional 2% band over a 100-sample
// lookback.
func DefaultOptions() Options {
	return Options{SettlingWindow: 100, Band: 0.02}
}

// StepMetrics summarizes a step response.
type StepMetrics struct {
	FinalValue       float64
	SteadyStateError float64
	OvershootPercent float64
	SettlingTime     float64
	Settled          bool
	MaxEffort        float64
}

// RampMetrics summarizes ramp tracking.
type RampMetrics struct {
	VelocityError float64
	MaxEffort     float64
}

// Step computes step-response metrics from a closed-loop trace, whose
// input column is the reference signal. MaxEffort is left zero; callers
// holding the controller trace fill it via MaxEffort.
func Step(tr sim.Trace, opts Options) (StepMetrics, error) {
	if tr.Len() == 0 {
		return StepMetrics{}, fmt.Errorf("metrics: step: %w", lti.ErrEmptyTrace)
	}
	if opts.SettlingWindow <= 0 || opts.Band <= 0 {
		opts = DefaultOptions()
	}

	last := tr.Len() - 1
	finalRef := tr.Input[last]

	m := StepMetrics{
		FinalValue:       tr.Output[last],
		SteadyStateError: finalRef - tr.Output[last],
	}

	maxOut := tr.Output[0]
	for _, v := range tr.Output {
		if v > maxOut {
			maxOut = v
		}
	}
	if over := maxOut - finalRef; over > 0 {
		if finalRef != 0 {
			m.OvershootPercent = over / math.Abs(finalRef) * 100
		} else {
			m.OvershootPercent = over * 100
		}
	}

	m.SettlingTime, m.Settled = settlingTime(tr, finalRef, opts)
	return m, nil
}

// settlingTime scans backward over the lookback window for the earliest
// sample after which the output stays inside the tolerance band through
// the end of the trace. A trace whose last sample is outside the band
// never settles, regardless of earlier excursions into it.
func settlingTime(tr sim.Trace, finalRef float64, opts Options) (float64, bool) {
	tol := opts.Band * math.Abs(finalRef)
	if finalRef == 0 {
		tol = opts.Band
	}

	lo := tr.Len() - opts.SettlingWindow
	if lo < 0 {
		lo = 0
	}

	settled := -1
	for i := tr.Len() - 1; i >= lo; i-- {
		if math.Abs(tr.Output[i]-finalRef) > tol {
			break
		}
		settled = i
	}
	if settled < 0 {
		return 0, false
	}
	return tr.Time[settled], true
}

// Ramp computes ramp-tracking metrics. The final reference-output
// difference approximates the velocity error of the loop.
func Ramp(tr sim.Trace) (RampMetrics, error) {
	if tr.Len() == 0 {
		return RampMetrics{}, fmt.Errorf("metrics: ramp: %w", lti.ErrEmptyTrace)
	}
	last := tr.Len() - 1
	return RampMetrics{VelocityError: tr.Input[last] - tr.Output[last]}, nil
}

// MaxEffort returns the largest absolute controller output over a trace.
func MaxEffort(effort sim.Trace) (float64, error) {
	if effort.Len() == 0 {
		return 0, fmt.Errorf("metrics: effort: %w", lti.ErrEmptyTrace)
	}
	max := 0.0
	for _, v := range effort.Output {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max, nil
}
