// Package sim evaluates the exact time response of a discrete linear
// model to an input sequence by running its recursive difference
// equation. No integration scheme is involved: for a discrete system the
// recursion is the response.
package sim

import (
	"fmt"
	"math"

	"github.com/tanklab/tanksim/internal/lti"
)

// gridTol is the relative tolerance for matching time-grid spacing to
// the model sample period.
const gridTol = 1e-9

// Simulate computes the output of a discrete model for the given time
// grid and input sequence.
//
// The time grid must be strictly increasing with uniform spacing equal to
// the model's sample period, and as long as the input. The model is
// normalized so its leading denominator coefficient is one, then
//
//	y[n] = sum_k b[k]*u[n-k] - sum_{k>=1} a[k]*y[n-k]
//
// is evaluated in strict time order with zero history for negative
// indices. Outputs therefore depend only on already-computed earlier
// samples. Improper models would need future input samples to stay
// causal, so they are rejected with lti.ErrImproper rather than silently
// shifted.
func Simulate(m lti.Model, time, input []float64) (Trace, error) {
	if err := checkGrid(m, time, input); err != nil {
		return Trace{}, err
	}

	den := lti.TrimLeading(m.Den)
	num := lti.TrimLeading(m.Num)
	if len(num) > len(den) {
		return Trace{}, fmt.Errorf("sim: numerator degree %d above denominator degree %d: %w",
			len(num)-1, len(den)-1, lti.ErrImproper)
	}

	a0 := den[0]
	a := make([]float64, len(den))
	for i, v := range den {
		a[i] = v / a0
	}
	// Align the numerator to the denominator length; the left padding is
	// the relative degree (input delay) of the model.
	b := make([]float64, len(den))
	for i, v := range num {
		b[len(den)-len(num)+i] = v / a0
	}

	n := len(time)
	out := Trace{
		Time:   append([]float64(nil), time...),
		Input:  append([]float64(nil), input...),
		Output: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		y := 0.0
		for k := 0; k < len(b) && k <= i; k++ {
			y += b[k] * input[i-k]
		}
		for k := 1; k < len(a) && k <= i; k++ {
			y -= a[k] * out.Output[i-k]
		}
		out.Output[i] = y
	}

	return out, nil
}

func checkGrid(m lti.Model, time, input []float64) error {
	if !m.IsDiscrete() {
		return fmt.Errorf("sim: model is continuous: %w", lti.ErrTimeGridMismatch)
	}
	if len(time) == 0 {
		return fmt.Errorf("sim: empty time grid: %w", lti.ErrTimeGridMismatch)
	}
	if len(time) != len(input) {
		return fmt.Errorf("sim: %d time samples vs %d input samples: %w",
			len(time), len(input), lti.ErrTimeGridMismatch)
	}

	T := m.SamplePeriod
	tol := gridTol * math.Max(1, T)
	for i := 1; i < len(time); i++ {
		dt := time[i] - time[i-1]
		if dt <= 0 {
			return fmt.Errorf("sim: time grid not strictly increasing at index %d: %w", i, lti.ErrTimeGridMismatch)
		}
		if math.Abs(dt-T) > tol {
			return fmt.Errorf("sim: spacing %g at index %d, model period %g: %w", dt, i, T, lti.ErrTimeGridMismatch)
		}
	}
	return nil
}
