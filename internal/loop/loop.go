// Package loop composes discrete controller and plant models into a
// unity-feedback closed loop at the polynomial-coefficient level.
package loop

import (
	"fmt"

	"github.com/tanklab/tanksim/internal/lti"
)

// Series returns the open-loop product of two discrete models sharing
// the same sample period.
func Series(a, b lti.Model) (lti.Model, error) {
	if err := checkRates(a, b); err != nil {
		return lti.Model{}, err
	}
	return lti.New(lti.PolyMul(a.Num, b.Num), lti.PolyMul(a.Den, b.Den), a.SamplePeriod)
}

// Close combines a controller and plant under unity negative feedback:
//
//	T(z) = C*G / (1 + C*G)
//
// The closed-loop numerator is the open-loop numerator; the closed-loop
// denominator is the degree-aligned sum of open-loop denominator and
// numerator.
func Close(controller, plant lti.Model) (lti.Model, error) {
	open, err := Series(controller, plant)
	if err != nil {
		return lti.Model{}, err
	}
	return lti.New(open.Num, lti.PolyAdd(open.Den, open.Num), open.SamplePeriod)
}

func checkRates(a, b lti.Model) error {
	if !a.IsDiscrete() || !b.IsDiscrete() {
		return fmt.Errorf("loop: both models must be discrete (T=%g, T=%g): %w",
			a.SamplePeriod, b.SamplePeriod, lti.ErrSampleRateMismatch)
	}
	if a.SamplePeriod != b.SamplePeriod {
		return fmt.Errorf("loop: T=%g vs T=%g: %w",
			a.SamplePeriod, b.SamplePeriod, lti.ErrSampleRateMismatch)
	}
	return nil
}
