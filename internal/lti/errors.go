package lti

import "errors"

// Domain errors for model construction, composition and simulation.
var (
	// ErrInvalidSamplePeriod indicates a non-positive sample period.
	ErrInvalidSamplePeriod = errors.New("lti: sample period must be positive")

	// ErrSampleRateMismatch indicates an attempt to compose models with
	// different sample periods.
	ErrSampleRateMismatch = errors.New("lti: sample rate mismatch")

	// ErrTimeGridMismatch indicates a simulation time grid that is empty,
	// not strictly increasing, or spaced differently from the model's
	// sample period.
	ErrTimeGridMismatch = errors.New("lti: time grid inconsistent with model")

	// ErrEmptyTrace indicates metrics were requested on a zero-length trace.
	ErrEmptyTrace = errors.New("lti: trace has no samples")

	// ErrZeroDenominator indicates an empty or identically zero denominator.
	ErrZeroDenominator = errors.New("lti: denominator is empty or zero")

	// ErrImproper indicates a numerator degree above the denominator degree
	// where a proper transfer function is required.
	ErrImproper = errors.New("lti: improper transfer function")
)
