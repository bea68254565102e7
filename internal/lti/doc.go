// Package lti provides the transfer-function model shared by every stage
// of the simulation pipeline.
//
// A [Model] holds numerator and denominator polynomial coefficients,
// highest order first, plus a sample period (zero means continuous time):
//
//   - continuous plant: lti.Model{Num: []float64{K}, Den: []float64{tau, 1}}
//   - discrete model: produced by discretize.ZOH or pid.Synthesize
//
// Models are treated as immutable once constructed; operations that
// transform a model return a new one. The package also defines the
// sentinel errors used across the pipeline and the small polynomial
// algebra (multiply, degree-aligned add) that loop composition is built
// from.
package lti
