package lti

import "fmt"

// Model is a single-input single-output transfer function. Coefficients
// are ordered highest power first. SamplePeriod zero denotes a
// continuous-time model, any positive value a discrete-time one.
type Model struct {
	Num          []float64
	Den          []float64
	SamplePeriod float64
}

// New builds a model after validating the denominator and sample period.
// The coefficient slices are copied so callers cannot mutate the model
// afterwards.
func New(num, den []float64, samplePeriod float64) (Model, error) {
	if samplePeriod < 0 {
		return Model{}, fmt.Errorf("lti: period %g: %w", samplePeriod, ErrInvalidSamplePeriod)
	}
	if !hasNonZero(den) {
		return Model{}, ErrZeroDenominator
	}
	return Model{
		Num:          clonePoly(num),
		Den:          clonePoly(den),
		SamplePeriod: samplePeriod,
	}, nil
}

// IsDiscrete reports whether the model has a positive sample period.
func (m Model) IsDiscrete() bool { return m.SamplePeriod > 0 }

// Order returns the denominator degree with leading zeros ignored.
func (m Model) Order() int {
	return len(TrimLeading(m.Den)) - 1
}

// Proper reports whether the numerator degree does not exceed the
// denominator degree, leading zeros ignored.
func (m Model) Proper() bool {
	return len(TrimLeading(m.Num)) <= len(TrimLeading(m.Den))
}

// Normalize returns an equivalent model whose denominator has a leading
// coefficient of one.
func (m Model) Normalize() Model {
	den := TrimLeading(m.Den)
	a0 := den[0]
	out := Model{
		Num:          make([]float64, len(m.Num)),
		Den:          make([]float64, len(den)),
		SamplePeriod: m.SamplePeriod,
	}
	for i, v := range m.Num {
		out.Num[i] = v / a0
	}
	for i, v := range den {
		out.Den[i] = v / a0
	}
	return out
}

// Eval evaluates num(x)/den(x) by Horner's rule. For a discrete model,
// Eval(1) is the DC gain; for a continuous one, Eval(0).
func (m Model) Eval(x float64) float64 {
	return polyEval(m.Num, x) / polyEval(m.Den, x)
}

// DCGain returns the steady-state gain of the model: the transfer
// function evaluated at z=1 (discrete) or s=0 (continuous).
func (m Model) DCGain() float64 {
	if m.IsDiscrete() {
		return m.Eval(1)
	}
	return m.Eval(0)
}

// PolyMul returns the product of two coefficient polynomials.
func PolyMul(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// PolyAdd returns the sum of two coefficient polynomials, aligning the
// shorter one on the right (padding with leading zeros).
func PolyAdd(a, b []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i, v := range a {
		out[n-len(a)+i] += v
	}
	for i, v := range b {
		out[n-len(b)+i] += v
	}
	return out
}

// TrimLeading strips leading zero coefficients, keeping at least one
// element.
func TrimLeading(p []float64) []float64 {
	i := 0
	for i < len(p)-1 && p[i] == 0 {
		i++
	}
	return p[i:]
}

func polyEval(p []float64, x float64) float64 {
	v := 0.0
	for _, c := range p {
		v = v*x + c
	}
	return v
}

func clonePoly(p []float64) []float64 {
	c := make([]float64, len(p))
	copy(c, p)
	return c
}

func hasNonZero(p []float64) bool {
	for _, v := range p {
		if v != 0 {
			return true
		}
	}
	return false
}
