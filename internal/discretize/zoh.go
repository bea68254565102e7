// Package discretize converts continuous transfer functions into
// discrete ones under a zero-order hold: the control signal is assumed
// constant between sample instants, matching a D/A converter holding its
// output over each period.
package discretize

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tanklab/tanksim/internal/lti"
)

// FirstOrder returns the continuous tank-level plant K/(tau*s + 1).
func FirstOrder(k, tau float64) lti.Model {
	m, err := lti.New([]float64{k}, []float64{tau, 1}, 0)
	if err != nil {
		panic(err)
	}
	return m
}

// ZOH discretizes a proper continuous transfer function with sample
// period T. The model is realized in controllable canonical state-space
// form, the augmented matrix [[A B],[0 0]] is exponentiated over one
// period, and the discrete (Ad, Bd) pair is reduced back to a transfer
// function. For the first-order plant K/(tau*s+1) this reproduces the
// closed form K(1-e^(-T/tau)) / (z - e^(-T/tau)).
func ZOH(m lti.Model, T float64) (lti.Model, error) {
	if T <= 0 {
		return lti.Model{}, fmt.Errorf("discretize: T=%g: %w", T, lti.ErrInvalidSamplePeriod)
	}
	if m.IsDiscrete() {
		return lti.Model{}, fmt.Errorf("discretize: model already discrete (T=%g)", m.SamplePeriod)
	}
	if !m.Proper() {
		return lti.Model{}, fmt.Errorf("discretize: %w", lti.ErrImproper)
	}

	norm := m.Normalize()
	den := lti.TrimLeading(norm.Den)
	n := len(den) - 1

	// Static gain: discretization is the identity.
	if n == 0 {
		return lti.New(norm.Num, []float64{1}, T)
	}

	a, b, c, d := canonical(norm.Num, den, n)
	ad, bd := holdEquivalent(a, b, n, T)
	num, denD := toTransferFunction(ad, bd, c, d, n)

	return lti.New(num, denD, T)
}

// canonical builds the controllable canonical realization of a proper,
// denominator-normalized transfer function of order n.
func canonical(num, den []float64, n int) (a *mat.Dense, b *mat.VecDense, c *mat.VecDense, d float64) {
	// Pad the numerator on the left to degree n.
	bPadded := make([]float64, n+1)
	copy(bPadded[n+1-len(num):], num)
	d = bPadded[0]

	a = mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		a.Set(0, j, -den[j+1])
	}
	for i := 1; i < n; i++ {
		a.Set(i, i-1, 1)
	}

	b = mat.NewVecDense(n, nil)
	b.SetVec(0, 1)

	c = mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		c.SetVec(j, bPadded[j+1]-den[j+1]*d)
	}
	return a, b, c, d
}

// holdEquivalent computes the discrete state matrices by exponentiating
// the augmented system matrix over one sample period.
func holdEquivalent(a *mat.Dense, b *mat.VecDense, n int, T float64) (*mat.Dense, *mat.VecDense) {
	aug := mat.NewDense(n+1, n+1, nil)
	aug.Slice(0, n, 0, n).(*mat.Dense).Copy(a)
	for i := 0; i < n; i++ {
		aug.Set(i, n, b.AtVec(i))
	}

	var expAug mat.Dense
	aug.Scale(T, aug)
	expAug.Exp(aug)

	ad := mat.DenseCopyOf(expAug.Slice(0, n, 0, n))
	bd := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		bd.SetVec(i, expAug.At(i, n))
	}
	return ad, bd
}

// toTransferFunction reduces (Ad, Bd, C, D) to numerator/denominator
// coefficients with the Faddeev-LeVerrier recursion: the denominator is
// the characteristic polynomial of Ad and the numerator follows from the
// adjugate expansion of (zI - Ad).
func toTransferFunction(ad *mat.Dense, bd, c *mat.VecDense, d float64, n int) (num, den []float64) {
	den = make([]float64, n+1)
	den[0] = 1

	markov := make([]float64, n)

	mk := identity(n)
	var am mat.Dense
	for k := 1; k <= n; k++ {
		markov[k-1] = bilinear(c, mk, bd)

		am.Mul(ad, mk)
		ck := -trace(&am) / float64(k)
		den[k] = ck

		mk.Copy(&am)
		for i := 0; i < n; i++ {
			mk.Set(i, i, mk.At(i, i)+ck)
		}
	}

	// num(z) = D*den(z) + sum_k (C M_k Bd) z^(n-1-k)
	num = make([]float64, n+1)
	for i := range den {
		num[i] = d * den[i]
	}
	for k, g := range markov {
		num[k+1] += g
	}
	return num, den
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func trace(m *mat.Dense) float64 {
	n, _ := m.Dims()
	t := 0.0
	for i := 0; i < n; i++ {
		t += m.At(i, i)
	}
	return t
}

func bilinear(c *mat.VecDense, m *mat.Dense, b *mat.VecDense) float64 {
	var mb mat.VecDense
	mb.MulVec(m, b)
	return mat.Dot(c, &mb)
}
