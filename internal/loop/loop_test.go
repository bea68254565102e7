package loop

import (
	"errors"
	"math"
	"testing"

	"github.com/tanklab/tanksim/internal/lti"
)

func discrete(t *testing.T, num, den []float64, T float64) lti.Model {
	t.Helper()
	m, err := lti.New(num, den, T)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSeriesMultipliesPolynomials(t *testing.T) {
	a := discrete(t, []float64{1, 2}, []float64{1, -1}, 0.1)
	b := discrete(t, []float64{3}, []float64{1, 0}, 0.1)

	s, err := Series(a, b)
	if err != nil {
		t.Fatal(err)
	}

	wantNum := []float64{3, 6}
	wantDen := []float64{1, -1, 0}
	for i := range wantNum {
		if s.Num[i] != wantNum[i] {
			t.Errorf("num = %v, want %v", s.Num, wantNum)
			break
		}
	}
	for i := range wantDen {
		if s.Den[i] != wantDen[i] {
			t.Errorf("den = %v, want %v", s.Den, wantDen)
			break
		}
	}
}

// Closed-loop denominator must equal den(C)*den(G) + num(C)*num(G) after
// degree alignment.
func TestCloseDenominatorIdentity(t *testing.T) {
	c := discrete(t, []float64{0.5, -0.3, 0.1}, []float64{1, -1, 0}, 2)
	g := discrete(t, []float64{0.8}, []float64{1, -0.2}, 2)

	cl, err := Close(c, g)
	if err != nil {
		t.Fatal(err)
	}

	want := lti.PolyAdd(lti.PolyMul(c.Den, g.Den), lti.PolyMul(c.Num, g.Num))
	if len(cl.Den) != len(want) {
		t.Fatalf("den = %v, want %v", cl.Den, want)
	}
	for i := range want {
		if math.Abs(cl.Den[i]-want[i]) > 1e-15 {
			t.Errorf("den = %v, want %v", cl.Den, want)
			break
		}
	}

	wantNum := lti.PolyMul(c.Num, g.Num)
	for i := range wantNum {
		if cl.Num[i] != wantNum[i] {
			t.Errorf("num = %v, want %v", cl.Num, wantNum)
			break
		}
	}
}

// At z=1 the closed loop of an integrating controller has unit gain:
// den(1) = num(1) since the open-loop denominator vanishes there.
func TestCloseIntegratorDCGain(t *testing.T) {
	c := discrete(t, []float64{0.3, -0.25, 0.05}, []float64{1, -1, 0}, 1)
	g := discrete(t, []float64{0.4}, []float64{1, -0.6}, 1)

	cl, err := Close(c, g)
	if err != nil {
		t.Fatal(err)
	}
	if gain := cl.DCGain(); math.Abs(gain-1) > 1e-12 {
		t.Errorf("closed-loop DC gain = %v, want 1", gain)
	}
}

func TestCloseSampleRateMismatch(t *testing.T) {
	c := discrete(t, []float64{1}, []float64{1, -1}, 1)
	g := discrete(t, []float64{1}, []float64{1, -0.5}, 2)

	_, err := Close(c, g)
	if !errors.Is(err, lti.ErrSampleRateMismatch) {
		t.Errorf("got %v, want ErrSampleRateMismatch", err)
	}

	cont, _ := lti.New([]float64{1}, []float64{1, 1}, 0)
	_, err = Close(c, cont)
	if !errors.Is(err, lti.ErrSampleRateMismatch) {
		t.Errorf("continuous plant: got %v, want ErrSampleRateMismatch", err)
	}
}
