package discretize

import (
	"errors"
	"math"
	"testing"

	"github.com/tanklab/tanksim/internal/lti"
)

func TestZOHInvalidPeriod(t *testing.T) {
	plant := FirstOrder(1, 1)

	for _, T := range []float64{0, -1} {
		_, err := ZOH(plant, T)
		if !errors.Is(err, lti.ErrInvalidSamplePeriod) {
			t.Errorf("T=%g: got %v, want ErrInvalidSamplePeriod", T, err)
		}
	}
}

func TestZOHRejectsDiscreteModel(t *testing.T) {
	m, _ := lti.New([]float64{1}, []float64{1, -0.5}, 0.1)
	if _, err := ZOH(m, 0.1); err == nil {
		t.Error("expected error for already-discrete model")
	}
}

func TestZOHRejectsImproper(t *testing.T) {
	m, _ := lti.New([]float64{1, 0, 0}, []float64{1, 1}, 0)
	_, err := ZOH(m, 1)
	if !errors.Is(err, lti.ErrImproper) {
		t.Errorf("got %v, want ErrImproper", err)
	}
}

// The first-order plant has a known hold-equivalent closed form:
// numerator K(1-e^(-T/tau)), denominator [1, -e^(-T/tau)].
func TestZOHFirstOrderClosedForm(t *testing.T) {
	tests := []struct {
		name   string
		k, tau float64
		T      float64
	}{
		{"tank", 1855, 3787, 126},
		{"unit", 1, 1, 0.1},
		{"slow sampling", 2, 0.5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disc, err := ZOH(FirstOrder(tt.k, tt.tau), tt.T)
			if err != nil {
				t.Fatal(err)
			}

			alpha := math.Exp(-tt.T / tt.tau)
			num := lti.TrimLeading(disc.Num)
			den := lti.TrimLeading(disc.Den)

			if len(num) != 1 || len(den) != 2 {
				t.Fatalf("unexpected shape: num=%v den=%v", disc.Num, disc.Den)
			}
			if math.Abs(num[0]-tt.k*(1-alpha)) > 1e-9*tt.k {
				t.Errorf("num = %v, want %v", num[0], tt.k*(1-alpha))
			}
			if math.Abs(den[0]-1) > 1e-12 {
				t.Errorf("den leading = %v, want 1", den[0])
			}
			// Discrete pole at e^(-T/tau).
			if math.Abs(den[1]+alpha) > 1e-9 {
				t.Errorf("pole = %v, want %v", -den[1], alpha)
			}
			if disc.SamplePeriod != tt.T {
				t.Errorf("sample period = %v, want %v", disc.SamplePeriod, tt.T)
			}
		})
	}
}

// ZOH preserves the DC gain of the continuous model.
func TestZOHPreservesDCGain(t *testing.T) {
	tests := []struct {
		name string
		m    lti.Model
		T    float64
	}{
		{"first order", FirstOrder(1855, 3787), 126},
		{"second order", mustModel(t, []float64{2}, []float64{1, 3, 2}, 0), 0.05},
		{"second order with zero", mustModel(t, []float64{1, 4}, []float64{1, 2, 8}, 0), 0.01},
		{"third order", mustModel(t, []float64{5}, []float64{1, 6, 11, 6}, 0), 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disc, err := ZOH(tt.m, tt.T)
			if err != nil {
				t.Fatal(err)
			}
			want := tt.m.DCGain()
			got := disc.DCGain()
			if math.Abs(got-want) > 1e-6*math.Abs(want) {
				t.Errorf("DC gain = %v, want %v", got, want)
			}
		})
	}
}

func TestZOHStaticGain(t *testing.T) {
	m := mustModel(t, []float64{3}, []float64{2}, 0)
	disc, err := ZOH(m, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(disc.DCGain()-1.5) > 1e-12 {
		t.Errorf("static gain = %v, want 1.5", disc.DCGain())
	}
}

// A biproper model (equal numerator and denominator degree) exercises the
// direct-feedthrough term.
func TestZOHBiproper(t *testing.T) {
	// (s+2)/(s+1): DC gain 2, feedthrough 1.
	m := mustModel(t, []float64{1, 2}, []float64{1, 1}, 0)
	disc, err := ZOH(m, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(disc.DCGain()-2) > 1e-9 {
		t.Errorf("DC gain = %v, want 2", disc.DCGain())
	}
	num := lti.TrimLeading(disc.Num)
	den := lti.TrimLeading(disc.Den)
	if len(num) != len(den) {
		t.Errorf("biproper model lost feedthrough: num=%v den=%v", num, den)
	}
}

func mustModel(t *testing.T, num, den []float64, T float64) lti.Model {
	t.Helper()
	m, err := lti.New(num, den, T)
	if err != nil {
		t.Fatal(err)
	}
	return m
}
