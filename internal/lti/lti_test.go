package lti

import (
	"errors"
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		num     []float64
		den     []float64
		period  float64
		wantErr error
	}{
		{"valid continuous", []float64{1}, []float64{1, 1}, 0, nil},
		{"valid discrete", []float64{1}, []float64{1, -0.5}, 0.1, nil},
		{"negative period", []float64{1}, []float64{1}, -1, ErrInvalidSamplePeriod},
		{"empty denominator", []float64{1}, nil, 0, ErrZeroDenominator},
		{"zero denominator", []float64{1}, []float64{0, 0}, 0, ErrZeroDenominator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.num, tt.den, tt.period)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCopiesCoefficients(t *testing.T) {
	num := []float64{2}
	den := []float64{1, 1}
	m, err := New(num, den, 0)
	if err != nil {
		t.Fatal(err)
	}
	num[0] = 99
	den[0] = 99
	if m.Num[0] != 2 || m.Den[0] != 1 {
		t.Error("model shares coefficient storage with caller")
	}
}

func TestPolyMul(t *testing.T) {
	tests := []struct {
		a, b, want []float64
	}{
		{[]float64{1, 1}, []float64{1, 1}, []float64{1, 2, 1}},
		{[]float64{2}, []float64{1, -3}, []float64{2, -6}},
		{[]float64{1, 0, -1}, []float64{1}, []float64{1, 0, -1}},
	}

	for _, tt := range tests {
		got := PolyMul(tt.a, tt.b)
		if len(got) != len(tt.want) {
			t.Fatalf("PolyMul(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("PolyMul(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
				break
			}
		}
	}
}

func TestPolyAddAlignment(t *testing.T) {
	got := PolyAdd([]float64{1, 2, 3}, []float64{5})
	want := []float64{1, 2, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PolyAdd = %v, want %v", got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	m, _ := New([]float64{4}, []float64{2, 2}, 0)
	n := m.Normalize()
	if n.Den[0] != 1 || n.Den[1] != 1 || n.Num[0] != 2 {
		t.Errorf("Normalize = %v / %v", n.Num, n.Den)
	}
	if m.Den[0] != 2 {
		t.Error("Normalize mutated the receiver")
	}
}

func TestDCGain(t *testing.T) {
	// K/(tau s + 1) has DC gain K.
	cont, _ := New([]float64{1855}, []float64{3787, 1}, 0)
	if g := cont.DCGain(); math.Abs(g-1855) > 1e-9 {
		t.Errorf("continuous DC gain = %v, want 1855", g)
	}

	// 0.5/(z - 0.5) has DC gain 1 at z=1.
	disc, _ := New([]float64{0.5}, []float64{1, -0.5}, 1)
	if g := disc.DCGain(); math.Abs(g-1) > 1e-12 {
		t.Errorf("discrete DC gain = %v, want 1", g)
	}
}

func TestProperAndOrder(t *testing.T) {
	m, _ := New([]float64{0, 0, 1}, []float64{1, 2}, 0)
	if !m.Proper() {
		t.Error("leading-zero numerator should count as proper")
	}
	if m.Order() != 1 {
		t.Errorf("Order = %d, want 1", m.Order())
	}

	im, _ := New([]float64{1, 0, 0}, []float64{1, 2}, 0)
	if im.Proper() {
		t.Error("degree-2 over degree-1 should be improper")
	}
}
