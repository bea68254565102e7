package metrics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tanklab/tanksim/internal/lti"
	"github.com/tanklab/tanksim/internal/metrics"
	"github.com/tanklab/tanksim/internal/sim"
)

func stepTrace(T float64, output []float64) sim.Trace {
	n := len(output)
	tr := sim.Trace{
		Time:   make([]float64, n),
		Input:  make([]float64, n),
		Output: output,
	}
	for i := range tr.Time {
		tr.Time[i] = float64(i) * T
		tr.Input[i] = 1
	}
	return tr
}

var _ = Describe("Step", func() {
	It("rejects an empty trace with a typed error", func() {
		_, err := metrics.Step(sim.Trace{}, metrics.DefaultOptions())
		Expect(err).To(MatchError(lti.ErrEmptyTrace))
	})

	It("reports final value and steady-state error from the last sample", func() {
		m, err := metrics.Step(stepTrace(1, []float64{0, 0.5, 0.9, 0.96}), metrics.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(m.FinalValue).To(BeNumerically("~", 0.96, 1e-12))
		Expect(m.SteadyStateError).To(BeNumerically("~", 0.04, 1e-12))
	})

	It("reports zero overshoot when the output never exceeds the reference", func() {
		m, err := metrics.Step(stepTrace(1, []float64{0, 0.5, 0.9, 0.99}), metrics.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(m.OvershootPercent).To(BeZero())
	})

	It("reports overshoot as a percentage of the reference", func() {
		m, err := metrics.Step(stepTrace(1, []float64{0, 0.8, 1.25, 1.0, 0.99}), metrics.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(m.OvershootPercent).To(BeNumerically("~", 25, 1e-9))
	})

	Describe("settling time", func() {
		It("finds the earliest sample of the in-band tail", func() {
			// Enters the 2% band at index 6 and stays there.
			out := []float64{0, 0.3, 0.6, 0.9, 1.1, 0.95, 0.99, 1.01, 1.0, 0.995}
			m, err := metrics.Step(stepTrace(2, out), metrics.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeTrue())
			Expect(m.SettlingTime).To(Equal(12.0))
		})

		It("is absent when the trace never reaches the band", func() {
			m, err := metrics.Step(stepTrace(1, []float64{0, 0.2, 0.4, 0.5}), metrics.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeFalse())
		})

		It("is absent when the last sample leaves the band again", func() {
			out := []float64{0, 0.99, 1.0, 1.0, 1.4}
			m, err := metrics.Step(stepTrace(1, out), metrics.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeFalse())
		})

		It("honors the bounded lookback window", func() {
			// Settles from index 1 onward, but a 3-sample window only sees
			// back to index 7.
			out := []float64{0, 1, 1, 1, 1, 1, 1, 1, 1, 1}
			opts := metrics.Options{SettlingWindow: 3, Band: 0.02}
			m, err := metrics.Step(stepTrace(1, out), opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeTrue())
			Expect(m.SettlingTime).To(Equal(7.0))
		})

		It("can settle at t=0 when the whole trace is in band", func() {
			out := []float64{1, 1, 1}
			m, err := metrics.Step(stepTrace(1, out), metrics.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeTrue())
			Expect(m.SettlingTime).To(Equal(0.0))
		})
	})
})

var _ = Describe("Ramp", func() {
	It("rejects an empty trace with a typed error", func() {
		_, err := metrics.Ramp(sim.Trace{})
		Expect(err).To(MatchError(lti.ErrEmptyTrace))
	})

	It("reports the final tracking error", func() {
		tr := sim.Trace{
			Time:   []float64{0, 1, 2},
			Input:  []float64{0, 0.1, 0.2},
			Output: []float64{0, 0.05, 0.17},
		}
		m, err := metrics.Ramp(tr)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.VelocityError).To(BeNumerically("~", 0.03, 1e-12))
	})
})

var _ = Describe("MaxEffort", func() {
	It("rejects an empty trace with a typed error", func() {
		_, err := metrics.MaxEffort(sim.Trace{})
		Expect(err).To(MatchError(lti.ErrEmptyTrace))
	})

	It("returns the largest absolute output", func() {
		tr := sim.Trace{
			Time:   []float64{0, 1, 2},
			Input:  []float64{1, 1, 1},
			Output: []float64{0.5, -2.5, 1.5},
		}
		v, err := metrics.MaxEffort(tr)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(2.5))
	})
})
