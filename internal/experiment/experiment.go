// Package experiment orchestrates one closed-loop simulation run:
// discretize the plant, synthesize the controller, close the loop,
// simulate the reference response and the control effort, and extract
// performance metrics. A run is a pure function of its config; no state
// survives between runs.
package experiment

import (
	"context"
	"fmt"

	"github.com/tanklab/tanksim/internal/discretize"
	"github.com/tanklab/tanksim/internal/loop"
	"github.com/tanklab/tanksim/internal/lti"
	"github.com/tanklab/tanksim/internal/metrics"
	"github.com/tanklab/tanksim/internal/pid"
	"github.com/tanklab/tanksim/internal/refsig"
	"github.com/tanklab/tanksim/internal/sim"
)

// PlantParams describes the first-order tank plant K/(tau*s + 1).
type PlantParams struct {
	K   float64
	Tau float64
}

// Config fully determines a run.
type Config struct {
	Plant          PlantParams
	Gains          pid.Gains
	SamplePeriod   float64
	Horizon        float64
	Reference      refsig.Kind
	StepAmplitude  float64
	RampSlope      float64
	SettlingWindow int
}

// Result carries everything a consumer (report, plot, store) needs.
type Result struct {
	Config     Config
	Plant      lti.Model // discrete
	Controller lti.Model
	ClosedLoop lti.Model

	Output sim.Trace // closed-loop response; Input column is the reference
	Effort sim.Trace // controller alone driven by the tracking error

	Step *metrics.StepMetrics
	Ramp *metrics.RampMetrics

	// Warning is a non-fatal conditioning note from PID synthesis.
	Warning string
}

// Metrics flattens the run's metrics into a name-value map for storage
// and reporting. Settling time is present only when the loop settled.
func (r *Result) Metrics() map[string]float64 {
	m := make(map[string]float64)
	switch {
	case r.Step != nil:
		m["final_value"] = r.Step.FinalValue
		m["steady_state_error"] = r.Step.SteadyStateError
		m["overshoot_percent"] = r.Step.OvershootPercent
		m["max_effort"] = r.Step.MaxEffort
		if r.Step.Settled {
			m["settling_time"] = r.Step.SettlingTime
		}
	case r.Ramp != nil:
		m["velocity_error"] = r.Ramp.VelocityError
		m["max_effort"] = r.Ramp.MaxEffort
	}
	return m
}

// Run executes one simulation run. Precondition failures in any stage
// abort this run only; callers sweeping several sample periods treat each
// run as independently failable.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plant, err := discretize.ZOH(discretize.FirstOrder(cfg.Plant.K, cfg.Plant.Tau), cfg.SamplePeriod)
	if err != nil {
		return nil, fmt.Errorf("experiment: plant: %w", err)
	}

	controller, err := pid.Synthesize(cfg.Gains, cfg.SamplePeriod)
	if err != nil {
		return nil, fmt.Errorf("experiment: controller: %w", err)
	}

	closed, err := loop.Close(controller, plant)
	if err != nil {
		return nil, fmt.Errorf("experiment: close loop: %w", err)
	}

	grid, err := refsig.Grid(cfg.SamplePeriod, cfg.Horizon)
	if err != nil {
		return nil, fmt.Errorf("experiment: grid: %w", err)
	}
	ref, err := refsig.Generate(cfg.Reference, grid, cfg.StepAmplitude, cfg.RampSlope)
	if err != nil {
		return nil, fmt.Errorf("experiment: reference: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := sim.Simulate(closed, grid, ref)
	if err != nil {
		return nil, fmt.Errorf("experiment: response: %w", err)
	}

	// Control effort: the controller alone driven by ref - y.
	effort, err := sim.Simulate(controller, grid, output.Error())
	if err != nil {
		return nil, fmt.Errorf("experiment: effort: %w", err)
	}

	res := &Result{
		Config:     cfg,
		Plant:      plant,
		Controller: controller,
		ClosedLoop: closed,
		Output:     output,
		Effort:     effort,
	}
	if note, warn := pid.ConditioningNote(cfg.Gains, cfg.SamplePeriod); warn {
		res.Warning = note
	}

	maxEffort, err := metrics.MaxEffort(effort)
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	switch cfg.Reference {
	case refsig.Step:
		opts := metrics.DefaultOptions()
		if cfg.SettlingWindow > 0 {
			opts.SettlingWindow = cfg.SettlingWindow
		}
		sm, err := metrics.Step(output, opts)
		if err != nil {
			return nil, fmt.Errorf("experiment: %w", err)
		}
		sm.MaxEffort = maxEffort
		res.Step = &sm
	case refsig.Ramp:
		rm, err := metrics.Ramp(output)
		if err != nil {
			return nil, fmt.Errorf("experiment: %w", err)
		}
		rm.MaxEffort = maxEffort
		res.Ramp = &rm
	}

	return res, nil
}

func validate(cfg Config) error {
	if cfg.Plant.Tau <= 0 {
		return fmt.Errorf("experiment: time constant must be positive, got %g", cfg.Plant.Tau)
	}
	if cfg.SamplePeriod <= 0 {
		return fmt.Errorf("experiment: T=%g: %w", cfg.SamplePeriod, lti.ErrInvalidSamplePeriod)
	}
	if cfg.Horizon <= 0 {
		return fmt.Errorf("experiment: horizon must be positive, got %g", cfg.Horizon)
	}
	if !cfg.Reference.Valid() {
		return fmt.Errorf("experiment: unknown reference kind %q", cfg.Reference)
	}
	return nil
}

// SweepItem is the outcome of one sample period in a sweep.
type SweepItem struct {
	SamplePeriod float64
	Result       *Result
	Err          error
}

// Sweep runs the same configuration once per sample period. A failing
// period records its error and the sweep continues with the rest.
func Sweep(ctx context.Context, cfg Config, periods []float64) []SweepItem {
	items := make([]SweepItem, 0, len(periods))
	for _, T := range periods {
		runCfg := cfg
		runCfg.SamplePeriod = T
		res, err := Run(ctx, runCfg)
		items = append(items, SweepItem{SamplePeriod: T, Result: res, Err: err})
	}
	return items
}
