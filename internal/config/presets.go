package config

import "sort"

// presets are named, ready-to-run scenarios.
var presets = map[string]*Config{
	// The level-control tank with stabilized PID gains.
	"tank": DefaultConfig(),

	// Same tank sampled across a range of periods.
	"tank-sweep": {
		Plant:          PlantConfig{K: DefaultK, Tau: DefaultTau},
		Gains:          GainsConfig{Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd},
		SamplePeriods:  []float64{63, 126, 252, 504},
		Horizon:        DefaultHorizon,
		Reference:      "step",
		StepAmplitude:  DefaultAmplitude,
		RampSlope:      DefaultSlope,
		SettlingWindow: DefaultWindow,
	},

	// Tank tracking the slow filling ramp.
	"tank-ramp": {
		Plant:          PlantConfig{K: DefaultK, Tau: DefaultTau},
		Gains:          GainsConfig{Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd},
		SamplePeriods:  []float64{DefaultPeriod},
		Horizon:        DefaultHorizon,
		Reference:      "ramp",
		StepAmplitude:  DefaultAmplitude,
		RampSlope:      DefaultSlope,
		SettlingWindow: DefaultWindow,
	},

	// A fast unit plant for quick experiments.
	"demo": {
		Plant:          PlantConfig{K: 1, Tau: 1},
		Gains:          GainsConfig{Kp: 1, Ki: 0.5, Kd: 0},
		SamplePeriods:  []float64{0.1},
		Horizon:        50,
		Reference:      "step",
		StepAmplitude:  1,
		RampSlope:      0.1,
		SettlingWindow: DefaultWindow,
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.SamplePeriods = append([]float64(nil), p.SamplePeriods...)
	return &cp
}

// ListPresets returns the preset names in stable order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
