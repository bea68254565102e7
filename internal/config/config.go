package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultK         = 1855.0
	DefaultTau       = 3787.0
	DefaultKp        = 0.01
	DefaultKi        = 0.000005
	DefaultKd        = 0.0020
	DefaultPeriod    = 126.0
	DefaultHorizon   = 20000.0
	DefaultAmplitude = 1.0
	DefaultSlope     = 0.0001
	DefaultWindow    = 100
)

// Config is the yaml-facing description of a simulation campaign: one
// plant, one controller, and a list of sample periods to sweep.
type Config struct {
	Plant          PlantConfig `yaml:"plant"`
	Gains          GainsConfig `yaml:"gains"`
	SamplePeriods  []float64   `yaml:"sample_periods"`
	Horizon        float64     `yaml:"horizon"`
	Reference      string      `yaml:"reference"`
	StepAmplitude  float64     `yaml:"step_amplitude"`
	RampSlope      float64     `yaml:"ramp_slope"`
	SettlingWindow int         `yaml:"settling_window"`
}

type PlantConfig struct {
	K   float64 `yaml:"k"`
	Tau float64 `yaml:"tau"`
}

type GainsConfig struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

// DefaultConfig returns the reference tank-level scenario.
func DefaultConfig() *Config {
	return &Config{
		Plant:          PlantConfig{K: DefaultK, Tau: DefaultTau},
		Gains:          GainsConfig{Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd},
		SamplePeriods:  []float64{DefaultPeriod},
		Horizon:        DefaultHorizon,
		Reference:      "step",
		StepAmplitude:  DefaultAmplitude,
		RampSlope:      DefaultSlope,
		SettlingWindow: DefaultWindow,
	}
}

// Load reads a yaml config over the defaults, so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
