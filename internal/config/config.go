// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Tier maps transmit powers up to MaxPowerMW (inclusive) to a base success rate.
// A nil MaxPowerMW makes the tier unbounded.
type Tier struct {
	MaxPowerMW *float64 `yaml:"max_power_mw,omitempty"`
	BaseRate   float64  `yaml:"base_rate"`
}

// Upper returns the inclusive upper bound of the tier.
func (t Tier) Upper() float64 {
	if t.MaxPowerMW == nil {
		return math.Inf(1)
	}
	return *t.MaxPowerMW
}

// RateModel configures the power/distance success model.
type RateModel struct {
	Tiers              []Tier  `yaml:"tiers"`
	AttenuationPerNode float64 `yaml:"attenuation_per_node"`
}

// Reference holds the expected per-node success rates for one power level.
type Reference struct {
	PowerMW float64   `yaml:"power_mw"`
	Success []float64 `yaml:"success"`
}

// Acceptance bounds the differences tolerated when comparing against the reference.
type Acceptance struct {
	MaxAvgDifference        float64 `yaml:"max_avg_difference"`
	MaxIndividualDifference float64 `yaml:"max_individual_difference"`
}

// RunConfig is the root configuration of a run or sweep.
type RunConfig struct {
	TransmitPowerMW float64     `yaml:"transmit_power_mw"`
	SimulationTimeS float64     `yaml:"simulation_time_s"`
	PingIntervalS   float64     `yaml:"ping_interval_s"`
	PacketSizeBytes int         `yaml:"packet_size_bytes"`
	ResultsPath     string      `yaml:"results_path"`
	Nodes           int         `yaml:"nodes"`
	ClientStartS    float64     `yaml:"client_start_s"`
	BaseDistanceM   float64     `yaml:"base_distance_m"`
	DistanceStepM   float64     `yaml:"distance_step_m"`
	Seed            uint64      `yaml:"seed"`
	Powers          []float64   `yaml:"powers"`
	RateModel       RateModel   `yaml:"rate_model"`
	Reference       []Reference `yaml:"reference"`
	Acceptance      Acceptance  `yaml:"acceptance"`
}

func bound(v float64) *float64 { return &v }

// Default returns the configuration of the reference experiment: a sink and
// four clients at 25..55 m sending one 64 byte echo per second for 600 s.
func Default() *RunConfig {
	return &RunConfig{
		TransmitPowerMW: 2.0,
		SimulationTimeS: 600,
		PingIntervalS:   1.0,
		PacketSizeBytes: 64,
		ResultsPath:     "results/csv/tdeo-simulated-omnet.csv",
		Nodes:           5,
		ClientStartS:    2.0,
		BaseDistanceM:   25,
		DistanceStepM:   10,
		Powers:          []float64{2, 5, 10, 15},
		RateModel: RateModel{
			Tiers: []Tier{
				{MaxPowerMW: bound(2), BaseRate: 30},
				{MaxPowerMW: bound(5), BaseRate: 55},
				{MaxPowerMW: bound(10), BaseRate: 80},
				{BaseRate: 95},
			},
			AttenuationPerNode: 0.1,
		},
		Reference: []Reference{
			{PowerMW: 2, Success: []float64{30.0, 27.5, 25.0, 22.5}},
			{PowerMW: 5, Success: []float64{55.0, 52.5, 50.0, 47.5}},
			{PowerMW: 10, Success: []float64{80.0, 77.5, 75.0, 72.5}},
			{PowerMW: 15, Success: []float64{95.0, 92.5, 90.0, 87.5}},
		},
		Acceptance: Acceptance{
			MaxAvgDifference:        15,
			MaxIndividualDifference: 25,
		},
	}
}

// Load reads a YAML config on top of Default and validates it. The file is
// checked against the CUE schema at cueSchemaPath, or the embedded schema
// when cueSchemaPath is empty.
func Load(configPath, cueSchemaPath string) (*RunConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Params returns the run parameters for a single run at powerMW.
func (c *RunConfig) Params(powerMW float64) RunParameters {
	return RunParameters{
		TransmitPowerMW: powerMW,
		SimulationTimeS: c.SimulationTimeS,
		PingIntervalS:   c.PingIntervalS,
		PacketSizeBytes: c.PacketSizeBytes,
		ResultsPath:     c.ResultsPath,
	}
}

// ReferenceFor returns the reference rates configured for powerMW.
func (c *RunConfig) ReferenceFor(powerMW float64) ([]float64, bool) {
	for _, r := range c.Reference {
		if r.PowerMW == powerMW {
			return r.Success, true
		}
	}
	return nil, false
}
