package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
transmit_power_mw: 5
simulation_time_s: 120
results_path: out.csv
rate_model:
  attenuation_per_node: 0.05
  tiers:
    - max_power_mw: 3
      base_rate: 40
    - base_rate: 90
`)
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.TransmitPowerMW != 5 || cfg.SimulationTimeS != 120 || cfg.ResultsPath != "out.csv" {
		t.Errorf("unexpected run values: %+v", cfg)
	}
	if cfg.PingIntervalS != 1.0 || cfg.Nodes != 5 {
		t.Errorf("defaults not kept: interval=%v nodes=%d", cfg.PingIntervalS, cfg.Nodes)
	}
	if len(cfg.RateModel.Tiers) != 2 || cfg.RateModel.Tiers[1].MaxPowerMW != nil {
		t.Errorf("unexpected tiers: %+v", cfg.RateModel.Tiers)
	}
	if cfg.RateModel.AttenuationPerNode != 0.05 {
		t.Errorf("attenuation = %v, want 0.05", cfg.RateModel.AttenuationPerNode)
	}
}

func TestLoadConfig_RepositoryDefault(t *testing.T) {
	cfg, err := Load("../../config/run.yaml", "")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(cfg.Powers) != 4 || len(cfg.Reference) != 4 {
		t.Errorf("unexpected sweep config: %+v", cfg)
	}
	ref, ok := cfg.ReferenceFor(10)
	if !ok || ref[0] != 80 {
		t.Errorf("reference for 10 mW = %v, %v", ref, ok)
	}
}

func TestLoadConfig_SchemaRejects(t *testing.T) {
	cases := map[string]string{
		"negative power": "transmit_power_mw: -1\n",
		"unknown field":  "colour: blue\n",
		"rate above 100": "rate_model:\n  tiers:\n    - base_rate: 120\n",
		"single node":    "nodes: 1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body), ""); err == nil {
				t.Fatalf("expected schema error")
			}
		})
	}
}

func TestLoadConfig_SchemaFile(t *testing.T) {
	path := writeConfig(t, "transmit_power_mw: 2\n")
	if _, err := Load(path, filepath.Join(t.TempDir(), "missing.cue")); err == nil {
		t.Fatalf("expected error for missing schema file")
	}
	if _, err := Load(path, "run.cue"); err != nil {
		t.Fatalf("Load() with explicit schema: %v", err)
	}
}

func TestRunParametersValidate(t *testing.T) {
	ok := Default().Params(2)
	if err := ok.Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	cases := []struct {
		field  string
		mutate func(*RunParameters)
	}{
		{"transmit_power_mw", func(p *RunParameters) { p.TransmitPowerMW = 0 }},
		{"simulation_time_s", func(p *RunParameters) { p.SimulationTimeS = -600 }},
		{"ping_interval_s", func(p *RunParameters) { p.PingIntervalS = 0 }},
		{"packet_size_bytes", func(p *RunParameters) { p.PacketSizeBytes = 0 }},
		{"results_path", func(p *RunParameters) { p.ResultsPath = "" }},
	}
	for _, tc := range cases {
		p := ok
		tc.mutate(&p)
		err := p.Validate()
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: expected ConfigError, got %v", tc.field, err)
		}
		if cerr.Field != tc.field {
			t.Errorf("field = %s, want %s", cerr.Field, tc.field)
		}
	}
}

func TestRateModelValidate(t *testing.T) {
	m := Default().RateModel
	if err := m.Validate(); err != nil {
		t.Fatalf("default model invalid: %v", err)
	}
	m.Tiers = []Tier{{MaxPowerMW: bound(5), BaseRate: 50}, {MaxPowerMW: bound(2), BaseRate: 30}}
	if err := m.Validate(); err == nil {
		t.Errorf("expected error for descending tiers")
	}
	m.Tiers = []Tier{{BaseRate: 50}, {BaseRate: 60}}
	if err := m.Validate(); err == nil {
		t.Errorf("expected error for tier after unbounded tier")
	}
	m.Tiers = nil
	if err := m.Validate(); err == nil {
		t.Errorf("expected error for empty tiers")
	}
}
