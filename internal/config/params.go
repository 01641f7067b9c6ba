package config

import "fmt"

// RunParameters are fixed for the duration of one run.
type RunParameters struct {
	TransmitPowerMW float64 `json:"transmit_power_mw"`
	SimulationTimeS float64 `json:"simulation_time_s"`
	PingIntervalS   float64 `json:"ping_interval_s"`
	PacketSizeBytes int     `json:"packet_size_bytes"`
	ResultsPath     string  `json:"results_path"`
}

// Validate rejects non-positive numeric parameters. Defaults are never substituted.
func (p RunParameters) Validate() error {
	if !(p.TransmitPowerMW > 0) {
		return &ConfigError{Field: "transmit_power_mw", Reason: fmt.Sprintf("must be positive, got %g", p.TransmitPowerMW)}
	}
	if !(p.SimulationTimeS > 0) {
		return &ConfigError{Field: "simulation_time_s", Reason: fmt.Sprintf("must be positive, got %g", p.SimulationTimeS)}
	}
	if !(p.PingIntervalS > 0) {
		return &ConfigError{Field: "ping_interval_s", Reason: fmt.Sprintf("must be positive, got %g", p.PingIntervalS)}
	}
	if p.PacketSizeBytes <= 0 {
		return &ConfigError{Field: "packet_size_bytes", Reason: fmt.Sprintf("must be positive, got %d", p.PacketSizeBytes)}
	}
	if p.ResultsPath == "" {
		return &ConfigError{Field: "results_path", Reason: "must not be empty"}
	}
	return nil
}
