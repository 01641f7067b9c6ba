// Delivery statistics produced by one emulated run
package delivery

import (
	"time"

	"tdeo-sim/internal/config"
)

// NodeObservation is what the echo harness reports for one client node.
type NodeObservation struct {
	Node      int     `json:"node"`
	DistanceM float64 `json:"distance_m"`
	Sent      int     `json:"sent"`
}

// NodeResult is a NodeObservation after sampling.
type NodeResult struct {
	NodeObservation
	TargetRate  float64 `json:"target_pct"`
	Received    int     `json:"received"`
	SuccessRate float64 `json:"success_pct"`
}

// AggregateResult sums the node results of one run.
type AggregateResult struct {
	TotalSent     int     `json:"total_sent"`
	TotalReceived int     `json:"total_received"`
	SuccessRate   float64 `json:"success_pct"`
}

// Run bundles the parameters and results of one pipeline pass.
type Run struct {
	ID        string               `json:"run_id"`
	Params    config.RunParameters `json:"params"`
	Nodes     []NodeResult         `json:"nodes"`
	Aggregate AggregateResult      `json:"aggregate"`
	Timestamp time.Time            `json:"ts"`
}
