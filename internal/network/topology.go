// Static star topology and echo schedule feeding the delivery pipeline
package network

import (
	"math"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/delivery"
)

// Topology places client nodes on a line away from the sink at node 0.
type Topology struct {
	Nodes         int
	BaseDistanceM float64
	DistanceStepM float64
}

// EchoSchedule describes the client echo traffic of one run.
type EchoSchedule struct {
	DurationS    float64
	IntervalS    float64
	ClientStartS float64
}

// FromConfig returns the topology and schedule described by cfg.
func FromConfig(cfg *config.RunConfig) (Topology, EchoSchedule) {
	return Topology{
			Nodes:         cfg.Nodes,
			BaseDistanceM: cfg.BaseDistanceM,
			DistanceStepM: cfg.DistanceStepM,
		}, EchoSchedule{
			DurationS:    cfg.SimulationTimeS,
			IntervalS:    cfg.PingIntervalS,
			ClientStartS: cfg.ClientStartS,
		}
}

// Distance returns the distance of a client from the sink.
func (t Topology) Distance(node int) float64 {
	return t.BaseDistanceM + float64(node-1)*t.DistanceStepM
}

// Observations returns one observation per client node (1..Nodes-1), each
// having sent the same number of packets.
func (t Topology) Observations(sent int) []delivery.NodeObservation {
	if t.Nodes < 2 {
		return nil
	}
	obs := make([]delivery.NodeObservation, 0, t.Nodes-1)
	for i := 1; i < t.Nodes; i++ {
		obs = append(obs, delivery.NodeObservation{
			Node:      i,
			DistanceM: t.Distance(i),
			Sent:      sent,
		})
	}
	return obs
}

// SentPerClient returns the echoes a client sends: one per interval from
// ClientStartS until DurationS (exclusive), capped at DurationS/IntervalS.
func (e EchoSchedule) SentPerClient() int {
	if e.IntervalS <= 0 || e.DurationS <= e.ClientStartS {
		return 0
	}
	maxPackets := math.Floor(e.DurationS / e.IntervalS)
	window := math.Ceil((e.DurationS-e.ClientStartS)/e.IntervalS - 1e-9)
	return int(math.Min(maxPackets, window))
}
