package delivery

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/logging"
)

// Pipeline runs the rate model and sampler over a set of node observations.
type Pipeline struct {
	model   *RateModel
	sampler *Sampler
	now     func() time.Time
}

// NewPipeline creates a pipeline. The sampler must not be shared with another
// pipeline running concurrently.
func NewPipeline(model *RateModel, sampler *Sampler) *Pipeline {
	return &Pipeline{model: model, sampler: sampler, now: time.Now}
}

// Run validates params, samples every client node in ascending index order and
// aggregates the results. Sink observations (node 0) are skipped.
func (p *Pipeline) Run(ctx context.Context, params config.RunParameters, obs []NodeObservation) (*Run, error) {
	log := logging.FromContext(ctx)
	if err := params.Validate(); err != nil {
		return nil, err
	}

	nodes, err := orderObservations(obs)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:        uuid.NewString(),
		Params:    params,
		Nodes:     make([]NodeResult, 0, len(nodes)),
		Timestamp: p.now().UTC(),
	}
	for _, o := range nodes {
		target := p.model.TargetRate(params.TransmitPowerMW, o.Node)
		received := p.sampler.Sample(o.Sent, target)
		res := NewNodeResult(o, target, received)
		run.Nodes = append(run.Nodes, res)
		log.Info("node sampled",
			"run_id", run.ID,
			"node", res.Node,
			"distance_m", res.DistanceM,
			"sent", res.Sent,
			"received", res.Received,
			"target_pct", res.TargetRate,
			"success_pct", fmt.Sprintf("%.2f", res.SuccessRate))
	}
	run.Aggregate = Accumulate(run.Nodes)
	log.Info("run complete",
		"run_id", run.ID,
		"power_mw", params.TransmitPowerMW,
		"total_sent", run.Aggregate.TotalSent,
		"total_received", run.Aggregate.TotalReceived,
		"success_pct", fmt.Sprintf("%.2f", run.Aggregate.SuccessRate))
	return run, nil
}

// orderObservations drops the sink and sorts clients by index, rejecting
// duplicates and negative counts.
func orderObservations(obs []NodeObservation) ([]NodeObservation, error) {
	nodes := make([]NodeObservation, 0, len(obs))
	for _, o := range obs {
		if o.Node == 0 {
			continue
		}
		if o.Node < 0 {
			return nil, &config.ConfigError{Field: "node", Reason: fmt.Sprintf("negative node index %d", o.Node)}
		}
		if o.Sent < 0 {
			return nil, &config.ConfigError{Field: "sent", Reason: fmt.Sprintf("node %d sent count %d is negative", o.Node, o.Sent)}
		}
		nodes = append(nodes, o)
	}
	slices.SortStableFunc(nodes, func(a, b NodeObservation) int { return cmp.Compare(a.Node, b.Node) })
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Node == nodes[i-1].Node {
			return nil, &config.ConfigError{Field: "node", Reason: fmt.Sprintf("duplicate node index %d", nodes[i].Node)}
		}
	}
	return nodes, nil
}
