package delivery

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tdeo-sim/internal/config"
)

// SamplerFactory returns the sampler for the i-th run of a sweep.
type SamplerFactory func(i int) *Sampler

// Sweep runs the pipeline once per parameter set. Runs execute concurrently,
// each with its own sampler; the returned runs follow the order of params.
func Sweep(ctx context.Context, model *RateModel, params []config.RunParameters, obs []NodeObservation, newSampler SamplerFactory) ([]*Run, error) {
	for _, p := range params {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	runs := make([]*Run, len(params))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range params {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			run, err := NewPipeline(model, newSampler(i)).Run(gctx, p, obs)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
