package main

import (
	"context"

	"github.com/spf13/cobra"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/delivery"
	"tdeo-sim/internal/logging"
	"tdeo-sim/internal/network"
	"tdeo-sim/internal/results"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Emulate one run at a single transmit power",
	Long:  "run samples every client node at --power and appends the rows to the results CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		printOnly, _ := cmd.Flags().GetBool("print-only")
		writer, err := newWriters(printOnly)
		if err != nil {
			return err
		}
		_, err = runOnce(cmd.Context(), cfg, writer)
		return err
	},
}

func init() {
	runCmd.Flags().Float64("power", 0, "Transmit power in mW")
	addRunFlags(runCmd)
}

// observations asks the echo harness stand-in for the client observations.
func observations(cfg *config.RunConfig) []delivery.NodeObservation {
	topo, sched := network.FromConfig(cfg)
	return topo.Observations(sched.SentPerClient())
}

// samplerFor returns the sampler of the i-th run: seeded runs use seed+i.
func samplerFor(cfg *config.RunConfig) delivery.SamplerFactory {
	return func(i int) *delivery.Sampler {
		if cfg.Seed == 0 {
			return delivery.NewEntropySampler()
		}
		return delivery.NewSeededSampler(cfg.Seed + uint64(i))
	}
}

// runOnce executes the pipeline at cfg.TransmitPowerMW and hands the run to w.
// The run is returned even when writing fails.
func runOnce(ctx context.Context, cfg *config.RunConfig, w results.ResultWriter) (*delivery.Run, error) {
	log := logging.FromContext(ctx)
	model := delivery.RateModelFromConfig(cfg.RateModel)
	p := delivery.NewPipeline(model, samplerFor(cfg)(0))
	run, err := p.Run(ctx, cfg.Params(cfg.TransmitPowerMW), observations(cfg))
	if err != nil {
		return nil, err
	}
	if err := w.WriteRun(run); err != nil {
		log.Error("export failed", "run_id", run.ID, "results", cfg.ResultsPath, "err", err)
		return run, err
	}
	log.Info("results saved", "run_id", run.ID, "results", cfg.ResultsPath)
	return run, nil
}
