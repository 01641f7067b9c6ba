package main

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/delivery"
	"tdeo-sim/internal/logging"
	"tdeo-sim/internal/results"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Emulate one run per configured transmit power",
	Long:  "sweep runs every power in the configuration (or --powers) and appends them in ascending power order.",
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
		_, err = runSweep(cmd.Context(), cfg, writer)
		return err
	},
}

func init() {
	sweepCmd.Flags().Float64Slice("powers", nil, "Transmit powers in mW (e.g. 2,5,10,15)")
	addRunFlags(sweepCmd)
}

func runSweep(ctx context.Context, cfg *config.RunConfig, w results.ResultWriter) ([]*delivery.Run, error) {
	log := logging.FromContext(ctx)
	powers := slices.Clone(cfg.Powers)
	slices.Sort(powers)
	powers = slices.Compact(powers)

	params := make([]config.RunParameters, len(powers))
	for i, p := range powers {
		params[i] = cfg.Params(p)
	}
	log.Info("starting sweep", "powers", powers, "results", cfg.ResultsPath)

	model := delivery.RateModelFromConfig(cfg.RateModel)
	runs, err := delivery.Sweep(ctx, model, params, observations(cfg), samplerFor(cfg))
	if err != nil {
		return nil, err
	}
	if err := results.WriteRuns(w, runs); err != nil {
		log.Error("export failed", "results", cfg.ResultsPath, "err", err)
		return runs, err
	}
	log.Info("sweep complete", "runs", len(runs), "results", cfg.ResultsPath)
	return runs, nil
}
