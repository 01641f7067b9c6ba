package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tdeo-sim/internal/logging"
	"tdeo-sim/internal/results"
)

var (
	replayInput     string
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a results CSV into the configured sinks",
	Long:  "replay reads an existing results file and feeds its runs to STDOUT and, if configured, GreptimeDB.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := dbWriter(replayPrintOnly)
		if err != nil {
			return err
		}
		w := results.NewMultiWriter(results.NewStdoutWriter(), db)
		n, err := results.ReplayCSVFile(replayInput, cfg.Params(cfg.TransmitPowerMW), w)
		if err != nil {
			return err
		}
		logging.FromContext(cmd.Context()).Info("replay complete", "input", replayInput, "runs", n)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to results CSV")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print runs to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
