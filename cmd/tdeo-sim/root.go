package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/logging"
)

var (
	configPath string
	schemaPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "tdeo-sim",
	Short: "Synthetic packet delivery emulator",
	Long: "tdeo-sim reproduces the per-node delivery statistics of the reference OMNeT++ study " +
		"through per-packet trials and appends them to a CSV comparable across platforms.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		l := logging.New(os.Stderr, level)
		slog.SetDefault(l)
		cmd.SetContext(logging.NewContext(cmd.Context(), l))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to run configuration YAML (defaults built in)")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to CUE schema file (embedded schema if empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadConfig reads --config, or the built-in defaults when it is empty, and
// applies the command line overrides that were set on cmd.
func loadConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath, schemaPath)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Lookup("power") != nil && flags.Changed("power") {
		cfg.TransmitPowerMW, _ = flags.GetFloat64("power")
	}
	if flags.Lookup("sim-time") != nil && flags.Changed("sim-time") {
		cfg.SimulationTimeS, _ = flags.GetFloat64("sim-time")
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		cfg.PingIntervalS, _ = flags.GetFloat64("interval")
	}
	if flags.Lookup("results") != nil && flags.Changed("results") {
		cfg.ResultsPath, _ = flags.GetString("results")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Lookup("powers") != nil && flags.Changed("powers") {
		cfg.Powers, _ = flags.GetFloat64Slice("powers")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addRunFlags registers the overrides shared by run and sweep.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("sim-time", 0, "Simulation time in seconds")
	cmd.Flags().Float64("interval", 0, "Interval between echoes in seconds")
	cmd.Flags().String("results", "", "Results CSV file")
	cmd.Flags().Uint64("seed", 0, "Random seed (0 draws from entropy)")
	cmd.Flags().Bool("print-only", false, "Skip the GreptimeDB sink even when GREPTIMEDB_ENDPOINT is set")
}
