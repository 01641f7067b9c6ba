package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tdeo-sim/internal/analysis"
	"tdeo-sim/internal/results"
)

var (
	compareInput   string
	compareSummary string
	compareStrict  bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a results CSV against the reference curve",
	Long:  "compare grades the mean success per power against the configured reference rates and acceptance limits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		input := compareInput
		if input == "" {
			input = cfg.ResultsPath
		}
		recs, err := results.ReadCSVFile(input)
		if err != nil {
			return err
		}
		c, err := analysis.Compare(recs, cfg.Reference, cfg.Acceptance)
		if err != nil {
			return err
		}
		printComparison(cmd.OutOrStdout(), c)

		if compareSummary != "" {
			f, err := os.Create(compareSummary)
			if err != nil {
				return &results.IOError{Op: "create", Path: compareSummary, Err: err}
			}
			if err := analysis.WriteSummary(f, c); err != nil {
				f.Close()
				return &results.IOError{Op: "write", Path: compareSummary, Err: err}
			}
			if err := f.Close(); err != nil {
				return &results.IOError{Op: "close", Path: compareSummary, Err: err}
			}
		}
		if compareStrict && c.Verdict == analysis.VerdictRejected {
			return fmt.Errorf("comparison rejected: average difference %.2f%%", c.AvgRelDiff)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareInput, "input", "", "Results CSV (defaults to the configured results path)")
	compareCmd.Flags().StringVar(&compareSummary, "summary", "", "Write the per-power comparison to this CSV")
	compareCmd.Flags().BoolVar(&compareStrict, "strict", false, "Exit non-zero when the comparison is rejected")
}

func printComparison(out io.Writer, c *analysis.Comparison) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Power(mW)\tMeasured(%)\tReference(%)\tDiff\tDiff(%)")
	for _, p := range c.Powers {
		fmt.Fprintf(tw, "%g\t%.2f\t%.2f\t%.2f\t%.2f\n", p.PowerMW, p.Measured, p.Reference, p.Difference, p.RelativeDifference)
	}
	tw.Flush()

	fmt.Fprintf(out, "\nAverage difference: %.2f%%\n", c.AvgRelDiff)
	fmt.Fprintf(out, "Maximum difference: %.2f%%\n", c.MaxRelDiff)
	for _, d := range c.Deviations {
		fmt.Fprintf(out, "Node %d at %g mW: %.2f%% vs %.2f%% (limit %.0f)\n",
			d.Node, d.PowerMW, d.Measured, d.Reference, c.Limits.MaxIndividualDifference)
	}
	fmt.Fprintf(out, "Verdict: %s\n", c.Verdict)
}
