package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tdeo-sim/internal/analysis"
	"tdeo-sim/internal/results"
)

var analyzeInput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize a results CSV per power and per node",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := analyzeInput
		if input == "" {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			input = cfg.ResultsPath
		}
		recs, err := results.ReadCSVFile(input)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), input, analysis.Analyze(recs))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "Results CSV (defaults to the configured results path)")
}

func printReport(out io.Writer, input string, rep analysis.Report) {
	fmt.Fprintf(out, "%d records loaded from %s\n\n", rep.Records, input)

	fmt.Fprintln(out, "By transmit power:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Power(mW)\tRows\tMean(%)\tStdDev\tMin\tMedian\tMax\tOverall(%)\tReceived/Sent")
	for _, p := range rep.Powers {
		fmt.Fprintf(tw, "%g\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d/%d\n",
			p.PowerMW, p.Rows, p.MeanSuccess, p.StdDevSuccess, p.MinSuccess, p.MedianSuccess, p.MaxSuccess,
			p.OverallSuccess, p.TotalReceived, p.TotalSent)
	}
	tw.Flush()

	fmt.Fprintln(out, "\nBy node:")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Node\tRows\tMean(%)")
	for _, n := range rep.Nodes {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\n", n.Node, n.Rows, n.MeanSuccess)
	}
	tw.Flush()
}
