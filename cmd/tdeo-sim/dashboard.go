package main

import (
	"os"

	"github.com/spf13/cobra"

	"tdeo-sim/internal/dashboard"
	"tdeo-sim/internal/logging"
	"tdeo-sim/internal/results"
)

var dashboardOut string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render Grafana dashboards for the GreptimeDB results table",
	Long:  "dashboard writes Grafana JSON for GREPTIMEDB_TABLE (default delivery_results) using GREPTIMEDB_DATASOURCE_UID.",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := os.Getenv("GREPTIMEDB_TABLE")
		if table == "" {
			table = results.DefaultGreptimeTable
		}
		if err := dashboard.Render(dashboardOut, dashboard.Options{Table: table}); err != nil {
			return err
		}
		logging.FromContext(cmd.Context()).Info("dashboards rendered", "out", dashboardOut, "table", table)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "build", "Output directory")
	rootCmd.AddCommand(dashboardCmd)
}
