package main

import (
	"os"

	"tdeo-sim/internal/results"
)

// newWriters builds the result sinks: the CSV exporter and the STDOUT summary,
// plus GreptimeDB when GREPTIMEDB_ENDPOINT is set and printOnly is false.
func newWriters(printOnly bool) (results.ResultWriter, error) {
	base := []results.ResultWriter{results.NewCSVExporter(""), results.NewStdoutWriter()}
	extra, err := dbWriter(printOnly)
	if err != nil {
		return nil, err
	}
	return results.NewMultiWriter(append(base, extra)...), nil
}

// dbWriter returns the GreptimeDB sink, or nil when it is disabled.
func dbWriter(printOnly bool) (results.ResultWriter, error) {
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if printOnly || endpoint == "" {
		return nil, nil
	}
	w, err := results.NewGreptimeDBWriter(endpoint, os.Getenv("GREPTIMEDB_DATABASE"), os.Getenv("GREPTIMEDB_TABLE"))
	if err != nil {
		return nil, err
	}
	return w, nil
}
