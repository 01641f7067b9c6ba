package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/delivery"
	"tdeo-sim/internal/results"
)

type collectWriter struct{ runs []*delivery.Run }

func (c *collectWriter) WriteRun(r *delivery.Run) error {
	c.runs = append(c.runs, r)
	return nil
}

func testConfig(t *testing.T) *config.RunConfig {
	t.Helper()
	cfg := config.Default()
	cfg.ResultsPath = filepath.Join(t.TempDir(), "csv", "results.csv")
	cfg.Seed = 11
	return cfg
}

func TestRunOnceReferenceScenario(t *testing.T) {
	cfg := testConfig(t)
	collected := &collectWriter{}
	w := results.NewMultiWriter(results.NewCSVExporter(""), collected)

	run, err := runOnce(context.Background(), cfg, w)
	if err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if len(collected.runs) != 1 || collected.runs[0] != run {
		t.Fatalf("run not forwarded to writer")
	}

	data, err := os.ReadFile(cfg.ResultsPath)
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d: %q", len(lines), lines)
	}
	if lines[0] != strings.Join(results.Header, ",") {
		t.Errorf("header = %q", lines[0])
	}
	for i, dist := range []string{"25", "35", "45", "55"} {
		fields := strings.Split(lines[i+1], ",")
		if fields[0] != "2" || fields[1] != string(rune('1'+i)) || fields[2] != "598" || fields[5] != dist || fields[6] != "SIMULATED" {
			t.Errorf("row %d = %q", i+1, lines[i+1])
		}
	}
}

type failingWriter struct{}

func (failingWriter) WriteRun(*delivery.Run) error { return errors.New("disk full") }

func TestRunOnceKeepsStatisticsOnExportFailure(t *testing.T) {
	cfg := testConfig(t)
	run, err := runOnce(context.Background(), cfg, failingWriter{})
	if err == nil {
		t.Fatalf("expected export error")
	}
	if run == nil || run.Aggregate.TotalSent != 4*598 {
		t.Fatalf("expected in-memory statistics despite failure, got %+v", run)
	}
}

func TestRunOnceRejectsInvalidPower(t *testing.T) {
	cfg := testConfig(t)
	cfg.TransmitPowerMW = -2
	w := &collectWriter{}
	if _, err := runOnce(context.Background(), cfg, w); err == nil {
		t.Fatalf("expected configuration error")
	}
	if len(w.runs) != 0 {
		t.Errorf("writer called for invalid run")
	}
	if _, err := os.Stat(cfg.ResultsPath); !os.IsNotExist(err) {
		t.Errorf("results file created for invalid run")
	}
}

func TestRunSweepOrdersPowers(t *testing.T) {
	cfg := testConfig(t)
	cfg.Powers = []float64{15, 2, 10, 5, 2}
	w := results.NewCSVExporter("")
	runs, err := runSweep(context.Background(), cfg, w)
	if err != nil {
		t.Fatalf("runSweep: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}
	recs, err := results.ReadCSVFile(cfg.ResultsPath)
	if err != nil {
		t.Fatalf("ReadCSVFile: %v", err)
	}
	if len(recs) != 16 {
		t.Fatalf("expected 16 records, got %d", len(recs))
	}
	want := []float64{2, 5, 10, 15}
	for i, r := range recs {
		if r.PowerMW != want[i/4] || r.Node != i%4+1 {
			t.Errorf("record %d = %+v", i, r)
		}
	}
}

func TestAnalyzeAndCompareCommands(t *testing.T) {
	cfg := testConfig(t)
	cfg.Powers = []float64{2, 5, 10, 15}
	if _, err := runSweep(context.Background(), cfg, results.NewCSVExporter("")); err != nil {
		t.Fatalf("runSweep: %v", err)
	}

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"analyze", "--input", cfg.ResultsPath, "--log-level", "error"})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out.String(), "16 records loaded") || !strings.Contains(out.String(), "By node:") {
		t.Errorf("unexpected analyze output:\n%s", out.String())
	}

	out.Reset()
	summary := filepath.Join(t.TempDir(), "summary.csv")
	rootCmd.SetArgs([]string{"compare", "--input", cfg.ResultsPath, "--summary", summary, "--log-level", "error"})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(out.String(), "Verdict: accepted") {
		t.Errorf("unexpected compare output:\n%s", out.String())
	}
	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if n := strings.Count(strings.TrimSpace(string(data)), "\n"); n != 4 {
		t.Errorf("summary has %d data rows, want 4", n)
	}
}
