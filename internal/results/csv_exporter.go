package results

import (
	"cmp"
	"encoding/csv"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/delivery"
)

// Header is written once at the top of every results file.
var Header = []string{"Power(mW)", "Node", "Sent", "Received", "Success(%)", "Distance(m)", "Type"}

// TypeSimulated marks rows produced by the synthetic rate model.
const TypeSimulated = "SIMULATED"

// pathLocks serializes exports to the same path within the process.
var pathLocks sync.Map

func pathLock(path string) *sync.Mutex {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	mu, _ := pathLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// CSVExporter appends runs to a results CSV.
type CSVExporter struct {
	// Path overrides the results path of each run when set.
	Path string
}

// NewCSVExporter creates an exporter writing to path, or to each run's
// ResultsPath when path is empty.
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{Path: path}
}

// WriteRun appends the run's node rows.
func (e *CSVExporter) WriteRun(run *delivery.Run) error {
	path := e.Path
	if path == "" {
		path = run.Params.ResultsPath
	}
	return Export(path, run.Nodes, run.Params)
}

// Export appends one row per node to path in ascending node order, writing
// Header first when the file is empty. The whole sequence holds an exclusive
// lock on the file; it is released and the file closed on every return.
func Export(path string, rows []delivery.NodeResult, params config.RunParameters) (err error) {
	mu := pathLock(path)
	mu.Lock()
	defer mu.Unlock()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	unlock, err := lockFile(f)
	if err != nil {
		return &IOError{Op: "lock", Path: path, Err: err}
	}
	defer unlock()

	info, err := f.Stat()
	if err != nil {
		return &IOError{Op: "stat", Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b delivery.NodeResult) int { return cmp.Compare(a.Node, b.Node) })
	for _, r := range sorted {
		if err := w.Write(FormatRow(params.TransmitPowerMW, r)); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &IOError{Op: "flush", Path: path, Err: err}
	}
	return nil
}

// FormatRow renders a node result as a CSV record.
func FormatRow(powerMW float64, r delivery.NodeResult) []string {
	return []string{
		strconv.FormatFloat(powerMW, 'f', -1, 64),
		strconv.Itoa(r.Node),
		strconv.Itoa(r.Sent),
		strconv.Itoa(r.Received),
		strconv.FormatFloat(r.SuccessRate, 'f', 2, 64),
		strconv.FormatFloat(r.DistanceM, 'f', -1, 64),
		TypeSimulated,
	}
}
