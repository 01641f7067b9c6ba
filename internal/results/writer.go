package results

import (
	"errors"
	"fmt"

	"tdeo-sim/internal/delivery"
)

// ResultWriter receives completed runs.
type ResultWriter interface {
	WriteRun(*delivery.Run) error
}

// IOError reports a failed file operation on a results file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// MultiWriter fans runs out to multiple writers.
type MultiWriter struct {
	writers []ResultWriter
}

// NewMultiWriter creates a new MultiWriter. Nil writers are skipped.
func NewMultiWriter(ws ...ResultWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range ws {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// WriteRun sends the run to every writer. A failing writer does not stop the
// others; all errors are returned joined.
func (mw *MultiWriter) WriteRun(run *delivery.Run) error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.WriteRun(run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteRuns writes runs in order, stopping at the first failing run.
func WriteRuns(w ResultWriter, runs []*delivery.Run) error {
	for _, r := range runs {
		if err := w.WriteRun(r); err != nil {
			return err
		}
	}
	return nil
}
