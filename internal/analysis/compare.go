package analysis

import (
	"cmp"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/results"
)

// Verdict grades a comparison against the reference curve.
type Verdict string

const (
	VerdictAccepted Verdict = "accepted"
	VerdictMarginal Verdict = "marginal"
	VerdictRejected Verdict = "rejected"
)

// PowerComparison compares mean node success at one power.
type PowerComparison struct {
	PowerMW            float64
	Measured           float64
	Reference          float64
	Difference         float64
	RelativeDifference float64
}

// NodeDeviation is a node whose success differs from the reference by more
// than the individual limit.
type NodeDeviation struct {
	PowerMW    float64
	Node       int
	Measured   float64
	Reference  float64
	Difference float64
}

// Comparison is the result of Compare.
type Comparison struct {
	Powers     []PowerComparison
	AvgRelDiff float64
	MaxRelDiff float64
	Deviations []NodeDeviation
	Verdict    Verdict
	Limits     config.Acceptance
}

// ErrNoOverlap is returned when no measured power has a reference curve.
var ErrNoOverlap = errors.New("no measured power has reference data")

// Compare grades measured records against reference curves. Only powers
// present in both are compared.
func Compare(records []results.Record, refs []config.Reference, limits config.Acceptance) (*Comparison, error) {
	rep := Analyze(records)
	perNode := MeanSuccess(records)

	c := &Comparison{Limits: limits}
	var rel []float64
	for _, ps := range rep.Powers {
		ref, ok := findReference(refs, ps.PowerMW)
		if !ok || len(ref.Success) == 0 {
			continue
		}
		pc := PowerComparison{
			PowerMW:   ps.PowerMW,
			Measured:  ps.MeanSuccess,
			Reference: stats.Mean(ref.Success),
		}
		pc.Difference = pc.Measured - pc.Reference
		if pc.Reference != 0 {
			pc.RelativeDifference = pc.Difference / pc.Reference * 100
		}
		c.Powers = append(c.Powers, pc)
		rel = append(rel, math.Abs(pc.RelativeDifference))

		for i, want := range ref.Success {
			got, ok := perNode[ps.PowerMW][i+1]
			if !ok {
				continue
			}
			if d := got - want; math.Abs(d) > limits.MaxIndividualDifference {
				c.Deviations = append(c.Deviations, NodeDeviation{PowerMW: ps.PowerMW, Node: i + 1, Measured: got, Reference: want, Difference: d})
			}
		}
	}
	if len(c.Powers) == 0 {
		return nil, ErrNoOverlap
	}
	slices.SortFunc(c.Deviations, func(a, b NodeDeviation) int {
		if r := cmp.Compare(a.PowerMW, b.PowerMW); r != 0 {
			return r
		}
		return cmp.Compare(a.Node, b.Node)
	})

	c.AvgRelDiff = stats.Mean(rel)
	_, c.MaxRelDiff = stats.Bounds(rel)
	switch {
	case c.AvgRelDiff < limits.MaxAvgDifference:
		c.Verdict = VerdictAccepted
	case c.AvgRelDiff < limits.MaxIndividualDifference:
		c.Verdict = VerdictMarginal
	default:
		c.Verdict = VerdictRejected
	}
	return c, nil
}

func findReference(refs []config.Reference, power float64) (config.Reference, bool) {
	for _, r := range refs {
		if r.PowerMW == power {
			return r, true
		}
	}
	return config.Reference{}, false
}

// SummaryHeader heads the CSV written by WriteSummary.
var SummaryHeader = []string{"Power(mW)", "Measured(%)", "Reference(%)", "Difference", "Difference(%)"}

// WriteSummary writes one CSV row per compared power.
func WriteSummary(w io.Writer, c *Comparison) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, p := range c.Powers {
		row := []string{
			strconv.FormatFloat(p.PowerMW, 'f', -1, 64),
			strconv.FormatFloat(p.Measured, 'f', 2, 64),
			strconv.FormatFloat(p.Reference, 'f', 2, 64),
			strconv.FormatFloat(p.Difference, 'f', 2, 64),
			strconv.FormatFloat(p.RelativeDifference, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
