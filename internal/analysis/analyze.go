// Summary statistics over accumulated results files
package analysis

import (
	"cmp"
	"slices"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"tdeo-sim/internal/delivery"
	"tdeo-sim/internal/results"
)

// PowerStats summarizes all rows recorded at one transmit power.
type PowerStats struct {
	PowerMW        float64
	Rows           int
	MeanSuccess    float64
	StdDevSuccess  float64
	MinSuccess     float64
	MaxSuccess     float64
	MedianSuccess  float64
	TotalSent      int
	TotalReceived  int
	OverallSuccess float64
}

// NodeStats summarizes all rows recorded for one node index.
type NodeStats struct {
	Node        int
	Rows        int
	MeanSuccess float64
}

// Report is the result of Analyze.
type Report struct {
	Records int
	Powers  []PowerStats
	Nodes   []NodeStats
}

// Analyze groups records by power and by node, both in ascending order.
func Analyze(records []results.Record) Report {
	byPower := map[float64][]results.Record{}
	byNode := map[int][]float64{}
	for _, r := range records {
		byPower[r.PowerMW] = append(byPower[r.PowerMW], r)
		byNode[r.Node] = append(byNode[r.Node], r.SuccessPct)
	}

	rep := Report{Records: len(records)}
	for p, recs := range byPower {
		rep.Powers = append(rep.Powers, powerStats(p, recs))
	}
	slices.SortFunc(rep.Powers, func(a, b PowerStats) int { return cmp.Compare(a.PowerMW, b.PowerMW) })

	for n, xs := range byNode {
		rep.Nodes = append(rep.Nodes, NodeStats{Node: n, Rows: len(xs), MeanSuccess: stats.Mean(xs)})
	}
	slices.SortFunc(rep.Nodes, func(a, b NodeStats) int { return cmp.Compare(a.Node, b.Node) })
	return rep
}

func powerStats(power float64, recs []results.Record) PowerStats {
	ps := PowerStats{PowerMW: power, Rows: len(recs)}
	s := stats.Sample{}
	for _, r := range recs {
		s.Xs = append(s.Xs, r.SuccessPct)
		ps.TotalSent += r.Sent
		ps.TotalReceived += r.Received
	}
	sort.Float64s(s.Xs)
	s.Sorted = true

	ps.MeanSuccess = s.Mean()
	if len(s.Xs) > 1 {
		ps.StdDevSuccess = s.StdDev()
	}
	ps.MinSuccess, ps.MaxSuccess = s.Bounds()
	ps.MedianSuccess = s.Quantile(0.5)
	ps.OverallSuccess = delivery.SuccessRate(ps.TotalReceived, ps.TotalSent)
	return ps
}

// MeanSuccess returns the mean node success per (power, node) pair.
func MeanSuccess(records []results.Record) map[float64]map[int]float64 {
	acc := map[float64]map[int][]float64{}
	for _, r := range records {
		if acc[r.PowerMW] == nil {
			acc[r.PowerMW] = map[int][]float64{}
		}
		acc[r.PowerMW][r.Node] = append(acc[r.PowerMW][r.Node], r.SuccessPct)
	}
	out := make(map[float64]map[int]float64, len(acc))
	for p, nodes := range acc {
		out[p] = make(map[int]float64, len(nodes))
		for n, xs := range nodes {
			out[p][n] = stats.Mean(xs)
		}
	}
	return out
}
