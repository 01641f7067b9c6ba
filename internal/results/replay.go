package results

import (
	"time"

	"github.com/google/uuid"

	"tdeo-sim/internal/config"
	"tdeo-sim/internal/delivery"
)

// GroupRuns rebuilds runs from records. A new run starts whenever the power
// changes or the node index stops increasing.
func GroupRuns(records []Record, params config.RunParameters) []*delivery.Run {
	var (
		runs []*delivery.Run
		cur  *delivery.Run
	)
	ts := time.Now().UTC()
	for _, rec := range records {
		if cur == nil || rec.PowerMW != cur.Params.TransmitPowerMW || rec.Node <= cur.Nodes[len(cur.Nodes)-1].Node {
			p := params
			p.TransmitPowerMW = rec.PowerMW
			cur = &delivery.Run{ID: uuid.NewString(), Params: p, Timestamp: ts}
			runs = append(runs, cur)
		}
		cur.Nodes = append(cur.Nodes, delivery.NodeResult{
			NodeObservation: delivery.NodeObservation{Node: rec.Node, DistanceM: rec.DistanceM, Sent: rec.Sent},
			Received:        rec.Received,
			SuccessRate:     delivery.SuccessRate(rec.Received, rec.Sent),
		})
	}
	for _, r := range runs {
		r.Aggregate = delivery.Accumulate(r.Nodes)
	}
	return runs
}

// ReplayCSVFile reads a results file and writes its runs to w.
func ReplayCSVFile(path string, params config.RunParameters, w ResultWriter) (int, error) {
	records, err := ReadCSVFile(path)
	if err != nil {
		return 0, err
	}
	runs := GroupRuns(records, params)
	return len(runs), WriteRuns(w, runs)
}
