package delivery

// SuccessRate returns 100*received/sent, or 0 when nothing was sent.
func SuccessRate(received, sent int) float64 {
	if sent <= 0 {
		return 0
	}
	return 100 * float64(received) / float64(sent)
}

// NewNodeResult completes obs with the sampled received count.
func NewNodeResult(obs NodeObservation, targetRate float64, received int) NodeResult {
	return NodeResult{
		NodeObservation: obs,
		TargetRate:      targetRate,
		Received:        received,
		SuccessRate:     SuccessRate(received, obs.Sent),
	}
}

// Accumulate sums results in the order given.
func Accumulate(results []NodeResult) AggregateResult {
	var agg AggregateResult
	for _, r := range results {
		agg.TotalSent += r.Sent
		agg.TotalReceived += r.Received
	}
	agg.SuccessRate = SuccessRate(agg.TotalReceived, agg.TotalSent)
	return agg
}
