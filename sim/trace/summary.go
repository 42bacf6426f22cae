package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTransitions int
	StageCounts      map[string]int // stage → number of batches that entered it
	ContentionCounts map[string]int // resource → number of queued arrivals
	MaxQueued        int
	TankMisses       int
	UniqueBatches    int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		StageCounts:      make(map[string]int),
		ContentionCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	batches := make(map[string]bool)
	summary.TotalTransitions = len(st.Stages)
	for _, r := range st.Stages {
		summary.StageCounts[r.Stage]++
		batches[r.BatchID] = true
	}
	for _, c := range st.Contentions {
		summary.ContentionCounts[c.Resource]++
		if c.Queued > summary.MaxQueued {
			summary.MaxQueued = c.Queued
		}
	}
	summary.TankMisses = len(st.TankMisses)
	summary.UniqueBatches = len(batches)

	return summary
}
