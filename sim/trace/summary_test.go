package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	summary := Summarize(NewSimulationTrace(TraceConfig{Level: TraceLevelStages}))
	if summary.TotalTransitions != 0 || summary.TankMisses != 0 || summary.UniqueBatches != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
	if len(summary.StageCounts) != 0 || len(summary.ContentionCounts) != 0 {
		t.Error("expected empty maps")
	}
}

func TestSummarize_NilTrace(t *testing.T) {
	if s := Summarize(nil); s == nil || s.TotalTransitions != 0 {
		t.Errorf("expected zero summary for nil trace, got %+v", s)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with stages, contention and a miss
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelStages})
	st.RecordStage(StageRecord{BatchID: "a", Stage: "brewing"})
	st.RecordStage(StageRecord{BatchID: "b", Stage: "brewing"})
	st.RecordStage(StageRecord{BatchID: "a", Stage: "fermenting"})
	st.RecordContention(ContentionRecord{BatchID: "b", Resource: "kettles", Queued: 0})
	st.RecordContention(ContentionRecord{BatchID: "c", Resource: "kettles", Queued: 1})
	st.RecordContention(ContentionRecord{BatchID: "a", Resource: "brite-tanks", Queued: 0})
	st.RecordTankMiss(TankMissRecord{BatchID: "b", Policy: "drop"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts reflect the records
	if summary.TotalTransitions != 3 {
		t.Errorf("TotalTransitions = %d, want 3", summary.TotalTransitions)
	}
	if summary.StageCounts["brewing"] != 2 || summary.StageCounts["fermenting"] != 1 {
		t.Errorf("unexpected stage counts %v", summary.StageCounts)
	}
	if summary.ContentionCounts["kettles"] != 2 || summary.ContentionCounts["brite-tanks"] != 1 {
		t.Errorf("unexpected contention counts %v", summary.ContentionCounts)
	}
	if summary.MaxQueued != 1 {
		t.Errorf("MaxQueued = %d, want 1", summary.MaxQueued)
	}
	if summary.TankMisses != 1 || summary.UniqueBatches != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
}
