package trace

import (
	"testing"
)

func TestSimulationTrace_RecordStage_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for stages
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelStages})

	// WHEN a stage record is recorded
	st.RecordStage(StageRecord{BatchID: "Tripel-1", Recipe: "Tripel", Stage: "brewing", Clock: 1.5})

	// THEN the trace contains one stage record with correct data
	if len(st.Stages) != 1 {
		t.Fatalf("expected 1 stage record, got %d", len(st.Stages))
	}
	if st.Stages[0].BatchID != "Tripel-1" || st.Stages[0].Clock != 1.5 {
		t.Errorf("unexpected record %+v", st.Stages[0])
	}
}

func TestSimulationTrace_LevelNone_RecordsNothing(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})
	st.RecordStage(StageRecord{BatchID: "b"})
	st.RecordContention(ContentionRecord{BatchID: "b", Resource: "kettles"})
	st.RecordTankMiss(TankMissRecord{BatchID: "b"})
	if len(st.Stages)+len(st.Contentions)+len(st.TankMisses) != 0 {
		t.Error("expected no records at level none")
	}
}

func TestSimulationTrace_NilIsSafe(t *testing.T) {
	var st *SimulationTrace
	st.RecordStage(StageRecord{BatchID: "b"})
	st.RecordContention(ContentionRecord{BatchID: "b"})
	st.RecordTankMiss(TankMissRecord{BatchID: "b"})
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelStages})
	st.RecordStage(StageRecord{BatchID: "a", Stage: "brewing", Clock: 0})
	st.RecordStage(StageRecord{BatchID: "a", Stage: "fermenting", Clock: 1})
	st.RecordStage(StageRecord{BatchID: "b", Stage: "brewing", Clock: 1})

	if len(st.Stages) != 3 {
		t.Fatalf("expected 3 records, got %d", len(st.Stages))
	}
	if st.Stages[1].Stage != "fermenting" || st.Stages[2].BatchID != "b" {
		t.Errorf("order not preserved: %+v", st.Stages)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"stages", true},
		{"", true},
		{"decisions", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
