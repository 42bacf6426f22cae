package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelStages captures stage transitions, contention and tank misses.
	TraceLevelStages TraceLevel = "stages"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelStages: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a brewhouse run.
// A nil *SimulationTrace is valid and records nothing.
type SimulationTrace struct {
	Config      TraceConfig
	Stages      []StageRecord
	Contentions []ContentionRecord
	TankMisses  []TankMissRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Stages:      make([]StageRecord, 0),
		Contentions: make([]ContentionRecord, 0),
		TankMisses:  make([]TankMissRecord, 0),
	}
}

func (st *SimulationTrace) enabled() bool {
	return st != nil && st.Config.Level == TraceLevelStages
}

// RecordStage appends a stage transition record.
func (st *SimulationTrace) RecordStage(record StageRecord) {
	if st.enabled() {
		st.Stages = append(st.Stages, record)
	}
}

// RecordContention appends a contention record.
func (st *SimulationTrace) RecordContention(record ContentionRecord) {
	if st.enabled() {
		st.Contentions = append(st.Contentions, record)
	}
}

// RecordTankMiss appends a tank miss record.
func (st *SimulationTrace) RecordTankMiss(record TankMissRecord) {
	if st.enabled() {
		st.TankMisses = append(st.TankMisses, record)
	}
}
