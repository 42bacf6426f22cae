// batch.go
//
// Defines the Batch struct which carries one recipe through the brew cycle
// and keeps its timestamped stage log.

package brewery

import "fmt"

// Stage is a state of the brew cycle.
type Stage string

const (
	StageAwaitingKettle    Stage = "awaiting_kettle"
	StageBrewing           Stage = "brewing"
	StageAwaitingTank      Stage = "awaiting_tank"
	StageFermenting        Stage = "fermenting"
	StageAwaitingBriteTank Stage = "awaiting_brite_tank"
	StageConditioning      Stage = "conditioning"
	StagePackaged          Stage = "packaged"
	StageAbandoned         Stage = "abandoned" // no fermentation tank under the drop policy
)

// StageEntry stamps the virtual time a batch entered a stage.
type StageEntry struct {
	Stage Stage
	Time  float64
}

// Batch is one production run of a recipe. It is owned by the brew cycle that
// carries it; nothing else mutates it while the cycle runs.
type Batch struct {
	ID      string
	Recipe  Recipe
	Stage   Stage
	Log     []StageEntry   // append-only, in stage order
	History [][]StageEntry // logs of completed runs
}

// NewBatch creates a batch that has not entered any stage yet.
func NewBatch(id string, r Recipe) *Batch {
	return &Batch{ID: id, Recipe: r}
}

// enter moves the batch into stage at time now and stamps the log.
func (b *Batch) enter(stage Stage, now float64) {
	b.Stage = stage
	b.Log = append(b.Log, StageEntry{Stage: stage, Time: now})
}

// archive appends a copy of the current log to the history.
func (b *Batch) archive() {
	b.History = append(b.History, append([]StageEntry(nil), b.Log...))
}

// StampedAt returns the time the batch last entered stage.
func (b *Batch) StampedAt(stage Stage) (float64, bool) {
	for i := len(b.Log) - 1; i >= 0; i-- {
		if b.Log[i].Stage == stage {
			return b.Log[i].Time, true
		}
	}
	return 0, false
}

// CycleTime returns the days from first entering the cycle to packaging.
// ok is false until the batch is packaged.
func (b *Batch) CycleTime() (days float64, ok bool) {
	end, ok := b.StampedAt(StagePackaged)
	if !ok || len(b.Log) == 0 {
		return 0, false
	}
	return end - b.Log[0].Time, true
}

// This method returns a human-readable string representation of a Batch.
func (b Batch) String() string {
	return fmt.Sprintf("Batch: (ID: %s, Recipe: %s, Stage: %s)", b.ID, b.Recipe.Name, b.Stage)
}
