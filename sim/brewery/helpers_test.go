package brewery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewsim/brewsim/sim"
	"github.com/brewsim/brewsim/sim/trace"
)

var tripel = Recipe{Name: "Tripel", Type: "Tripel", BrewTime: 1, FermTime: 10, ConditionTime: 5, BatchSize: 20}

// testConfig is the default brewhouse brewing a single recipe.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Recipes = []Recipe{tripel}
	return cfg
}

// newTestBrewhouse builds a brewhouse with stage tracing and a collector.
func newTestBrewhouse(t *testing.T, cfg Config) (*sim.Simulator, *Brewhouse) {
	t.Helper()
	s := sim.NewSimulator()
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelStages})
	bh, err := NewBrewhouse(s, cfg, tr, NewCollector())
	require.NoError(t, err)
	return s, bh
}

// spawnCycles starts n cycles of r at the current time.
func spawnCycles(s *sim.Simulator, bh *Brewhouse, r Recipe, n int) []*BrewCycle {
	cycles := make([]*BrewCycle, n)
	for i := range cycles {
		cycles[i] = NewBrewCycle(bh, r)
		s.Spawn("brew-cycle", cycles[i])
	}
	return cycles
}

// scriptedDemand returns the given orders in turn, then zero.
func scriptedDemand(calls *int, orders ...int) DemandFunc {
	return func() int {
		*calls++
		if *calls > len(orders) {
			return 0
		}
		return orders[*calls-1]
	}
}

func stagesOf(b *Batch) []Stage {
	out := make([]Stage, len(b.Log))
	for i, e := range b.Log {
		out[i] = e.Stage
	}
	return out
}

func stampOf(t *testing.T, b *Batch, stage Stage) float64 {
	t.Helper()
	at, ok := b.StampedAt(stage)
	require.True(t, ok, "%s never entered %s", b.ID, stage)
	return at
}
