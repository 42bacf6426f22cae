package brewery

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaproom_RejectsThenFillsOrders(t *testing.T) {
	// GIVEN 50 pints in stock and orders of 70 then 30
	cfg := testConfig()
	cfg.Production.InitialBeer = 50
	s, bh := newTestBrewhouse(t, cfg)
	calls := 0
	s.Spawn("taproom", NewTaproom(bh, scriptedDemand(&calls, 70, 30), nil))

	// WHEN day 0 trades
	s.Run(0.5)

	// THEN the 70-pint order is lost and stock is untouched
	assert.Equal(t, 50.0, bh.Production.Level())
	assert.Equal(t, 1, bh.LostSales)
	assert.Equal(t, int64(70), bh.LostDemand)
	assert.Empty(t, bh.ProfitTimeline)

	// WHEN day 1 trades
	s.Run(1.5)

	// THEN the 30-pint order is filled
	assert.Equal(t, 20.0, bh.Production.Level())
	assert.Equal(t, int64(30), bh.UnitsSold)
	require.Len(t, bh.ProfitTimeline, 1)
	rec := bh.ProfitTimeline[0]
	assert.Equal(t, 1.0, rec.Time)
	assert.Equal(t, int64(30), rec.UnitsSold)
	assert.True(t, decimal.RequireFromString("195").Equal(rec.Profit), "profit %s", rec.Profit)
	assert.Equal(t, 1, bh.LostSales)
}

func TestTaproom_OneDecisionPerDay(t *testing.T) {
	s, bh := newTestBrewhouse(t, testConfig())
	calls := 0
	s.Spawn("taproom", NewTaproom(bh, scriptedDemand(&calls, 10, 10, 10, 10, 10), nil))

	s.Run(4.5)

	assert.Equal(t, 5, calls)
	assert.Len(t, bh.ProfitTimeline, 5)
	for i, rec := range bh.ProfitTimeline {
		assert.Equal(t, float64(i), rec.Time)
		assert.Equal(t, int64(10*(i+1)), rec.UnitsSold)
	}
}

func TestTaproom_ClosedDaysSkipTrade(t *testing.T) {
	// GIVEN a taproom open on Mondays only, starting on Monday 2024-01-01
	s, bh := newTestBrewhouse(t, testConfig())
	cal, err := NewCalendar(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "0 11 * * 1")
	require.NoError(t, err)
	calls := 0
	s.Spawn("taproom", NewTaproom(bh, scriptedDemand(&calls, 10, 10, 10), cal))

	// WHEN two weeks pass
	s.Run(13.5)

	// THEN only days 0 and 7 trade
	assert.Equal(t, 2, calls)
	require.Len(t, bh.ProfitTimeline, 2)
	assert.Equal(t, 0.0, bh.ProfitTimeline[0].Time)
	assert.Equal(t, 7.0, bh.ProfitTimeline[1].Time)
}

func TestUniformDemand_StaysInRange(t *testing.T) {
	demand := UniformDemand(rand.New(rand.NewSource(7)), 24, 104)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		d := demand()
		if d < 24 || d > 104 {
			t.Fatalf("demand %d outside [24, 104]", d)
		}
		seen[d] = true
	}
	assert.True(t, seen[24], "low end reachable")
	assert.True(t, seen[104], "high end reachable")
}
