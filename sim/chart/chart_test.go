package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plotRows returns the plot area of a rendered chart, label column stripped.
func plotRows(t *testing.T, out string, height int) []string {
	t.Helper()
	lines := strings.Split(out, "\n")
	var rows []string
	for _, l := range lines {
		if i := strings.Index(l, "|"); i >= 0 {
			rows = append(rows, l[i+1:])
		}
	}
	require.Len(t, rows, height)
	return rows
}

func TestSeries_At(t *testing.T) {
	s := Series{Initial: 5, Points: []Point{{Time: 2, Value: 10}, {Time: 4, Value: 3}}}
	assert.Equal(t, 5.0, s.At(0))
	assert.Equal(t, 10.0, s.At(2))
	assert.Equal(t, 10.0, s.At(3.9))
	assert.Equal(t, 3.0, s.At(100))
	assert.Equal(t, 10.0, s.Max())
}

func TestGenerateSeriesChart_StepDown(t *testing.T) {
	// GIVEN 100 until day 5, then 50, over a 10-day horizon on 20 columns
	g := NewGeneratorSize(30, 4)
	s := Series{Name: "Production", Unit: "pints", Points: []Point{{0, 100}, {5, 50}}}

	out := g.GenerateSeriesChart(s, 10)

	assert.Contains(t, out, "Production (pints) Over Time")
	rows := plotRows(t, out, 4)
	full := strings.Repeat("█", 20)
	half := strings.Repeat("█", 10) + strings.Repeat(" ", 10)
	assert.Equal(t, []string{half, half, full, full}, rows)
	assert.Contains(t, out, "0d")
}

func TestGenerateSeriesChart_NoData(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "No data to display\n", g.GenerateSeriesChart(Series{Name: "Profit"}, 365))
	assert.Equal(t, "No data to display\n", g.GenerateSeriesChart(Series{Points: []Point{{0, 1}}}, 0))
}

func TestGenerateSeriesChart_AllZero(t *testing.T) {
	g := NewGeneratorSize(20, 2)
	out := g.GenerateSeriesChart(Series{Name: "Grain", Points: []Point{{0, 0}}}, 10)
	for _, row := range plotRows(t, out, 2) {
		assert.Equal(t, strings.Repeat(" ", 10), row)
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		raw, want float64
	}{
		{0.5, 1},
		{3, 5},
		{45.6, 50},
		{12, 20},
		{100, 100},
	}
	for _, tt := range tests {
		if got := tickStep(tt.raw); got != tt.want {
			t.Errorf("tickStep(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestGenerateCountSummary(t *testing.T) {
	g := NewGeneratorSize(20, 2)
	out := g.GenerateCountSummary("Packaged By Recipe", map[string]int{"Pils": 2, "DIPA": 5})
	assert.Less(t, strings.Index(out, "DIPA: 5"), strings.Index(out, "Pils: 2"))
	assert.Contains(t, g.GenerateCountSummary("Empty", nil), "Nothing recorded")
}
