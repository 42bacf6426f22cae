// Package chart renders brewery run series (profit, store levels) as ASCII
// charts for the terminal.
package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	chartWidth  = 80
	chartHeight = 16
	labelWidth  = 10 // "%8.0f |"
)

// Point is one (day, value) observation.
type Point struct {
	Time  float64
	Value float64
}

// Series is a step function: each point holds until the next one. Initial is
// the value before the first point.
type Series struct {
	Name    string
	Unit    string
	Initial float64
	Points  []Point
}

// At returns the value in effect at day t.
func (s Series) At(t float64) float64 {
	i := sort.Search(len(s.Points), func(i int) bool { return s.Points[i].Time > t })
	if i == 0 {
		return s.Initial
	}
	return s.Points[i-1].Value
}

// Max returns the largest value the series takes.
func (s Series) Max() float64 {
	m := s.Initial
	for _, p := range s.Points {
		m = math.Max(m, p.Value)
	}
	return m
}

// Generator generates ASCII charts
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return NewGeneratorSize(chartWidth, chartHeight)
}

// NewGeneratorSize creates a generator with the given total width and number
// of plot rows.
func NewGeneratorSize(width, height int) *Generator {
	if width < labelWidth+2 {
		width = labelWidth + 2
	}
	if height < 1 {
		height = 1
	}
	return &Generator{width: width, height: height}
}

// GenerateSeriesChart plots s over [0, horizon] days.
func (g *Generator) GenerateSeriesChart(s Series, horizon float64) string {
	if len(s.Points) == 0 || !(horizon > 0) {
		return "No data to display\n"
	}

	var sb strings.Builder
	cols := g.width - labelWidth

	// Header
	sb.WriteString("\n")
	title := s.Name
	if s.Unit != "" {
		title = fmt.Sprintf("%s (%s)", s.Name, s.Unit)
	}
	sb.WriteString(title + " Over Time\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	values := make([]float64, cols)
	for x := range values {
		values[x] = s.At(float64(x) / float64(cols) * horizon)
	}
	top := s.Max()

	for row := g.height; row >= 1; row-- {
		threshold := top * float64(row) / float64(g.height)
		sb.WriteString(fmt.Sprintf("%8.0f |", threshold))
		for _, v := range values {
			if top > 0 && v >= threshold-1e-9 {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	// X-axis
	sb.WriteString(strings.Repeat(" ", labelWidth-2) + " +")
	sb.WriteString(strings.Repeat("-", cols))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", labelWidth))
	sb.WriteString(dayLabels(cols, horizon))
	sb.WriteString("\n")
	return sb.String()
}

// dayLabels places "Nd" markers at round day counts across cols columns.
func dayLabels(cols int, horizon float64) string {
	line := []rune(strings.Repeat(" ", cols))
	step := tickStep(horizon / 8)
	for day := 0.0; day <= horizon; day += step {
		pos := int(day / horizon * float64(cols))
		marker := fmt.Sprintf("%gd", day)
		if pos+len(marker) > cols {
			break
		}
		for i, ch := range marker {
			line[pos+i] = ch
		}
	}
	return strings.TrimRight(string(line), " ")
}

// tickStep rounds raw up to 1, 2 or 5 times a power of ten.
func tickStep(raw float64) float64 {
	if raw <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// GenerateCountSummary lists named counts in name order under a heading.
func (g *Generator) GenerateCountSummary(heading string, counts map[string]int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(heading + "\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	if len(counts) == 0 {
		sb.WriteString("Nothing recorded\n")
		return sb.String()
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  - %s: %d\n", name, counts[name]))
	}
	sb.WriteString("\n")
	return sb.String()
}
