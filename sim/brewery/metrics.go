// metrics.go
//
// Summarizes a finished run for the end-of-run console report.

package brewery

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

// Metrics aggregates statistics about a finished run for final reporting.
type Metrics struct {
	Horizon float64

	UnitsSold  int64
	Profit     decimal.Decimal
	Sales      int   // days with a fulfilled order
	LostSales  int   // days whose order could not be filled
	LostDemand int64 // pints in unfilled orders

	BatchesStarted   int
	BatchesPackaged  int
	BatchesAbandoned int
	TankMisses       int
	MeanCycleDays    float64 // over packaged batches, 0 when none

	Restocks        int
	FinalGrain      float64
	FinalProduction float64

	KettleWaits int
	BriteWaits  int

	PackagedByRecipe map[string]int
	EventsProcessed  int
}

// CollectMetrics summarizes bh after a run to horizon.
func CollectMetrics(bh *Brewhouse, horizon float64, events int) Metrics {
	m := Metrics{
		Horizon:          horizon,
		UnitsSold:        bh.UnitsSold,
		Profit:           bh.Profit,
		Sales:            len(bh.ProfitTimeline),
		LostSales:        bh.LostSales,
		LostDemand:       bh.LostDemand,
		BatchesStarted:   bh.BatchesStarted,
		BatchesPackaged:  len(bh.Completed),
		BatchesAbandoned: len(bh.Abandoned),
		TankMisses:       bh.TankMisses,
		Restocks:         bh.Restocks,
		FinalGrain:       bh.Grain.Level(),
		FinalProduction:  bh.Production.Level(),
		KettleWaits:      bh.Kettles.Waits(),
		BriteWaits:       bh.BriteTanks.Waits(),
		PackagedByRecipe: make(map[string]int),
		EventsProcessed:  events,
	}
	var total float64
	var cycles int
	for _, b := range bh.Completed {
		m.PackagedByRecipe[b.Recipe.Name]++
		if days, ok := b.CycleTime(); ok {
			total += days
			cycles++
		}
	}
	if cycles > 0 {
		m.MeanCycleDays = total / float64(cycles)
	}
	return m
}

// Print writes the aggregated metrics to w.
func (m Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Brewery Metrics ===")
	fmt.Fprintf(w, "Horizon              : %.1f days\n", m.Horizon)
	fmt.Fprintf(w, "Events Processed     : %d\n", m.EventsProcessed)
	fmt.Fprintf(w, "Units Sold           : %d pints\n", m.UnitsSold)
	fmt.Fprintf(w, "Profit               : %s\n", m.Profit.StringFixed(2))
	fmt.Fprintf(w, "Sales / Lost Sales   : %d / %d (%d pints unmet)\n", m.Sales, m.LostSales, m.LostDemand)
	fmt.Fprintf(w, "Batches Started      : %d\n", m.BatchesStarted)
	fmt.Fprintf(w, "Batches Packaged     : %d\n", m.BatchesPackaged)
	fmt.Fprintf(w, "Batches Abandoned    : %d\n", m.BatchesAbandoned)
	fmt.Fprintf(w, "Tank Misses          : %d\n", m.TankMisses)
	if m.BatchesPackaged > 0 {
		fmt.Fprintf(w, "Mean Cycle Time      : %.2f days\n", m.MeanCycleDays)
	}
	fmt.Fprintf(w, "Kettle / Brite Waits : %d / %d\n", m.KettleWaits, m.BriteWaits)
	fmt.Fprintf(w, "Grain Restocks       : %d\n", m.Restocks)
	fmt.Fprintf(w, "Final Grain          : %g\n", m.FinalGrain)
	fmt.Fprintf(w, "Final Production     : %g pints\n", m.FinalProduction)

	if len(m.PackagedByRecipe) > 0 {
		names := make([]string, 0, len(m.PackagedByRecipe))
		for name := range m.PackagedByRecipe {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(w, "=== Packaged By Recipe ===")
		for _, name := range names {
			fmt.Fprintf(w, "%-20s : %d\n", name, m.PackagedByRecipe[name])
		}
	}
}
