// Package brewery models a brewhouse on top of the sim kernel: batches move
// through kettles, fermentation tanks and brite tanks into packaged stock that
// a taproom sells, while an inventory manager keeps grain on hand.
package brewery

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/brewsim/brewsim/sim"
	"github.com/brewsim/brewsim/sim/trace"
)

// ProfitRecord is one point of the profit timeline, taken after a sale.
type ProfitRecord struct {
	Time      float64
	UnitsSold int64           // cumulative, including this sale
	Profit    decimal.Decimal // cumulative, including this sale
}

// Brewhouse aggregates the shared equipment, stores and running tallies of
// one simulation. Processes mutate it only from within their Step, so no
// locking is needed.
type Brewhouse struct {
	sim *sim.Simulator
	cfg Config

	Kettles    *sim.Resource
	FermTanks  []*FermentationTank
	BriteTanks *sim.Resource
	Grain      *sim.LevelStore
	Production *sim.LevelStore

	Trace     *trace.SimulationTrace
	Collector *Collector

	UnitsSold      int64
	Profit         decimal.Decimal
	ProfitTimeline []ProfitRecord
	LostSales      int
	LostDemand     int64
	Restocks       int
	TankMisses     int

	BatchesStarted int
	Completed      []*Batch
	Abandoned      []*Batch

	unitPrice  decimal.Decimal
	tankCursor int // next tank to scan, shared by every brew cycle
	batchSeq   int
}

// NewBrewhouse builds the equipment and stores described by cfg. tr and col
// may be nil.
func NewBrewhouse(s *sim.Simulator, cfg Config, tr *trace.SimulationTrace, col *Collector) (*Brewhouse, error) {
	kettles, err := sim.NewResource(s, "kettles", cfg.Brewhouse.Kettles)
	if err != nil {
		return nil, fmt.Errorf("building brewhouse: %w", err)
	}
	brite, err := sim.NewResource(s, "brite-tanks", cfg.Brewhouse.BriteTanks)
	if err != nil {
		return nil, fmt.Errorf("building brewhouse: %w", err)
	}
	grain, err := sim.NewLevelStore(s, "grain", cfg.Inventory.GrainCapacity, cfg.Inventory.InitialGrain)
	if err != nil {
		return nil, fmt.Errorf("building brewhouse: %w", err)
	}
	production, err := sim.NewLevelStore(s, "production", cfg.Production.KegCapacity, cfg.Production.InitialBeer)
	if err != nil {
		return nil, fmt.Errorf("building brewhouse: %w", err)
	}
	if cfg.Brewhouse.FermentationTanks <= 0 {
		return nil, fmt.Errorf("building brewhouse: fermentation_tanks must be positive, got %d", cfg.Brewhouse.FermentationTanks)
	}
	tanks := make([]*FermentationTank, cfg.Brewhouse.FermentationTanks)
	for i := range tanks {
		if tanks[i], err = NewFermentationTank(s, i+1); err != nil {
			return nil, fmt.Errorf("building brewhouse: %w", err)
		}
	}

	bh := &Brewhouse{
		sim:        s,
		cfg:        cfg,
		Kettles:    kettles,
		FermTanks:  tanks,
		BriteTanks: brite,
		Grain:      grain,
		Production: production,
		Trace:      tr,
		Collector:  col,
		Profit:     decimal.Zero,
		unitPrice:  decimal.NewFromFloat(cfg.Taproom.UnitPrice),
	}
	col.observeLevel(grain.Name(), grain.Level(), s.Now())
	col.observeLevel(production.Name(), production.Level(), s.Now())
	return bh, nil
}

// Config returns the configuration the brewhouse was built from.
func (bh *Brewhouse) Config() Config { return bh.cfg }

// Now returns the current virtual time.
func (bh *Brewhouse) Now() float64 { return bh.sim.Now() }

// NewBatch numbers a new batch of r and counts it as started.
func (bh *Brewhouse) NewBatch(r Recipe) *Batch {
	bh.batchSeq++
	bh.BatchesStarted++
	bh.Collector.observeBatch("started")
	return NewBatch(fmt.Sprintf("%s-%d", r.Name, bh.batchSeq), r)
}

// AnyTankFree reports whether at least one fermentation tank is empty.
func (bh *Brewhouse) AnyTankFree() bool {
	for _, t := range bh.FermTanks {
		if t.Free() {
			return true
		}
	}
	return false
}

// SelectTank scans the tanks round-robin from the shared cursor, visiting each
// tank at most once, and returns the first free one.
func (bh *Brewhouse) SelectTank() (*FermentationTank, bool) {
	for range bh.FermTanks {
		t := bh.nextTank()
		if t.Free() {
			return t, true
		}
	}
	return nil, false
}

// nextTank returns the tank under the cursor and advances it.
func (bh *Brewhouse) nextTank() *FermentationTank {
	t := bh.FermTanks[bh.tankCursor]
	bh.tankCursor = (bh.tankCursor + 1) % len(bh.FermTanks)
	return t
}

// stamp moves b into stage and records the transition.
func (bh *Brewhouse) stamp(b *Batch, stage Stage) {
	now := bh.sim.Now()
	b.enter(stage, now)
	bh.Trace.RecordStage(trace.StageRecord{BatchID: b.ID, Recipe: b.Recipe.Name, Stage: string(stage), Clock: now})
}

// noteResourceWait records contention when r has no free slot for b.
func (bh *Brewhouse) noteResourceWait(b *Batch, r *sim.Resource) {
	if r.Available() > 0 {
		return
	}
	bh.noteWait(b, r.Name(), r.QueueLen())
}

// noteStoreWait records contention when st cannot take or give amount right away.
func (bh *Brewhouse) noteStoreWait(b *Batch, st *sim.LevelStore, amount float64, put bool) {
	if put {
		if st.PendingPuts() == 0 && st.Level()+amount <= st.Capacity() {
			return
		}
		bh.noteWait(b, st.Name(), st.PendingPuts())
		return
	}
	if st.PendingGets() == 0 && st.Level() >= amount {
		return
	}
	bh.noteWait(b, st.Name(), st.PendingGets())
}

func (bh *Brewhouse) noteWait(b *Batch, resource string, queued int) {
	now := bh.sim.Now()
	logrus.Infof("[day %7.2f] %s is waiting for %s (%d ahead)", now, b.ID, resource, queued)
	bh.Trace.RecordContention(trace.ContentionRecord{BatchID: b.ID, Resource: resource, Clock: now, Queued: queued})
	bh.Collector.observeWait(resource)
}

func (bh *Brewhouse) noteTankMiss(b *Batch, policy string) {
	now := bh.sim.Now()
	bh.TankMisses++
	bh.Trace.RecordTankMiss(trace.TankMissRecord{BatchID: b.ID, Clock: now, Policy: policy})
	bh.Collector.observeTankMiss()
}

func (bh *Brewhouse) batchPackaged(b *Batch) {
	bh.Completed = append(bh.Completed, b)
	bh.Collector.observeBatch("packaged")
	if days, ok := b.CycleTime(); ok {
		bh.Collector.observeCycle(days)
	}
	bh.Collector.observeLevel(bh.Production.Name(), bh.Production.Level(), bh.sim.Now())
}

func (bh *Brewhouse) batchAbandoned(b *Batch) {
	bh.Abandoned = append(bh.Abandoned, b)
	bh.Collector.observeBatch("abandoned")
}

// recordSale books units already withdrawn from production.
func (bh *Brewhouse) recordSale(units int) {
	now := bh.sim.Now()
	bh.UnitsSold += int64(units)
	bh.Profit = bh.Profit.Add(bh.unitPrice.Mul(decimal.NewFromInt(int64(units))))
	bh.ProfitTimeline = append(bh.ProfitTimeline, ProfitRecord{Time: now, UnitsSold: bh.UnitsSold, Profit: bh.Profit})
	profit, _ := bh.Profit.Float64()
	bh.Collector.observeSale(units, profit)
	bh.Collector.observeLevel(bh.Production.Name(), bh.Production.Level(), now)
}

func (bh *Brewhouse) recordLostSale(units int) {
	bh.LostSales++
	bh.LostDemand += int64(units)
	bh.Collector.observeLostSale()
}
