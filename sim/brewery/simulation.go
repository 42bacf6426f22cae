package brewery

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brewsim/brewsim/sim"
	"github.com/brewsim/brewsim/sim/trace"
)

// Simulation wires a brewhouse and its long-running processes onto one
// simulator. Independent Simulations share nothing.
type Simulation struct {
	Config    Config
	RunID     uuid.UUID
	Sim       *sim.Simulator
	Brewhouse *Brewhouse
	Collector *Collector
	Streams   *sim.Streams
	Trace     *trace.SimulationTrace

	Inventory *InventoryManager
	Taproom   *Taproom
	Monitor   *TankMonitor
}

// Report is the read-only outcome of a run.
type Report struct {
	RunID   uuid.UUID
	Seed    int64
	Horizon float64
	Config  Config

	ProfitTimeline    []ProfitRecord
	GrainSamples      []sim.Sample
	ProductionSamples []sim.Sample
	TankRecords       []TankRecord
	Completed         []*Batch
	Abandoned         []*Batch

	Trace     *trace.SimulationTrace
	Collector *Collector
	Metrics   Metrics
}

// NewSimulation validates cfg and seeds the inventory manager, taproom and
// tank monitor, in that order, at day 0.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid brewery config: %w", err)
	}
	calendar, err := cfg.Taproom.Calendar()
	if err != nil {
		return nil, fmt.Errorf("invalid brewery config: %w", err)
	}

	var tr *trace.SimulationTrace
	if level := trace.TraceLevel(cfg.Trace); level != "" && level != trace.TraceLevelNone {
		tr = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}
	s := sim.NewSimulator()
	col := NewCollector()
	bh, err := NewBrewhouse(s, cfg, tr, col)
	if err != nil {
		return nil, err
	}
	streams := sim.NewStreams(cfg.Seed)

	sm := &Simulation{
		Config:    cfg,
		RunID:     uuid.New(),
		Sim:       s,
		Brewhouse: bh,
		Collector: col,
		Streams:   streams,
		Trace:     tr,
	}
	demand := UniformDemand(streams.Stream(sim.StreamTaproom), cfg.Taproom.DemandLow, cfg.Taproom.DemandHigh)
	sm.Inventory = NewInventoryManager(bh)
	sm.Taproom = NewTaproom(bh, demand, calendar)
	sm.Monitor = NewTankMonitor(bh, RandomRecipe(streams.Stream(sim.StreamBrewing), cfg.Recipes))

	s.Spawn("inventory", sm.Inventory)
	s.Spawn("taproom", sm.Taproom)
	s.Spawn("tank-monitor", sm.Monitor)
	return sm, nil
}

// Run advances virtual time to the configured horizon and reports the outcome.
// Cycles still in flight at the horizon are abandoned silently.
func (sm *Simulation) Run() *Report {
	logrus.Infof("Starting brewery run %s (seed=%d, horizon=%g days, tank policy=%s)",
		sm.RunID, sm.Config.Seed, sm.Config.Horizon, sm.Config.Brewhouse.TankPolicy)
	sm.Sim.Run(sm.Config.Horizon)

	bh := sm.Brewhouse
	sm.Collector.observeLevel(bh.Grain.Name(), bh.Grain.Level(), sm.Sim.Now())
	sm.Collector.observeLevel(bh.Production.Name(), bh.Production.Level(), sm.Sim.Now())

	var tanks []TankRecord
	for _, t := range bh.FermTanks {
		tanks = append(tanks, t.Records...)
	}
	return &Report{
		RunID:             sm.RunID,
		Seed:              sm.Config.Seed,
		Horizon:           sm.Config.Horizon,
		Config:            sm.Config,
		ProfitTimeline:    bh.ProfitTimeline,
		GrainSamples:      bh.Grain.Samples(),
		ProductionSamples: bh.Production.Samples(),
		TankRecords:       tanks,
		Completed:         bh.Completed,
		Abandoned:         bh.Abandoned,
		Trace:             sm.Trace,
		Collector:         sm.Collector,
		Metrics:           CollectMetrics(bh, sm.Config.Horizon, sm.Sim.Processed),
	}
}
