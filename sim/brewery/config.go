package brewery

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brewsim/brewsim/sim/trace"
)

// Config holds every tunable of a brewhouse run, loadable from a YAML file.
// It is passed explicitly to NewSimulation so independent runs can use
// different parameters side by side.
type Config struct {
	Horizon    float64          `yaml:"horizon"` // days of virtual time to simulate
	Seed       int64            `yaml:"seed"`
	Trace      string           `yaml:"trace"` // "none" (default) or "stages"
	Brewhouse  BrewhouseConfig  `yaml:"brewhouse"`
	Inventory  InventoryConfig  `yaml:"inventory"`
	Production ProductionConfig `yaml:"production"`
	Taproom    TaproomConfig    `yaml:"taproom"`
	Recipes    []Recipe         `yaml:"recipes"`
}

// BrewhouseConfig groups equipment counts and brew-cycle policies.
type BrewhouseConfig struct {
	Kettles           int     `yaml:"kettles"`
	FermentationTanks int     `yaml:"fermentation_tanks"`
	BriteTanks        int     `yaml:"brite_tanks"`
	MonitorInterval   float64 `yaml:"monitor_interval"`    // days between tank availability checks
	TankPolicy        string  `yaml:"tank_policy"`         // "drop" (default), "retry", "block"
	TankRetryInterval float64 `yaml:"tank_retry_interval"` // days between rescans under "retry"
	Continuous        bool    `yaml:"continuous"`          // restart each cycle with a new recipe after packaging
}

// InventoryConfig groups grain store and purchasing parameters.
type InventoryConfig struct {
	GrainCapacity    float64 `yaml:"grain_capacity"`
	InitialGrain     float64 `yaml:"initial_grain"`
	GrainPerBatch    float64 `yaml:"grain_per_batch"` // default for recipes that do not set their own
	RestockThreshold float64 `yaml:"restock_threshold"`
	RestockQuantity  float64 `yaml:"restock_quantity"`
	CheckInterval    float64 `yaml:"check_interval"`
	ManagerCutoff    float64 `yaml:"manager_cutoff"` // day after which a healthy manager stops; 0 = never
}

// ProductionConfig groups packaged beer storage parameters.
type ProductionConfig struct {
	KegCapacity   float64 `yaml:"keg_capacity"`
	InitialBeer   float64 `yaml:"initial_beer"`
	PintsPerBatch float64 `yaml:"pints_per_batch"` // default for recipes that do not set their own
}

// TaproomConfig groups demand and pricing parameters.
type TaproomConfig struct {
	DemandLow     int     `yaml:"demand_low"`  // inclusive
	DemandHigh    int     `yaml:"demand_high"` // inclusive
	UnitPrice     float64 `yaml:"unit_price"`
	OpenSchedule  string  `yaml:"open_schedule"`  // cron expression selecting opening days; empty = every day
	CalendarStart string  `yaml:"calendar_start"` // date of day 0, YYYY-MM-DD
}

// Recipe describes one beer. Zero GrainPerBatch or PintsPerBatch fall back to
// the inventory and production defaults.
type Recipe struct {
	Name          string  `yaml:"name"`
	Type          string  `yaml:"type"`
	Price         float64 `yaml:"price"`
	Yeast         string  `yaml:"yeast"`
	BrewTime      float64 `yaml:"brew_time"`
	FermTime      float64 `yaml:"ferm_time"`
	ConditionTime float64 `yaml:"condition_time"`
	BatchSize     float64 `yaml:"batch_size"` // barrels, informational
	GrainPerBatch float64 `yaml:"grain_per_batch"`
	PintsPerBatch float64 `yaml:"pints_per_batch"`
}

// Tank policies applied when a brew cycle finds no free fermentation tank.
const (
	TankPolicyDrop  = "drop"
	TankPolicyRetry = "retry"
	TankPolicyBlock = "block"
)

// ValidTankPolicies is the set of recognized tank policy names.
var ValidTankPolicies = map[string]bool{"": true, TankPolicyDrop: true, TankPolicyRetry: true, TankPolicyBlock: true}

const calendarLayout = "2006-01-02"

// DefaultConfig returns the reference brewhouse: three kettles, two
// fermentation tanks, two brite tanks and three house beers over one year.
func DefaultConfig() Config {
	return Config{
		Horizon: 365,
		Seed:    42,
		Trace:   string(trace.TraceLevelNone),
		Brewhouse: BrewhouseConfig{
			Kettles:           3,
			FermentationTanks: 2,
			BriteTanks:        2,
			MonitorInterval:   10,
			TankPolicy:        TankPolicyDrop,
			TankRetryInterval: 1,
		},
		Inventory: InventoryConfig{
			GrainCapacity:    400,
			InitialGrain:     250,
			GrainPerBatch:    3,
			RestockThreshold: 95,
			RestockQuantity:  200,
			CheckInterval:    5,
			ManagerCutoff:    100,
		},
		Production: ProductionConfig{
			KegCapacity:   3000,
			InitialBeer:   2000,
			PintsPerBatch: 440,
		},
		Taproom: TaproomConfig{
			DemandLow:     24,
			DemandHigh:    104,
			UnitPrice:     6.50,
			CalendarStart: "2024-01-01",
		},
		Recipes: []Recipe{
			{Name: "Tripel", Type: "Tripel", Price: 8.00, Yeast: "WLP530 Abbey Ale", BrewTime: 1, FermTime: 10, ConditionTime: 5, BatchSize: 20},
			{Name: "DIPA", Type: "DIPA", Price: 7.50, Yeast: "London III", BrewTime: 0.5, FermTime: 7, ConditionTime: 5, BatchSize: 30},
			{Name: "Pils", Type: "Pils", Price: 5.00, Yeast: "WLP800 German Lager", BrewTime: 1.5, FermTime: 14, ConditionTime: 7, BatchSize: 60},
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys left out keep their
// defaults; unknown keys are rejected so typos surface as errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading brewery config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing brewery config: %w", err)
	}
	return cfg, nil
}

// GrainFor returns the grain a recipe consumes per brew.
func (c Config) GrainFor(r Recipe) float64 {
	if r.GrainPerBatch > 0 {
		return r.GrainPerBatch
	}
	return c.Inventory.GrainPerBatch
}

// PintsFor returns the pints a recipe yields per batch.
func (c Config) PintsFor(r Recipe) float64 {
	if r.PintsPerBatch > 0 {
		return r.PintsPerBatch
	}
	return c.Production.PintsPerBatch
}

// Calendar builds the taproom calendar described by the config.
func (t TaproomConfig) Calendar() (*Calendar, error) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if t.CalendarStart != "" {
		parsed, err := time.Parse(calendarLayout, t.CalendarStart)
		if err != nil {
			return nil, fmt.Errorf("calendar_start %q: %w", t.CalendarStart, err)
		}
		start = parsed
	}
	return NewCalendar(start, t.OpenSchedule)
}

// Validate checks that every parameter is in range and that no store request
// the run can issue is larger than the store it targets.
func (c Config) Validate() error {
	if !(c.Horizon > 0) || math.IsInf(c.Horizon, 1) {
		return fmt.Errorf("horizon must be positive and finite, got %v", c.Horizon)
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}

	b := c.Brewhouse
	if b.Kettles <= 0 || b.FermentationTanks <= 0 || b.BriteTanks <= 0 {
		return fmt.Errorf("kettles, fermentation_tanks and brite_tanks must be positive, got %d/%d/%d",
			b.Kettles, b.FermentationTanks, b.BriteTanks)
	}
	if !(b.MonitorInterval > 0) {
		return fmt.Errorf("monitor_interval must be positive, got %v", b.MonitorInterval)
	}
	if !ValidTankPolicies[b.TankPolicy] {
		return fmt.Errorf("unknown tank policy %q", b.TankPolicy)
	}
	if b.TankPolicy == TankPolicyRetry && !(b.TankRetryInterval > 0) {
		return fmt.Errorf("tank_retry_interval must be positive under the retry policy, got %v", b.TankRetryInterval)
	}

	inv := c.Inventory
	if !(inv.GrainCapacity > 0) {
		return fmt.Errorf("grain_capacity must be positive, got %v", inv.GrainCapacity)
	}
	if inv.InitialGrain < 0 || inv.InitialGrain > inv.GrainCapacity {
		return fmt.Errorf("initial_grain must be within [0, %v], got %v", inv.GrainCapacity, inv.InitialGrain)
	}
	if inv.GrainPerBatch < 0 || inv.RestockThreshold < 0 || inv.ManagerCutoff < 0 {
		return fmt.Errorf("grain_per_batch, restock_threshold and manager_cutoff must be non-negative")
	}
	if !(inv.RestockQuantity > 0) || inv.RestockQuantity > inv.GrainCapacity {
		return fmt.Errorf("restock_quantity must be within (0, %v], got %v", inv.GrainCapacity, inv.RestockQuantity)
	}
	if !(inv.CheckInterval > 0) {
		return fmt.Errorf("check_interval must be positive, got %v", inv.CheckInterval)
	}

	p := c.Production
	if !(p.KegCapacity > 0) {
		return fmt.Errorf("keg_capacity must be positive, got %v", p.KegCapacity)
	}
	if p.InitialBeer < 0 || p.InitialBeer > p.KegCapacity {
		return fmt.Errorf("initial_beer must be within [0, %v], got %v", p.KegCapacity, p.InitialBeer)
	}
	if p.PintsPerBatch < 0 {
		return fmt.Errorf("pints_per_batch must be non-negative, got %v", p.PintsPerBatch)
	}

	tp := c.Taproom
	if tp.DemandLow < 0 || tp.DemandHigh < tp.DemandLow {
		return fmt.Errorf("demand range [%d, %d] is invalid", tp.DemandLow, tp.DemandHigh)
	}
	if tp.UnitPrice < 0 {
		return fmt.Errorf("unit_price must be non-negative, got %v", tp.UnitPrice)
	}
	if _, err := tp.Calendar(); err != nil {
		return err
	}

	if len(c.Recipes) == 0 {
		return fmt.Errorf("at least one recipe is required")
	}
	for _, r := range c.Recipes {
		if r.Name == "" {
			return fmt.Errorf("recipe name must not be empty")
		}
		if r.BrewTime < 0 || r.FermTime < 0 || r.ConditionTime < 0 {
			return fmt.Errorf("recipe %q: durations must be non-negative", r.Name)
		}
		if r.GrainPerBatch < 0 || r.PintsPerBatch < 0 {
			return fmt.Errorf("recipe %q: grain and pints must be non-negative", r.Name)
		}
		if g := c.GrainFor(r); g > inv.GrainCapacity {
			return fmt.Errorf("recipe %q needs %v grain per batch, more than grain_capacity %v", r.Name, g, inv.GrainCapacity)
		}
		if y := c.PintsFor(r); y > p.KegCapacity {
			return fmt.Errorf("recipe %q yields %v pints, more than keg_capacity %v", r.Name, y, p.KegCapacity)
		}
	}
	return nil
}
