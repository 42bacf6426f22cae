package brewery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brewery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_OverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
horizon: 90
brewhouse:
  kettles: 5
  tank_policy: retry
taproom:
  unit_price: 7.25
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 90.0, cfg.Horizon)
	assert.Equal(t, 5, cfg.Brewhouse.Kettles)
	assert.Equal(t, TankPolicyRetry, cfg.Brewhouse.TankPolicy)
	assert.Equal(t, 7.25, cfg.Taproom.UnitPrice)

	// untouched keys keep their defaults
	def := DefaultConfig()
	assert.Equal(t, def.Brewhouse.FermentationTanks, cfg.Brewhouse.FermentationTanks)
	assert.Equal(t, def.Inventory, cfg.Inventory)
	assert.Equal(t, def.Recipes, cfg.Recipes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "brewhouse:\n  kettle: 4\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_RepositoryDefaultsMatchDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig("../../defaults.yaml")
	if errors.Is(err, os.ErrNotExist) {
		t.Skip("defaults.yaml not found")
	}
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero horizon", func(c *Config) { c.Horizon = 0 }},
		{"unknown trace", func(c *Config) { c.Trace = "verbose" }},
		{"no kettles", func(c *Config) { c.Brewhouse.Kettles = 0 }},
		{"no tanks", func(c *Config) { c.Brewhouse.FermentationTanks = 0 }},
		{"zero monitor interval", func(c *Config) { c.Brewhouse.MonitorInterval = 0 }},
		{"unknown tank policy", func(c *Config) { c.Brewhouse.TankPolicy = "wait" }},
		{"retry without interval", func(c *Config) {
			c.Brewhouse.TankPolicy = TankPolicyRetry
			c.Brewhouse.TankRetryInterval = 0
		}},
		{"grain above capacity", func(c *Config) { c.Inventory.InitialGrain = 401 }},
		{"restock above capacity", func(c *Config) { c.Inventory.RestockQuantity = 500 }},
		{"zero check interval", func(c *Config) { c.Inventory.CheckInterval = 0 }},
		{"beer above capacity", func(c *Config) { c.Production.InitialBeer = 3001 }},
		{"inverted demand", func(c *Config) { c.Taproom.DemandLow, c.Taproom.DemandHigh = 10, 5 }},
		{"negative price", func(c *Config) { c.Taproom.UnitPrice = -1 }},
		{"bad schedule", func(c *Config) { c.Taproom.OpenSchedule = "every tuesday" }},
		{"bad calendar start", func(c *Config) { c.Taproom.CalendarStart = "01/01/2024" }},
		{"no recipes", func(c *Config) { c.Recipes = nil }},
		{"negative brew time", func(c *Config) { c.Recipes[0].BrewTime = -1 }},
		{"recipe grain above capacity", func(c *Config) { c.Recipes[0].GrainPerBatch = 1000 }},
		{"recipe yield above keg capacity", func(c *Config) { c.Recipes[0].PintsPerBatch = 5000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestConfig_RecipeOverridesDefaults(t *testing.T) {
	cfg := DefaultConfig()
	r := Recipe{Name: "Stout", GrainPerBatch: 5, PintsPerBatch: 300}
	assert.Equal(t, 5.0, cfg.GrainFor(r))
	assert.Equal(t, 300.0, cfg.PintsFor(r))
	assert.Equal(t, cfg.Inventory.GrainPerBatch, cfg.GrainFor(tripel))
	assert.Equal(t, cfg.Production.PintsPerBatch, cfg.PintsFor(tripel))
}
