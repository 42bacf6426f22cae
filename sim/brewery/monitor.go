package brewery

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/brewsim/brewsim/sim"
)

// RandomRecipe picks uniformly among recipes using rng.
func RandomRecipe(rng *rand.Rand, recipes []Recipe) RecipePicker {
	return func() Recipe {
		return recipes[rng.Intn(len(recipes))]
	}
}

// TankMonitor is the only origin of brew cycles: every interval it starts a
// new cycle if at least one fermentation tank is free. It implements
// sim.Process.
type TankMonitor struct {
	bh     *Brewhouse
	pick   RecipePicker
	Cycles []*BrewCycle // every cycle spawned, in spawn order
}

// NewTankMonitor creates a monitor that draws recipes from pick.
func NewTankMonitor(bh *Brewhouse, pick RecipePicker) *TankMonitor {
	return &TankMonitor{bh: bh, pick: pick}
}

// Step runs one availability check.
func (m *TankMonitor) Step(s *sim.Simulator) sim.Command {
	bh, now := m.bh, s.Now()
	if bh.AnyTankFree() {
		cycle := NewBrewCycle(bh, m.pick())
		if bh.cfg.Brewhouse.Continuous {
			cycle.Repeat = m.pick
		}
		m.Cycles = append(m.Cycles, cycle)
		s.Spawn("brew-cycle", cycle)
		logrus.Infof("[day %7.2f] Tank monitor started %s", now, cycle.Batch().ID)
	} else {
		logrus.Infof("[day %7.2f] Tank monitor found no free fermentation tank", now)
	}
	return sim.Timeout(bh.cfg.Brewhouse.MonitorInterval)
}
