package brewery

import (
	"github.com/sirupsen/logrus"

	"github.com/brewsim/brewsim/sim"
)

// InventoryManager tops up the grain store whenever it falls below the
// restock threshold. Unlike the other processes it retires once the cutoff
// day has passed with inventory healthy. It implements sim.Process.
type InventoryManager struct {
	bh        *Brewhouse
	restocked bool // a purchase was just committed
	waited    bool // a check interval just elapsed
}

// NewInventoryManager creates a manager for bh's grain store.
func NewInventoryManager(bh *Brewhouse) *InventoryManager {
	return &InventoryManager{bh: bh}
}

// Step checks the grain level once.
func (m *InventoryManager) Step(s *sim.Simulator) sim.Command {
	bh, inv, now := m.bh, m.bh.cfg.Inventory, s.Now()
	grain := bh.Grain

	if m.restocked {
		m.restocked = false
		bh.Restocks++
		bh.Collector.observeRestock()
		bh.Collector.observeLevel(grain.Name(), grain.Level(), now)
		logrus.Infof("[day %7.2f] Inventory restocked %g grain (level %g)", now, inv.RestockQuantity, grain.Level())
	}

	if m.waited {
		m.waited = false
		if inv.ManagerCutoff > 0 && now >= inv.ManagerCutoff {
			logrus.Infof("[day %7.2f] Inventory manager retiring with %g grain on hand", now, grain.Level())
			return sim.Exit()
		}
	}

	if grain.Level() < inv.RestockThreshold {
		logrus.Infof("[day %7.2f] Inventory low (%g < %g), purchasing %g grain", now, grain.Level(), inv.RestockThreshold, inv.RestockQuantity)
		m.restocked = true
		return grain.Put(inv.RestockQuantity)
	}
	m.waited = true
	return sim.Timeout(inv.CheckInterval)
}
