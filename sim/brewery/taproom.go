package brewery

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/brewsim/brewsim/sim"
)

// DemandFunc returns the pints ordered in one taproom day.
type DemandFunc func() int

// UniformDemand draws uniformly from [low, high] using rng.
func UniformDemand(rng *rand.Rand, low, high int) DemandFunc {
	return func() int {
		return low + rng.Intn(high-low+1)
	}
}

// Taproom sells packaged beer once per virtual day. Unmet demand is lost, not
// backordered. It implements sim.Process.
type Taproom struct {
	bh       *Brewhouse
	demand   DemandFunc
	calendar *Calendar
	order    int // pints being withdrawn, 0 when idle
}

// NewTaproom creates a seller. A nil calendar opens every day.
func NewTaproom(bh *Brewhouse, demand DemandFunc, calendar *Calendar) *Taproom {
	return &Taproom{bh: bh, demand: demand, calendar: calendar}
}

// Step handles one day of trade.
func (t *Taproom) Step(s *sim.Simulator) sim.Command {
	bh, now := t.bh, s.Now()
	if t.order > 0 {
		bh.recordSale(t.order)
		logrus.Infof("[day %7.2f] Taproom sold %d pints (stock %g, profit %s)", now, t.order, bh.Production.Level(), bh.Profit.StringFixed(2))
		t.order = 0
		return sim.Timeout(1)
	}
	if !t.calendar.IsOpen(now) {
		logrus.Debugf("[day %7.2f] Taproom closed on %s", now, t.calendar.Date(now).Format(calendarLayout))
		return sim.Timeout(1)
	}

	order := t.demand()
	if order > 0 && bh.Production.Level() >= float64(order) {
		t.order = order
		return bh.Production.Get(float64(order))
	}
	if order > 0 {
		bh.recordLostSale(order)
		logrus.Infof("[day %7.2f] Taproom could not fill %d pints (stock %g)", now, order, bh.Production.Level())
	}
	return sim.Timeout(1)
}
