package brewery

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brewsim/brewsim/sim"
)

// cyclePhase is the resume point of a BrewCycle: which suspension the cycle
// is returning from.
type cyclePhase int

const (
	phaseStart         cyclePhase = iota
	phaseKettleGranted            // holding a kettle
	phaseGrainDrawn               // grain taken, about to brew
	phaseBrewed                   // brew time elapsed
	phaseTankRetry                // waited out a tank miss under the retry policy
	phaseTankOccupied             // batch is in a fermentation tank
	phaseFermented                // fermentation time elapsed
	phaseTankVacated              // tank emptied
	phaseBriteGranted             // holding a brite tank
	phaseConditioned              // conditioning time elapsed
	phaseStored                   // pints added to production
)

// RecipePicker chooses the recipe for the next batch.
type RecipePicker func() Recipe

// BrewCycle carries one batch through
// AwaitingKettle → Brewing → AwaitingTank → Fermenting → AwaitingBriteTank → Conditioning → Packaged.
// It implements sim.Process.
type BrewCycle struct {
	bh    *Brewhouse
	batch *Batch
	phase cyclePhase
	tank  *FermentationTank

	// Repeat, when set, starts a fresh batch of the picked recipe after each
	// packaged or abandoned one instead of exiting.
	Repeat RecipePicker
}

// NewBrewCycle creates a cycle for a new batch of r.
func NewBrewCycle(bh *Brewhouse, r Recipe) *BrewCycle {
	return &BrewCycle{bh: bh, batch: bh.NewBatch(r)}
}

// Batch returns the batch currently carried by the cycle.
func (c *BrewCycle) Batch() *Batch { return c.batch }

// Step advances the cycle to its next suspension point.
func (c *BrewCycle) Step(s *sim.Simulator) sim.Command {
	bh, b, now := c.bh, c.batch, s.Now()
	switch c.phase {
	case phaseStart:
		bh.stamp(b, StageAwaitingKettle)
		logrus.Infof("[day %7.2f] Brewhouse is requesting to brew %s", now, b.ID)
		bh.noteResourceWait(b, bh.Kettles)
		c.phase = phaseKettleGranted
		return bh.Kettles.Request()

	case phaseKettleGranted:
		bh.stamp(b, StageBrewing)
		logrus.Infof("[day %7.2f] Brewhouse has started brewing %s", now, b.ID)
		grain := bh.cfg.GrainFor(b.Recipe)
		bh.noteStoreWait(b, bh.Grain, grain, false)
		c.phase = phaseGrainDrawn
		return bh.Grain.Get(grain)

	case phaseGrainDrawn:
		bh.Collector.observeLevel(bh.Grain.Name(), bh.Grain.Level(), now)
		c.phase = phaseBrewed
		return sim.Timeout(b.Recipe.BrewTime)

	case phaseBrewed:
		bh.Kettles.Release()
		logrus.Infof("[day %7.2f] Brewhouse has finished brewing %s after %g days", now, b.ID, b.Recipe.BrewTime)
		bh.stamp(b, StageAwaitingTank)
		return c.findTank(s)

	case phaseTankRetry:
		return c.findTank(s)

	case phaseTankOccupied:
		c.tank.record(b, now)
		bh.stamp(b, StageFermenting)
		logrus.Infof("[day %7.2f] Brewhouse has moved %s to fermentation tank %d", now, b.ID, c.tank.ID)
		c.phase = phaseFermented
		return sim.Timeout(b.Recipe.FermTime)

	case phaseFermented:
		c.phase = phaseTankVacated
		return c.tank.Vacate()

	case phaseTankVacated:
		c.tank = nil
		bh.stamp(b, StageAwaitingBriteTank)
		logrus.Infof("[day %7.2f] Brewhouse is requesting to condition %s", now, b.ID)
		bh.noteResourceWait(b, bh.BriteTanks)
		c.phase = phaseBriteGranted
		return bh.BriteTanks.Request()

	case phaseBriteGranted:
		bh.stamp(b, StageConditioning)
		logrus.Infof("[day %7.2f] Brewhouse is conditioning %s for %g days", now, b.ID, b.Recipe.ConditionTime)
		c.phase = phaseConditioned
		return sim.Timeout(b.Recipe.ConditionTime)

	case phaseConditioned:
		bh.BriteTanks.Release()
		bh.stamp(b, StagePackaged)
		b.archive()
		pints := bh.cfg.PintsFor(b.Recipe)
		bh.noteStoreWait(b, bh.Production, pints, true)
		c.phase = phaseStored
		return bh.Production.Put(pints)

	case phaseStored:
		logrus.Infof("[day %7.2f] Brewhouse has packaged %s (production level %g)", now, b.ID, bh.Production.Level())
		bh.batchPackaged(b)
		return c.next()
	}
	panic(fmt.Sprintf("BrewCycle: unknown phase %d for %s", c.phase, b.ID))
}

// findTank claims a free fermentation tank or applies the tank policy.
func (c *BrewCycle) findTank(s *sim.Simulator) sim.Command {
	bh, b := c.bh, c.batch
	if tank, ok := bh.SelectTank(); ok {
		c.tank = tank
		c.phase = phaseTankOccupied
		return tank.Occupy()
	}

	policy := bh.cfg.Brewhouse.TankPolicy
	if policy == "" {
		policy = TankPolicyDrop
	}
	bh.noteTankMiss(b, policy)
	switch policy {
	case TankPolicyRetry:
		logrus.Infof("[day %7.2f] No fermentation tanks available for %s, retrying in %g days", s.Now(), b.ID, bh.cfg.Brewhouse.TankRetryInterval)
		c.phase = phaseTankRetry
		return sim.Timeout(bh.cfg.Brewhouse.TankRetryInterval)
	case TankPolicyBlock:
		c.tank = bh.nextTank()
		logrus.Infof("[day %7.2f] No fermentation tanks available for %s, queueing on tank %d", s.Now(), b.ID, c.tank.ID)
		bh.noteStoreWait(b, c.tank.LevelStore, 1, true)
		c.phase = phaseTankOccupied
		return c.tank.Occupy()
	default:
		logrus.Warnf("[day %7.2f] No fermentation tanks available for %s", s.Now(), b.ID)
		bh.stamp(b, StageAbandoned)
		bh.batchAbandoned(b)
		return c.next()
	}
}

// next ends the cycle or, when repeating, restarts it with a new batch.
func (c *BrewCycle) next() sim.Command {
	if c.Repeat == nil {
		return sim.Exit()
	}
	c.batch = c.bh.NewBatch(c.Repeat())
	c.phase = phaseStart
	c.tank = nil
	return sim.Timeout(0)
}
