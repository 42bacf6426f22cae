package brewery

import (
	"fmt"

	"github.com/brewsim/brewsim/sim"
)

// TankRecord notes one batch's stay in a fermentation tank.
type TankRecord struct {
	Start       float64
	ExpectedEnd float64
	Batch       string
	TankID      int
}

// FermentationTank is a one-slot store: level 1 means a batch is fermenting.
type FermentationTank struct {
	*sim.LevelStore
	ID      int
	Records []TankRecord
}

// NewFermentationTank creates an empty tank.
func NewFermentationTank(s *sim.Simulator, id int) (*FermentationTank, error) {
	store, err := sim.NewLevelStore(s, fmt.Sprintf("fermentation-tank-%d", id), 1, 0)
	if err != nil {
		return nil, err
	}
	return &FermentationTank{LevelStore: store, ID: id}, nil
}

// Free reports whether the tank can take a batch right now.
func (t *FermentationTank) Free() bool {
	return t.Level() < t.Capacity()
}

// Occupy suspends until the tank is empty, then fills it.
func (t *FermentationTank) Occupy() sim.Command {
	return t.Put(1)
}

// Vacate empties the tank.
func (t *FermentationTank) Vacate() sim.Command {
	return t.Get(1)
}

func (t *FermentationTank) record(b *Batch, now float64) {
	t.Records = append(t.Records, TankRecord{
		Start:       now,
		ExpectedEnd: now + b.Recipe.FermTime,
		Batch:       b.ID,
		TankID:      t.ID,
	})
}
