package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Sample is one observation of a store's level, taken after a committed put or get.
type Sample struct {
	Time  float64
	Level float64
}

// storeRequest is a parked put or get.
type storeRequest struct {
	proc   *Proc
	amount float64
}

func (r storeRequest) String() string {
	return fmt.Sprintf("%s:%g", r.proc, r.amount)
}

// LevelStore is a capacity-bounded container of a continuous quantity (grain,
// packaged pints, tank occupancy). Puts and gets are all-or-nothing: a request
// commits only when its whole amount fits or is on hand, and requests of each
// kind are served in arrival order.
//
// Invariant: 0 <= Level() <= Capacity().
type LevelStore struct {
	sim      *Simulator
	name     string
	capacity float64
	level    float64
	puts     WaitQueue[storeRequest]
	gets     WaitQueue[storeRequest]
	samples  []Sample
}

// NewLevelStore creates a store. Use math.Inf(1) for an unbounded capacity.
func NewLevelStore(sim *Simulator, name string, capacity, initial float64) (*LevelStore, error) {
	if sim == nil {
		return nil, fmt.Errorf("store %q: simulator must not be nil", name)
	}
	if math.IsNaN(capacity) || capacity <= 0 {
		return nil, fmt.Errorf("store %q: capacity must be positive, got %v", name, capacity)
	}
	if math.IsNaN(initial) || initial < 0 {
		return nil, fmt.Errorf("store %q: initial level must be non-negative, got %v", name, initial)
	}
	if initial > capacity {
		return nil, fmt.Errorf("store %q: initial level %v exceeds capacity %v", name, initial, capacity)
	}
	return &LevelStore{sim: sim, name: name, capacity: capacity, level: initial}, nil
}

// Name returns the store's label.
func (s *LevelStore) Name() string { return s.name }

// Level returns the current quantity.
func (s *LevelStore) Level() float64 { return s.level }

// Capacity returns the maximum quantity.
func (s *LevelStore) Capacity() float64 { return s.capacity }

// Samples returns the level history. Callers MUST NOT modify it.
func (s *LevelStore) Samples() []Sample { return s.samples }

// PendingPuts returns the number of parked puts.
func (s *LevelStore) PendingPuts() int { return s.puts.Len() }

// PendingGets returns the number of parked gets.
func (s *LevelStore) PendingGets() int { return s.gets.Len() }

type storeCommand struct {
	store  *LevelStore
	amount float64
	put    bool
}

// Put suspends the caller until amount fits, then adds it atomically.
func (s *LevelStore) Put(amount float64) Command {
	s.checkAmount("Put", amount)
	return storeCommand{store: s, amount: amount, put: true}
}

// Get suspends the caller until amount is on hand, then removes it atomically.
func (s *LevelStore) Get(amount float64) Command {
	s.checkAmount("Get", amount)
	return storeCommand{store: s, amount: amount, put: false}
}

// checkAmount rejects requests that could never be satisfied.
func (s *LevelStore) checkAmount(op string, amount float64) {
	if math.IsNaN(amount) || amount < 0 {
		panic(fmt.Sprintf("%s: store %q amount must be non-negative, got %v", op, s.name, amount))
	}
	if amount > s.capacity {
		panic(fmt.Sprintf("%s: store %q amount %v exceeds capacity %v", op, s.name, amount, s.capacity))
	}
}

func (c storeCommand) apply(sim *Simulator, p *Proc) {
	s := c.store
	req := storeRequest{proc: p, amount: c.amount}
	if c.put {
		s.puts.Enqueue(req)
	} else {
		s.gets.Enqueue(req)
	}
	s.settle()
	if c.put && s.puts.Len() > 0 {
		logrus.Debugf("[day %9.3f] %s waiting to put %g into %s (level=%g/%g)", sim.Clock, p, c.amount, s.name, s.level, s.capacity)
	} else if !c.put && s.gets.Len() > 0 {
		logrus.Debugf("[day %9.3f] %s waiting to get %g from %s (level=%g)", sim.Clock, p, c.amount, s.name, s.level)
	}
}

// settle commits queue heads while either one can make progress. A head that
// cannot be satisfied blocks the requests behind it.
func (s *LevelStore) settle() {
	for {
		progressed := false
		if head, ok := s.puts.Peek(); ok && s.level+head.amount <= s.capacity {
			s.puts.Dequeue()
			s.commit(head, head.amount)
			progressed = true
		}
		if head, ok := s.gets.Peek(); ok && s.level >= head.amount {
			s.gets.Dequeue()
			s.commit(head, -head.amount)
			progressed = true
		}
		if !progressed {
			return
		}
	}
}

func (s *LevelStore) commit(req storeRequest, delta float64) {
	s.level += delta
	s.samples = append(s.samples, Sample{Time: s.sim.Clock, Level: s.level})
	s.sim.resumeAt(req.proc, s.sim.Clock)
}
