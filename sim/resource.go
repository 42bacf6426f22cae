package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Resource is a pool of capacity interchangeable slots. Processes request a
// slot, hold it, and release it; waiting requests are granted strictly in
// arrival order.
//
// Invariant: 0 <= Holders() <= Capacity().
type Resource struct {
	sim      *Simulator
	name     string
	capacity int
	holders  int
	waitQ    WaitQueue[*Proc]
	waits    int // number of requests that had to queue
}

// NewResource creates a resource with the given number of slots.
func NewResource(sim *Simulator, name string, capacity int) (*Resource, error) {
	if sim == nil {
		return nil, fmt.Errorf("resource %q: simulator must not be nil", name)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("resource %q: capacity must be positive, got %d", name, capacity)
	}
	return &Resource{sim: sim, name: name, capacity: capacity}, nil
}

// Name returns the resource's label.
func (r *Resource) Name() string { return r.name }

// Capacity returns the number of slots.
func (r *Resource) Capacity() int { return r.capacity }

// Holders returns the number of slots currently granted.
func (r *Resource) Holders() int { return r.holders }

// Available returns the number of free slots.
func (r *Resource) Available() int { return r.capacity - r.holders }

// QueueLen returns the number of processes waiting for a slot.
func (r *Resource) QueueLen() int { return r.waitQ.Len() }

// Waits returns how many requests could not be granted on arrival.
func (r *Resource) Waits() int { return r.waits }

type requestCommand struct {
	res *Resource
}

// Request suspends the calling process until it holds one slot. The caller
// must Release the slot on every path out of the section that uses it.
func (r *Resource) Request() Command {
	return requestCommand{res: r}
}

func (c requestCommand) apply(sim *Simulator, p *Proc) {
	r := c.res
	if r.holders < r.capacity {
		r.holders++
		logrus.Debugf("[day %9.3f] %s granted %s (%d/%d)", sim.Clock, p, r.name, r.holders, r.capacity)
		sim.resumeAt(p, sim.Clock)
		return
	}
	r.waits++
	r.waitQ.Enqueue(p)
	logrus.Debugf("[day %9.3f] %s queued for %s (queue=%d)", sim.Clock, p, r.name, r.waitQ.Len())
}

// Release gives a slot back. If a process is waiting, the slot passes to the
// longest waiter, which resumes at the current time.
func (r *Resource) Release() {
	if r.holders <= 0 {
		panic(fmt.Sprintf("Release: resource %q has no holders", r.name))
	}
	r.holders--
	if next, ok := r.waitQ.Dequeue(); ok {
		r.holders++
		logrus.Debugf("[day %9.3f] %s handed %s (%d/%d)", r.sim.Clock, next, r.name, r.holders, r.capacity)
		r.sim.resumeAt(next, r.sim.Clock)
	}
}
