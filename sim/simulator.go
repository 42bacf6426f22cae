// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// queuedEvent pairs an event with the sequence number it was scheduled under.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp, then by
// scheduling sequence so that simultaneous events run first-in first-out.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds virtual time and the event loop.
//
// Thread-safety: NOT thread-safe. A Simulator and everything attached to it
// must be driven from a single goroutine. Independent Simulators share nothing.
type Simulator struct {
	Clock float64
	// EventQueue has all pending events, ordered by (time, seq)
	EventQueue EventQueue
	nextSeq    uint64
	nextPID    int
	// Processed counts executed events, for diagnostics.
	Processed int
}

// NewSimulator creates a Simulator at virtual time zero with an empty queue.
func NewSimulator() *Simulator {
	return &Simulator{
		Clock:      0,
		EventQueue: make(EventQueue, 0),
	}
}

// Now returns the current virtual time in days.
func (sim *Simulator) Now() float64 {
	return sim.Clock
}

// Schedule pushes an event into the EventQueue. Scheduling into the past
// is a programming error.
func (sim *Simulator) Schedule(ev Event) {
	t := ev.Timestamp()
	if math.IsNaN(t) || t < sim.Clock {
		panic(fmt.Sprintf("Schedule: event %T at %v is before clock %v", ev, t, sim.Clock))
	}
	heap.Push(&sim.EventQueue, queuedEvent{ev: ev, seq: sim.nextSeq})
	sim.nextSeq++
}

// Pending returns the number of events still queued.
func (sim *Simulator) Pending() int {
	return len(sim.EventQueue)
}

// Run executes every event with a timestamp at or before until, then leaves
// the clock at until. Events beyond until stay queued; the processes waiting
// on them are abandoned without error.
func (sim *Simulator) Run(until float64) {
	if math.IsNaN(until) || until < sim.Clock {
		panic(fmt.Sprintf("Run: until %v is before clock %v", until, sim.Clock))
	}
	for len(sim.EventQueue) > 0 {
		if sim.EventQueue[0].ev.Timestamp() > until {
			break
		}
		// get the next event to be simulated
		qe := heap.Pop(&sim.EventQueue).(queuedEvent)
		// advance the clock
		sim.Clock = qe.ev.Timestamp()
		logrus.Tracef("[day %9.3f] Executing %T", sim.Clock, qe.ev)
		qe.ev.Execute(sim)
		sim.Processed++
	}
	sim.Clock = until
	logrus.Debugf("[day %9.3f] Simulation ended with %d pending events", sim.Clock, len(sim.EventQueue))
}

// resumeAt schedules p to continue at time t.
func (sim *Simulator) resumeAt(p *Proc, t float64) {
	sim.Schedule(&ResumeEvent{time: t, Proc: p})
}

// resume runs p's body until it suspends again and applies the returned command.
func (sim *Simulator) resume(p *Proc) {
	if p.done {
		return
	}
	cmd := p.body.Step(sim)
	if cmd == nil {
		cmd = exitCommand{}
	}
	cmd.apply(sim, p)
}
