package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Process is a resumable unit of work modelled as an explicit state machine.
// Step runs from the current state to the next suspension point and returns
// that suspension. Returning nil or Exit() finishes the process.
type Process interface {
	Step(sim *Simulator) Command
}

// ProcessFunc adapts a plain function to the Process interface. The function
// is responsible for keeping its own state between calls.
type ProcessFunc func(sim *Simulator) Command

// Step calls f.
func (f ProcessFunc) Step(sim *Simulator) Command { return f(sim) }

// Proc is the simulator's handle on a spawned process.
type Proc struct {
	ID      int
	Name    string
	body    Process
	done    bool
	joiners []*Proc
}

// Done reports whether the process has exited.
func (p *Proc) Done() bool { return p.done }

func (p *Proc) String() string {
	return fmt.Sprintf("%s#%d", p.Name, p.ID)
}

// Spawn registers a process and schedules its first step at the current time.
// The new process is independent; the caller only waits for it via Join.
func (sim *Simulator) Spawn(name string, body Process) *Proc {
	if body == nil {
		panic("Spawn: body must not be nil")
	}
	sim.nextPID++
	p := &Proc{ID: sim.nextPID, Name: name, body: body}
	logrus.Debugf("[day %9.3f] Spawned %s", sim.Clock, p)
	sim.resumeAt(p, sim.Clock)
	return p
}

// Command is a suspension returned from Process.Step. The set of commands is
// closed: Timeout, Join, Exit, Resource.Request, LevelStore.Put and LevelStore.Get.
type Command interface {
	apply(sim *Simulator, p *Proc)
}

type timeoutCommand struct {
	delay float64
}

// Timeout suspends the process for d days. A zero delay yields to every
// event already scheduled for the current instant.
func Timeout(d float64) Command {
	if math.IsNaN(d) || d < 0 {
		panic(fmt.Sprintf("Timeout: delay must be non-negative, got %v", d))
	}
	return timeoutCommand{delay: d}
}

func (c timeoutCommand) apply(sim *Simulator, p *Proc) {
	sim.resumeAt(p, sim.Clock+c.delay)
}

type joinCommand struct {
	child *Proc
}

// Join suspends the process until child exits. Joining a finished process
// resumes at the current time.
func Join(child *Proc) Command {
	if child == nil {
		panic("Join: child must not be nil")
	}
	return joinCommand{child: child}
}

func (c joinCommand) apply(sim *Simulator, p *Proc) {
	if c.child.done {
		sim.resumeAt(p, sim.Clock)
		return
	}
	c.child.joiners = append(c.child.joiners, p)
}

type exitCommand struct{}

// Exit finishes the process and wakes every process joined on it.
func Exit() Command { return exitCommand{} }

func (exitCommand) apply(sim *Simulator, p *Proc) {
	p.done = true
	logrus.Debugf("[day %9.3f] %s exited", sim.Clock, p)
	for _, j := range p.joiners {
		sim.resumeAt(j, sim.Clock)
	}
	p.joiners = nil
}
