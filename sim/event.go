package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in days) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ResumeEvent hands control back to a suspended process.
type ResumeEvent struct {
	time float64 // Simulation time of the resume (in days)
	Proc *Proc   // The process to resume
}

// Timestamp returns the scheduled time of the ResumeEvent.
func (e *ResumeEvent) Timestamp() float64 {
	return e.time
}

// Execute runs the process until its next suspension point.
func (e *ResumeEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Resume: %s at %.2f days", e.Proc, e.time)
	sim.resume(e.Proc)
}

// FuncEvent runs an arbitrary callback at a fixed time. Used for
// instrumentation and tests; processes should prefer Timeout.
type FuncEvent struct {
	time float64
	Fn   func(*Simulator)
}

// NewFuncEvent creates a FuncEvent firing at time t.
func NewFuncEvent(t float64, fn func(*Simulator)) *FuncEvent {
	return &FuncEvent{time: t, Fn: fn}
}

// Timestamp returns the scheduled time of the FuncEvent.
func (e *FuncEvent) Timestamp() float64 {
	return e.time
}

// Execute invokes the callback.
func (e *FuncEvent) Execute(sim *Simulator) {
	e.Fn(sim)
}
