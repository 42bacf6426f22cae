// Package sim provides the discrete-event simulation kernel for brewsim.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - simulator.go: the virtual clock, the event queue and the Run loop
//   - process.go: processes as explicit state machines and the commands they suspend on
//   - resource.go: capacity-limited slots granted in arrival order
//   - store.go: quantity containers with atomic, blocking put/get
//
// # Execution Model
//
// Everything runs on one goroutine. A Process is resumed by a ResumeEvent, runs
// its Step until the next suspension point and returns that suspension as a
// Command. The simulator applies the command, which either schedules the next
// resume directly (timeouts, immediately satisfiable requests) or parks the
// process in a resource or store wait queue until a release, put or get frees
// it. Events at the same virtual time run in scheduling order.
//
// # Sub-packages
//
//   - sim/brewery/: the brewhouse model (recipes, batches, tanks, process roles)
//   - sim/trace/: stage and contention records collected during a run
//   - sim/chart/: ASCII rendering of time series
//   - sim/export/: SQLite sink for finished run reports
package sim
