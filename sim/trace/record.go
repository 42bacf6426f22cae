// Package trace provides stage-transition and contention recording for brewhouse runs.
// This package has no dependencies on sim/ or sim/brewery/; it stores pure data types.
package trace

// StageRecord captures a batch entering a stage of the brew cycle.
type StageRecord struct {
	BatchID string
	Recipe  string
	Stage   string
	Clock   float64
}

// ContentionRecord captures a process finding a resource or store unable to
// serve it on arrival.
type ContentionRecord struct {
	BatchID  string
	Resource string
	Clock    float64
	Queued   int // waiters ahead of this one at arrival
}

// TankMissRecord captures a brew cycle that scanned every fermentation tank
// and found none free.
type TankMissRecord struct {
	BatchID string
	Clock   float64
	Policy  string // what the cycle did next: drop, retry or block
}
