package sim

import (
	"hash/fnv"
	"math/rand"
)

// Named random streams. Each process that draws randomness owns one stream so
// extra draws in one never shift the values another sees.
const (
	StreamTaproom = "taproom" // daily demand
	StreamBrewing = "brewing" // recipe choice for new brew cycles
)

// Streams hands out one seeded *rand.Rand per stream name, all derived from a
// single run seed. Equal seeds and configs give identical runs.
//
// Not safe for concurrent use; a simulation runs on one goroutine.
type Streams struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewStreams creates the stream set for a run seed.
func NewStreams(seed int64) *Streams {
	return &Streams{seed: seed, streams: make(map[string]*rand.Rand)}
}

// Seed returns the run seed.
func (s *Streams) Seed() int64 { return s.seed }

// Stream returns the generator for name, creating it on first use. Repeated
// calls return the same instance.
func (s *Streams) Stream(name string) *rand.Rand {
	if r, ok := s.streams[name]; ok {
		return r
	}
	r := rand.New(rand.NewSource(streamSeed(s.seed, name)))
	s.streams[name] = r
	return r
}

// streamSeed mixes the run seed with the FNV-1a hash of the stream name.
func streamSeed(seed int64, name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return seed ^ int64(h.Sum64())
}
