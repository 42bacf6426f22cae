package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource_InvalidCapacity(t *testing.T) {
	s := NewSimulator()
	_, err := NewResource(s, "kettles", 0)
	assert.Error(t, err)
	_, err = NewResource(s, "kettles", -2)
	assert.Error(t, err)
	_, err = NewResource(nil, "kettles", 1)
	assert.Error(t, err)
}

func TestResource_ThreeSlotsFourRequesters(t *testing.T) {
	// GIVEN three kettles and four simultaneous requesters holding for one day
	s := NewSimulator()
	kettles, err := NewResource(s, "kettles", 3)
	require.NoError(t, err)
	var grants []grant
	for _, name := range []string{"a", "b", "c", "d"} {
		s.Spawn(name, holder(kettles, name, 0, 1, &grants))
	}

	// AND a probe halfway through the first brew
	var holdersMid, queueMid int
	s.Schedule(NewFuncEvent(0.5, func(*Simulator) {
		holdersMid = kettles.Holders()
		queueMid = kettles.QueueLen()
	}))

	s.Run(10)

	// THEN exactly three start at once and the fourth starts at the first release
	assert.Equal(t, []grant{{"a", 0}, {"b", 0}, {"c", 0}, {"d", 1}}, grants)
	assert.Equal(t, 3, holdersMid)
	assert.Equal(t, 1, queueMid)
	assert.Equal(t, 1, kettles.Waits())
	assert.Equal(t, 0, kettles.Holders())
	assert.Equal(t, 3, kettles.Available())
}

func TestResource_ReleaseGrantsLongestWaiter(t *testing.T) {
	// GIVEN one slot held until day 5, then waiters arriving on days 2 and 1
	s := NewSimulator()
	tank, err := NewResource(s, "brite", 1)
	require.NoError(t, err)
	var grants []grant
	s.Spawn("owner", holder(tank, "owner", 0, 5, &grants))
	s.Spawn("late", holder(tank, "late", 2, 1, &grants))
	s.Spawn("early", holder(tank, "early", 1, 1, &grants))

	s.Run(20)

	// THEN the slot passes in arrival order, with no gap after each release
	assert.Equal(t, []grant{{"owner", 0}, {"early", 5}, {"late", 6}}, grants)
}

func TestResource_ReleaseWithoutHolderPanics(t *testing.T) {
	s := NewSimulator()
	r, err := NewResource(s, "kettles", 1)
	require.NoError(t, err)
	assert.Panics(t, func() { r.Release() })
}
