package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queuesim/queuesim/sim/dist"
	"github.com/queuesim/queuesim/sim/rng"
)

func TestDelay_ForwardsAfterFixedHold(t *testing.T) {
	s := NewSimulator(rng.NewSimulationKey(1))
	hold, _, err := dist.NewDeterministic(7)
	require.NoError(t, err)

	sink := newRecordingStation("sink")
	d := NewDelay("delay", hold).SetNext(sink)
	sink.Attach(s)
	d.Attach(s)

	c := NewClient(1, "job", 0)
	d.Accept(s, 0, c)

	s.Run(20)

	require.Len(t, sink.accepted, 1)
	require.Equal(t, 7.0, d.HoldTime.Mean())
}

func TestDelay_HandlesConcurrentHolds(t *testing.T) {
	// GIVEN two clients held for different durations
	s := NewSimulator(rng.NewSimulationKey(1))
	short, _, _ := dist.NewDeterministic(2)
	long, _, _ := dist.NewDeterministic(8)

	sink := newRecordingStation("sink")
	dShort := NewDelay("short", short).SetNext(sink)
	dLong := NewDelay("long", long).SetNext(sink)
	sink.Attach(s)
	dShort.Attach(s)
	dLong.Attach(s)

	dLong.Accept(s, 0, NewClient(1, "job", 0))
	dShort.Accept(s, 0, NewClient(2, "job", 0))

	s.Run(20)

	// THEN the short hold's client exits before the long hold's, despite
	// having been scheduled second
	require.Len(t, sink.accepted, 2)
	require.Equal(t, uint64(2), sink.accepted[0].ID)
	require.Equal(t, uint64(1), sink.accepted[1].ID)
}
