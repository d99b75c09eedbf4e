package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queuesim/queuesim/sim/dist"
	"github.com/queuesim/queuesim/sim/rng"
)

func TestProcess_SingleServerFIFO(t *testing.T) {
	// GIVEN a single-server station and three clients arriving at once
	s := NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(5)
	require.NoError(t, err)

	sink := newRecordingStation("sink")
	p := NewProcess("server", 1, svc).SetNext(sink)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0))
	p.Accept(s, 0, NewClient(2, "job", 0))
	p.Accept(s, 0, NewClient(3, "job", 0))

	// WHEN the simulation runs to completion
	s.Run(100)

	// THEN all three are served in FCFS order, 5 time units apart
	require.Len(t, sink.accepted, 3)
	require.Equal(t, []uint64{1, 2, 3}, []uint64{sink.accepted[0].ID, sink.accepted[1].ID, sink.accepted[2].ID})
	require.Equal(t, int64(3), p.ServiceTime.Count())
	require.Equal(t, 5.0, p.ServiceTime.Mean())
	// client 3 waited for both client 1 and client 2 to be served: 10 units
	require.InDelta(t, (0.0+5.0+10.0)/3.0, p.WaitTime.Mean(), 1e-9)
}

func TestProcess_MultipleServersRunConcurrently(t *testing.T) {
	s := NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(5)
	require.NoError(t, err)

	sink := newRecordingStation("sink")
	p := NewProcess("server", 2, svc).SetNext(sink)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0))
	p.Accept(s, 0, NewClient(2, "job", 0))

	s.Run(100)

	// THEN neither client waited, since both servers were free
	require.Equal(t, 0.0, p.WaitTime.Mean())
}

func TestProcess_CapacityBlocksExcessClients(t *testing.T) {
	s := NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(100)
	require.NoError(t, err)

	balk := newRecordingStation("balk")
	sink := newRecordingStation("sink")
	p := NewProcess("server", 1, svc).SetCapacity(1).SetNext(sink).SetBalkTo(balk)
	balk.Attach(s)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0))
	p.Accept(s, 0, NewClient(2, "job", 0)) // over capacity: should balk

	s.Run(200)

	require.Len(t, balk.accepted, 1)
	require.Equal(t, uint64(2), balk.accepted[0].ID)
	require.Equal(t, OutcomeBalked, balk.accepted[0].hops[len(balk.accepted[0].hops)-1].Outcome)
}

func TestProcess_PatienceExpiresBeforeService(t *testing.T) {
	// GIVEN a busy single server and a client whose patience is shorter
	// than the time until the server frees up
	s := NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(100)
	require.NoError(t, err)
	patience, _, err := dist.NewDeterministic(10)
	require.NoError(t, err)

	renege := newRecordingStation("renege")
	sink := newRecordingStation("sink")
	p := NewProcess("server", 1, svc).SetPatience(patience).SetNext(sink).SetRenegeTo(renege)
	renege.Attach(s)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0)) // occupies the only server for 100 units
	p.Accept(s, 0, NewClient(2, "job", 0)) // will renege at t=10

	s.Run(200)

	require.Len(t, renege.accepted, 1)
	require.Equal(t, uint64(2), renege.accepted[0].ID)
	require.Len(t, sink.accepted, 1)
	require.Equal(t, uint64(1), sink.accepted[0].ID)
}

func TestProcess_PatientClientStillServedIfDispatchedFirst(t *testing.T) {
	// GIVEN a client with a patience timer that is cancelled once it
	// enters service
	s := NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(5)
	require.NoError(t, err)
	patience, _, err := dist.NewDeterministic(1)
	require.NoError(t, err)

	renege := newRecordingStation("renege")
	sink := newRecordingStation("sink")
	p := NewProcess("server", 1, svc).SetPatience(patience).SetNext(sink).SetRenegeTo(renege)
	renege.Attach(s)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0)) // dispatched immediately, patience cancelled

	s.Run(20)

	require.Empty(t, renege.accepted)
	require.Len(t, sink.accepted, 1)
}

func TestProcess_BatchService(t *testing.T) {
	// GIVEN a server that processes 2 clients together
	s := NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(5)
	require.NoError(t, err)

	sink := newRecordingStation("sink")
	p := NewProcess("server", 1, svc).SetBatchSize(2).SetNext(sink)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0))
	p.Accept(s, 0, NewClient(2, "job", 0))
	p.Accept(s, 0, NewClient(3, "job", 0))

	s.Run(100)

	// THEN clients 1 and 2 finish together at t=5; client 3 stays queued,
	// since no second client arrives to fill its batch
	require.Len(t, sink.accepted, 2)
	for _, c := range sink.accepted[:2] {
		last := c.hops[len(c.hops)-1]
		require.Equal(t, 5.0, last.Exit)
	}
	require.Equal(t, 1, p.QueueLen())
}

func TestProcess_PostProcessingDelaysForwarding(t *testing.T) {
	s := NewSimulator(rng.NewSimulationKey(1))
	svc, _, _ := dist.NewDeterministic(5)
	pp, _, _ := dist.NewDeterministic(3)

	sink := newRecordingStation("sink")
	p := NewProcess("server", 1, svc).SetPostProcessing(pp).SetNext(sink)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0))

	s.Run(20)

	require.Len(t, sink.accepted, 1)
	last := sink.accepted[0].hops[len(sink.accepted[0].hops)-1]
	require.Equal(t, 8.0, last.Exit) // 5 service + 3 post-processing
}

func TestProcess_LIFODisciplineServesMostRecentArrivalFirst(t *testing.T) {
	// GIVEN a single server whose first service call (client 1) runs
	// long enough for two more clients to queue up behind it
	s := NewSimulator(rng.NewSimulationKey(1))
	calls := 0
	svc := func() float64 {
		calls++
		if calls == 1 {
			return 100
		}
		return 5
	}

	sink := newRecordingStation("sink")
	p := NewProcess("server", 1, svc).SetPriority(PriorityLIFO).SetNext(sink)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0)) // occupies the only server for 100 units
	p.Accept(s, 1, NewClient(2, "job", 1))
	p.Accept(s, 2, NewClient(3, "job", 2)) // arrives later, waits less

	s.Run(200)

	// THEN the most recently arrived waiting client (3) dequeues first
	// once the server frees up, ahead of the longer-waiting client (2)
	require.Len(t, sink.accepted, 3)
	require.Equal(t, []uint64{1, 3, 2}, []uint64{sink.accepted[0].ID, sink.accepted[1].ID, sink.accepted[2].ID})
}

func TestProcess_ServerSlotStaysBusyThroughPostProcessing(t *testing.T) {
	// GIVEN a single server with service=5 and post-processing=3, and two
	// clients both present at t=0
	s := NewSimulator(rng.NewSimulationKey(1))
	svc, _, _ := dist.NewDeterministic(5)
	pp, _, _ := dist.NewDeterministic(3)

	sink := newRecordingStation("sink")
	p := NewProcess("server", 1, svc).SetPostProcessing(pp).SetNext(sink)
	sink.Attach(s)
	p.Attach(s)

	p.Accept(s, 0, NewClient(1, "job", 0))
	p.Accept(s, 0, NewClient(2, "job", 0))

	s.Run(30)

	// THEN the second client can't start service until the first has
	// fully left the slot at t=8 (service + post-processing), not at
	// t=5 when base service alone finishes. It exits at t=8+5+3=16.
	require.Len(t, sink.accepted, 2)
	first := sink.accepted[0].hops[len(sink.accepted[0].hops)-1]
	second := sink.accepted[1].hops[len(sink.accepted[1].hops)-1]
	require.Equal(t, 8.0, first.Exit)
	require.Equal(t, 16.0, second.Exit)
	require.Equal(t, 8.0, p.WaitTime.Mean()*2) // second client's sole wait was 8
}
