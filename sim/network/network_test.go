package network

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queuesim/queuesim/sim"
	"github.com/queuesim/queuesim/sim/analytic"
	"github.com/queuesim/queuesim/sim/dist"
	"github.com/queuesim/queuesim/sim/rng"
)

func TestBuildMMC_MatchesErlangCWithinSamplingNoise(t *testing.T) {
	// GIVEN a stable M/M/c system run long enough for steady state to
	// dominate the transient
	simr := sim.NewSimulator(rng.NewSimulationKey(7))
	model, err := BuildMMC(simr, 10, 8, 1, 50_000)
	require.NoError(t, err)

	simr.Run(1_000_000)

	// THEN the simulated mean waiting time is close to the closed-form
	// M/M/1 solution (E[I]=10, E[S]=8 -> rho=0.8, E[W]=32)
	ec := analytic.NewErlangC(1.0/10, 1.0/8, 1)
	require.InDelta(t, ec.EW(), model.Process.WaitTime.Mean(), ec.EW()*0.15)
}

func TestBuildMMCPriority_RejectsNilPriorityFunc(t *testing.T) {
	simr := sim.NewSimulator(rng.NewSimulationKey(1))
	_, err := BuildMMCPriority(simr, 10, 8, 1, 100, nil)
	require.Error(t, err)
}

func TestBuildMMCImpatienceRetry_HonorsCallersServerCount(t *testing.T) {
	// GIVEN c=3, unlike the original Python model which silently forces
	// c=1
	simr := sim.NewSimulator(rng.NewSimulationKey(3))
	model, err := BuildMMCImpatienceRetry(simr, 1, 2, 5, 0, 10, 3, 1000)
	require.NoError(t, err)
	require.Equal(t, 3, model.Servers)
}

func TestBuildMMCImpatienceRetry_NoRetryDropsRenegedClients(t *testing.T) {
	simr := sim.NewSimulator(rng.NewSimulationKey(3))
	model, err := BuildMMCImpatienceRetry(simr, 100, 1, 1, 0, 10, 1, 20)
	require.NoError(t, err)
	require.Nil(t, model.RetryDecide)
	require.Nil(t, model.RetryDelay)

	simr.Run(10000)
	// every generated client was either served or reneged straight to
	// Dispose; none are still in flight since there is no retry loop
	require.Equal(t, model.Source.Generated(), model.Dispose.Disposed())
}

func TestBuildMMCImpatienceRetry_RetryLoopsBackToProcess(t *testing.T) {
	simr := sim.NewSimulator(rng.NewSimulationKey(5))
	model, err := BuildMMCImpatienceRetry(simr, 50, 1, 1, 1, 5, 1, 200)
	require.NoError(t, err)
	require.NotNil(t, model.RetryDecide)
	require.NotNil(t, model.RetryDelay)

	simr.Run(100000)
	// a retry probability of 1 means every reneging client eventually
	// cycles back through the retry delay into Process, and eventually
	// every generated client reaches Dispose
	require.Equal(t, model.Source.Generated(), model.Dispose.Disposed())
}

func TestBuildCallCenter_MatchesReferenceMMOneSolution(t *testing.T) {
	// GIVEN the parameters from original_source/example_sim_call_center.py
	// with impatience, forwarding and retry all disabled: E[I]=100,
	// E[S]=80, c=1 -> E[W]=320, E[V]=400
	simr := sim.NewSimulator(rng.NewSimulationKey(11))
	cc, err := BuildCallCenter(simr, 100, 80, 0, 0, 0, 0, 900, 1, 100_000)
	require.NoError(t, err)

	simr.Run(50_000_000)

	require.InDelta(t, 320, cc.Process.WaitTime.Mean(), 320*0.1)
	require.InDelta(t, 400, cc.Process.ResidenceTime.Mean(), 400*0.1)
}

func TestBuildCallCenter_ImpatienceSendsSomeClientsToRetry(t *testing.T) {
	simr := sim.NewSimulator(rng.NewSimulationKey(13))
	cc, err := BuildCallCenter(simr, 50, 80, 60, 0, 0, 0.5, 40, 1, 5_000)
	require.NoError(t, err)

	simr.Run(5_000_000)

	require.Greater(t, cc.Process.WaitTime.Count(), int64(0))
	require.Greater(t, cc.Dispose.Disposed(), int64(0))
}

func TestBuildNetwork_SingleEdgeSkipsDecideStation(t *testing.T) {
	simr := sim.NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(1)
	require.NoError(t, err)
	interarrival, _, err := dist.NewDeterministic(1)
	require.NoError(t, err)

	source := sim.NewSource("Source", "job", interarrival)
	source.SetTargetCount(5)
	process := sim.NewProcess("Process", 1, svc)
	dispose := sim.NewDispose("Dispose")

	err = BuildNetwork(simr, []*sim.Source{source}, []*sim.Process{process}, []*sim.Dispose{dispose},
		[][]float64{{1}}, [][]float64{{0, 1}})
	require.NoError(t, err)

	source.Attach(simr)
	process.Attach(simr)
	dispose.Attach(simr)

	simr.Run(100)
	require.Equal(t, int64(5), dispose.Disposed())
	// a single edge is wired directly, with no Decide station registered
	require.NotContains(t, simr.Stations, "Process.route")
}

func TestBuildNetwork_MultiEdgeSplitsViaDecide(t *testing.T) {
	simr := sim.NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(1)
	require.NoError(t, err)
	interarrival, _, err := dist.NewDeterministic(1)
	require.NoError(t, err)

	source := sim.NewSource("Source", "job", interarrival)
	source.SetTargetCount(1000)
	p1 := sim.NewProcess("P1", 10, svc)
	p2 := sim.NewProcess("P2", 10, svc)
	d1 := sim.NewDispose("D1")
	d2 := sim.NewDispose("D2")

	err = BuildNetwork(simr, []*sim.Source{source}, []*sim.Process{p1, p2}, []*sim.Dispose{d1, d2},
		[][]float64{{1, 1}},
		[][]float64{{0, 0, 1, 0}, {0, 0, 0, 1}})
	require.NoError(t, err)

	source.Attach(simr)
	p1.Attach(simr)
	p2.Attach(simr)
	d1.Attach(simr)
	d2.Attach(simr)

	simr.Run(10000)
	require.Equal(t, int64(1000), d1.Disposed()+d2.Disposed())
	require.Greater(t, d1.Disposed(), int64(0))
	require.Greater(t, d2.Disposed(), int64(0))
}

func TestShortestQueueRouter_PrefersEmptierBranch(t *testing.T) {
	simr := sim.NewSimulator(rng.NewSimulationKey(1))
	svc, _, err := dist.NewDeterministic(1000)
	require.NoError(t, err)

	busy := sim.NewProcess("busy", 1, svc)
	idle := sim.NewProcess("idle", 1, svc)
	sink := sim.NewDispose("sink")
	busy.SetNext(sink)
	idle.SetNext(sink)
	busy.Attach(simr)
	idle.Attach(simr)
	sink.Attach(simr)

	router, err := NewShortestQueueRouter("router", busy, idle)
	require.NoError(t, err)
	router.Attach(simr)

	// occupy "busy" with one client in service and one waiting, "idle" empty
	busy.Accept(simr, 0, sim.NewClient(1, "job", 0))
	busy.Accept(simr, 0, sim.NewClient(2, "job", 0))

	// THEN a new client routed through the shortest-queue router picks
	// "idle", since "busy" has one waiting
	router.Accept(simr, 0, sim.NewClient(3, "job", 0))
	require.Equal(t, 0, idle.QueueLen()) // immediately dispatched into the free server
	require.Equal(t, 1, busy.QueueLen())
}

func TestNewShortestQueueRouter_RequiresAtLeastTwoBranches(t *testing.T) {
	svc, _, err := dist.NewDeterministic(1)
	require.NoError(t, err)
	only := sim.NewProcess("only", 1, svc)
	_, err = NewShortestQueueRouter("router", only)
	require.Error(t, err)
}

func TestExportGraph_ListsStationsAndEdges(t *testing.T) {
	simr := sim.NewSimulator(rng.NewSimulationKey(1))
	_, err := BuildMMC(simr, 10, 5, 1, 10)
	require.NoError(t, err)

	out := ExportGraph(simr)
	require.Contains(t, out, `"Source"`)
	require.Contains(t, out, `"Process"`)
	require.Contains(t, out, `"Dispose"`)
	require.Contains(t, out, `"Source" -> "Process"`)
	require.Contains(t, out, `"Process" -> "Dispose"`)
}
