package network

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queuesim/queuesim/sim"
	"github.com/queuesim/queuesim/sim/dist"
	"github.com/queuesim/queuesim/sim/rng"
)

// End-to-end reference scenario, grounded on original_source/
// exmaple_sim_shortest_queue.py: two parallel single-server stations
// fed by join-shortest-queue routing versus a 50/50 random split, and a
// single two-server station at the same total service rate as a lower
// bound. Mean queue length must order: single two-server station <
// join-shortest-queue < random split.
func TestScenario_ShortestQueue_BeatsRandomSplitButNotPooling(t *testing.T) {
	const meanI, meanS = 50.0, 80.0
	const count = 200_000

	pooledENQ := buildPooledTwoServer(t, meanI, meanS, count)
	jsqENQ := buildShortestQueuePair(t, meanI, meanS, count)
	splitENQ := buildRandomSplitPair(t, meanI, meanS, count)

	require.Less(t, pooledENQ, jsqENQ)
	require.Less(t, jsqENQ, splitENQ)
}

func buildPooledTwoServer(t *testing.T, meanI, meanS float64, count int64) float64 {
	t.Helper()
	simr := sim.NewSimulator(rng.NewSimulationKey(1))
	model, err := BuildMMC(simr, meanI, meanS, 2, count)
	require.NoError(t, err)
	simr.Run(float64(count) * meanI * 20)
	return model.Process.QueueLength.Mean()
}

func buildShortestQueuePair(t *testing.T, meanI, meanS float64, count int64) float64 {
	t.Helper()
	simr := sim.NewSimulator(rng.NewSimulationKey(1))

	interarrival, _, err := dist.NewExponential(simr.RNG("Source"), meanI)
	require.NoError(t, err)
	svc1, _, err := dist.NewExponential(simr.RNG("P1"), meanS)
	require.NoError(t, err)
	svc2, _, err := dist.NewExponential(simr.RNG("P2"), meanS)
	require.NoError(t, err)

	source := sim.NewSource("Source", "client", interarrival)
	source.SetTargetCount(count)
	p1 := sim.NewProcess("P1", 1, svc1)
	p2 := sim.NewProcess("P2", 1, svc2)
	dispose := sim.NewDispose("Dispose")
	p1.SetNext(dispose)
	p2.SetNext(dispose)

	router, err := NewShortestQueueRouter("Router", p1, p2)
	require.NoError(t, err)
	source.SetNext(router)

	source.Attach(simr)
	router.Attach(simr)
	p1.Attach(simr)
	p2.Attach(simr)
	dispose.Attach(simr)

	simr.Run(float64(count) * meanI * 20)
	return p1.QueueLength.Mean() + p2.QueueLength.Mean()
}

func buildRandomSplitPair(t *testing.T, meanI, meanS float64, count int64) float64 {
	t.Helper()
	simr := sim.NewSimulator(rng.NewSimulationKey(1))

	interarrival, _, err := dist.NewExponential(simr.RNG("Source"), meanI)
	require.NoError(t, err)
	svc1, _, err := dist.NewExponential(simr.RNG("P1"), meanS)
	require.NoError(t, err)
	svc2, _, err := dist.NewExponential(simr.RNG("P2"), meanS)
	require.NoError(t, err)

	source := sim.NewSource("Source", "client", interarrival)
	source.SetTargetCount(count)
	p1 := sim.NewProcess("P1", 1, svc1)
	p2 := sim.NewProcess("P2", 1, svc2)
	dispose := sim.NewDispose("Dispose")
	p1.SetNext(dispose)
	p2.SetNext(dispose)

	split, err := sim.NewDecideByWeight("Split", []sim.Station{p1, p2}, []float64{1, 1})
	require.NoError(t, err)
	source.SetNext(split)

	source.Attach(simr)
	split.Attach(simr)
	p1.Attach(simr)
	p2.Attach(simr)
	dispose.Attach(simr)

	simr.Run(float64(count) * meanI * 20)
	return p1.QueueLength.Mean() + p2.QueueLength.Mean()
}
