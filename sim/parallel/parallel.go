// Package parallel runs a batch of independent simulations
// concurrently and collects their results, per spec.md §4.9.
//
// Each simulation instance is fully self-contained — its own
// Simulator, its own PartitionedRNG, its own client id counter and
// event heap — so no synchronization is needed between workers beyond
// waiting for them all to finish. Distribution parameters cross the
// worker boundary as dist.Spec recipes rather than live
// dist.Generator closures, since a Generator is bound to one
// goroutine's *rand.Rand and isn't meaningful to share or copy.
package parallel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/queuesim/queuesim/sim"
	"github.com/queuesim/queuesim/sim/dist"
	"github.com/queuesim/queuesim/sim/rng"
)

// SimSpec describes one Source -> Process -> Dispose simulation to run
// as part of a batch.
type SimSpec struct {
	Seed    rng.SimulationKey
	Horizon float64
	Servers int
	Count   int64 // 0 = unbounded, run until Horizon

	Interarrival dist.Spec
	Service      dist.Spec
	Patience     dist.Spec // zero value (Kind == "") means no impatience
}

// Result is one SimSpec's completed run: the simulator (for
// EventCount/WallClock) and its three stations, for statistics access.
type Result struct {
	Spec    SimSpec
	Sim     *sim.Simulator
	Source  *sim.Source
	Process *sim.Process
	Dispose *sim.Dispose
}

// Run executes every spec concurrently, one goroutine each, and
// returns their results in the same order as specs. If any worker
// fails (a malformed Spec) or ctx is cancelled, Run returns the first
// error and no results.
func Run(ctx context.Context, specs []SimSpec) ([]Result, error) {
	results := make([]Result, len(specs))
	g, gctx := errgroup.WithContext(ctx)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r, err := runOne(spec)
			if err != nil {
				return fmt.Errorf("parallel: worker %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(spec SimSpec) (Result, error) {
	simr := sim.NewSimulator(spec.Seed)

	interarrival, err := dist.New(spec.Interarrival, simr.RNG("Source"))
	if err != nil {
		return Result{}, err
	}
	service, err := dist.New(spec.Service, simr.RNG("Process"))
	if err != nil {
		return Result{}, err
	}

	source := sim.NewSource("Source", "client", interarrival)
	source.SetTargetCount(spec.Count)
	process := sim.NewProcess("Process", spec.Servers, service)
	if spec.Patience.Kind != "" {
		patience, err := dist.New(spec.Patience, simr.RNG("Process.patience"))
		if err != nil {
			return Result{}, err
		}
		process.SetPatience(patience)
	}
	dispose := sim.NewDispose("Dispose")

	source.SetNext(process)
	process.SetNext(dispose)

	source.Attach(simr)
	process.Attach(simr)
	dispose.Attach(simr)

	simr.Run(spec.Horizon)

	return Result{Spec: spec, Sim: simr, Source: source, Process: process, Dispose: dispose}, nil
}
