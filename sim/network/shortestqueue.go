package network

import (
	"fmt"
	"math/rand"

	"github.com/queuesim/queuesim/sim"
)

// ShortestQueueRouter forwards each client to whichever of its branch
// Process stations currently has the fewest waiting clients, breaking
// ties at random. Grounded on
// original_source/exmaple_sim_shortest_queue.py's shortest_queue
// condition, adapted from a single boolean predicate (Go's
// sim.DecideByCondition only supports a yes/no split per arm) into a
// dedicated router that can compare an arbitrary number of branches at
// once.
type ShortestQueueRouter struct {
	name     string
	branches []*sim.Process
	rng      *rand.Rand
}

// NewShortestQueueRouter builds a router over two or more Process
// branches.
func NewShortestQueueRouter(name string, branches ...*sim.Process) (*ShortestQueueRouter, error) {
	if len(branches) < 2 {
		return nil, fmt.Errorf("%w: ShortestQueueRouter requires at least 2 branches", sim.ErrParameter)
	}
	return &ShortestQueueRouter{name: name, branches: branches}, nil
}

func (r *ShortestQueueRouter) Name() string { return r.name }

// Branches returns every Process this router can send a client to, for
// ExportGraph.
func (r *ShortestQueueRouter) Branches() []sim.Station {
	out := make([]sim.Station, len(r.branches))
	for i, b := range r.branches {
		out[i] = b
	}
	return out
}

func (r *ShortestQueueRouter) Attach(simr *sim.Simulator) {
	r.rng = simr.RNG(r.name)
	simr.Register(r)
}

func (r *ShortestQueueRouter) Accept(simr *sim.Simulator, now float64, c *sim.Client) {
	best := []int{0}
	bestLen := r.branches[0].QueueLen()
	for i := 1; i < len(r.branches); i++ {
		l := r.branches[i].QueueLen()
		switch {
		case l < bestLen:
			bestLen = l
			best = []int{i}
		case l == bestLen:
			best = append(best, i)
		}
	}
	choice := best[0]
	if len(best) > 1 {
		choice = best[r.rng.Intn(len(best))]
	}
	c.RecordHop(r.name, now, now, sim.OutcomeRouted)
	r.branches[choice].Accept(simr, now, c)
}
