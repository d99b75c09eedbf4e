package sim

import (
	"github.com/queuesim/queuesim/sim/dist"
	"github.com/queuesim/queuesim/sim/stats"
)

// Process is the general-purpose service station: a finite pool of
// servers draining a priority-ordered wait queue, with optional
// capacity blocking, customer patience, batch service, and a
// post-processing step after service completes.
//
// The state machine per client is: arrive -> (blocked, if over
// capacity) -> queued -> (reneged, if patience expires first) ->
// in service -> (post-processing) -> forwarded to next.
type Process struct {
	base

	servers      int
	capacity     int // 0 = unlimited in-system count
	batchSize    int // clients served together per server slot; 0 behaves as 1
	serviceDist  dist.Generator
	patienceDist dist.Generator // nil = infinite patience, never reneges
	postProcess  dist.Generator // nil = no post-processing delay

	next     Station
	balkTo   Station // destination for capacity-blocked clients, nil = drop
	renegeTo Station // destination for patience-expired clients, nil = drop

	queue          *waitQueue
	enqueueAt      map[*Client]float64
	patienceEvents map[*Client]*Event
	busyServers    int
	inSystem       int

	WaitTime      *stats.Discrete
	ServiceTime   *stats.Discrete
	ResidenceTime *stats.Discrete
	WIP           *stats.Continuous
	Utilization   *stats.Continuous
	QueueLength   *stats.Continuous
}

// NewProcess constructs a Process with servers parallel service slots
// drawing service durations from serviceDist. Use the SetX methods to
// configure capacity, priority, patience, batching, and post-processing
// before Attach.
func NewProcess(name string, servers int, serviceDist dist.Generator) *Process {
	return &Process{
		base:           base{name: name},
		servers:        servers,
		batchSize:      1,
		serviceDist:    serviceDist,
		queue:          newWaitQueue(PriorityFCFS),
		enqueueAt:      make(map[*Client]float64),
		patienceEvents: make(map[*Client]*Event),
		WaitTime:       stats.NewDiscrete(),
		ServiceTime:    stats.NewDiscrete(),
		ResidenceTime:  stats.NewDiscrete(),
		WIP:            stats.NewContinuous(0, 0),
		Utilization:    stats.NewContinuous(0, 0),
		QueueLength:    stats.NewContinuous(0, 0),
	}
}

// SetCapacity sets the maximum number of clients allowed in the station
// (queued + in service). 0, the default, means unlimited.
func (p *Process) SetCapacity(k int) *Process { p.capacity = k; return p }

// SetPriority installs a non-default queue ordering.
func (p *Process) SetPriority(fn PriorityFunc) *Process {
	p.queue = newWaitQueue(fn)
	return p
}

// SetPatience installs a patience (reneging) distribution: a client
// still waiting when its draw expires leaves the queue with
// OutcomeReneged and is routed to renegeTo (see SetRenegeTo).
func (p *Process) SetPatience(d dist.Generator) *Process { p.patienceDist = d; return p }

// SetBatchSize sets how many clients are served together per server
// slot (default 1).
func (p *Process) SetBatchSize(n int) *Process { p.batchSize = n; return p }

// SetPostProcessing installs a delay applied after service completes
// and before the client is forwarded (e.g. result write-back, teardown).
func (p *Process) SetPostProcessing(d dist.Generator) *Process { p.postProcess = d; return p }

// SetNext wires the station a client is forwarded to after completing
// service (and any post-processing).
func (p *Process) SetNext(next Station) *Process { p.next = next; return p }

// SetBalkTo wires where capacity-blocked clients are routed. Unset
// means they are simply dropped with OutcomeBalked recorded.
func (p *Process) SetBalkTo(s Station) *Process { p.balkTo = s; return p }

// SetRenegeTo wires where patience-expired clients are routed. Unset
// means they are simply dropped with OutcomeReneged recorded.
func (p *Process) SetRenegeTo(s Station) *Process { p.renegeTo = s; return p }

func (p *Process) Attach(sim *Simulator) {
	p.sim = sim
	sim.Register(p)
}

// Accept admits c to the station: blocked if over capacity, otherwise
// queued and immediately offered to the dispatch loop.
func (p *Process) Accept(sim *Simulator, now float64, c *Client) {
	if p.capacity > 0 && p.inSystem >= p.capacity {
		c.RecordHop(p.name, now, now, OutcomeBalked)
		if p.balkTo != nil {
			p.balkTo.Accept(sim, now, c)
		}
		return
	}

	p.inSystem++
	p.WIP.Set(now, float64(p.inSystem))
	p.enqueueAt[c] = now
	p.queue.Push(c, now)
	p.QueueLength.Set(now, float64(p.queue.Len()))

	if p.patienceDist != nil {
		delay := p.patienceDist()
		client := c
		ev := sim.Schedule(delay, KindPatienceExpiry, func(sim *Simulator) { p.expire(sim, client) })
		p.patienceEvents[c] = ev
	}

	p.dispatch(sim, now)
}

// QueueLen returns the number of clients currently waiting (not yet in
// service). Used by routers such as sim/network's shortest-queue
// condition that need the live state of a Process, not just its
// time-weighted statistics.
func (p *Process) QueueLen() int { return p.queue.Len() }

// InSystem returns the number of clients currently admitted to the
// station (queued + in service).
func (p *Process) InSystem() int { return p.inSystem }

// Branches returns every station this Process can forward a client to:
// next on completion, balkTo on capacity blocking, renegeTo on
// patience expiry. Entries are nil where unwired.
func (p *Process) Branches() []Station { return []Station{p.next, p.balkTo, p.renegeTo} }

func (p *Process) effectiveBatchSize() int {
	if p.batchSize < 1 {
		return 1
	}
	return p.batchSize
}

// dispatch pulls as many batches as there are free servers and waiting
// clients to fill them.
func (p *Process) dispatch(sim *Simulator, now float64) {
	want := p.effectiveBatchSize()
	for p.busyServers < p.servers && p.queue.Len() >= want {
		// Rekey before every Pop: priority functions that depend on
		// waited-so-far (aging, LIFO) only produce the right ordering
		// against the elapsed wait as of now, not the wait at enqueue
		// time.
		p.queue.Rekey(now)
		batch := make([]*Client, 0, want)
		for len(batch) < want && p.queue.Len() > 0 {
			c := p.queue.Pop()
			if ev, ok := p.patienceEvents[c]; ok {
				sim.Cancel(ev)
				delete(p.patienceEvents, c)
			}
			wait := now - p.enqueueAt[c]
			p.WaitTime.Record(wait)
			c.RecordWait(wait)
			batch = append(batch, c)
		}
		p.QueueLength.Set(now, float64(p.queue.Len()))
		if len(batch) == 0 {
			break
		}
		p.busyServers++
		p.Utilization.Set(now, float64(p.busyServers))
		startedAt := now
		svc := p.serviceDist()
		sim.Schedule(svc, KindServiceEnd, func(sim *Simulator) { p.finishService(sim, batch, startedAt) })
	}
}

// finishService ends the service stage for a batch. The server slot
// stays busy through post-processing: busyServers is only decremented
// once the last member of the batch reaches complete(), since that is
// when the slot is actually free for dispatch again.
func (p *Process) finishService(sim *Simulator, batch []*Client, startedAt float64) {
	now := sim.Now()
	pending := len(batch)

	for _, c := range batch {
		p.ServiceTime.Record(now - startedAt)
		c.RecordService(now - startedAt)
		client := c
		finish := func(sim *Simulator) {
			pending--
			p.complete(sim, client, pending == 0)
		}
		if p.postProcess != nil {
			pp := p.postProcess()
			client.RecordService(pp)
			sim.Schedule(pp, KindPostProcessingEnd, finish)
		} else {
			finish(sim)
		}
	}
}

// complete finishes a single client's stay at the station. releasesSlot
// is true for the last member of its batch to finish post-processing
// (or the only member, for an unbatched station) — that is the point at
// which the occupied server slot actually frees up.
func (p *Process) complete(sim *Simulator, c *Client, releasesSlot bool) {
	now := sim.Now()
	p.inSystem--
	p.WIP.Set(now, float64(p.inSystem))
	enter := p.enqueueAt[c]
	delete(p.enqueueAt, c)
	p.ResidenceTime.Record(now - enter)
	c.RecordHop(p.name, enter, now, OutcomeServed)
	if releasesSlot {
		p.busyServers--
		p.Utilization.Set(now, float64(p.busyServers))
		p.dispatch(sim, now)
	}
	if p.next != nil {
		p.next.Accept(sim, now, c)
	}
}

func (p *Process) expire(sim *Simulator, c *Client) {
	if !p.queue.Remove(c) {
		// already popped by dispatch between scheduling and firing of
		// this timer; service has the only valid claim on the client.
		return
	}
	now := sim.Now()
	delete(p.patienceEvents, c)
	p.inSystem--
	p.WIP.Set(now, float64(p.inSystem))
	p.QueueLength.Set(now, float64(p.queue.Len()))
	enter := p.enqueueAt[c]
	delete(p.enqueueAt, c)
	c.RecordHop(p.name, enter, now, OutcomeReneged)
	if p.renegeTo != nil {
		p.renegeTo.Accept(sim, now, c)
	}
}
