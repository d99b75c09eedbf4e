package sim

import (
	"github.com/queuesim/queuesim/sim/dist"
	"github.com/queuesim/queuesim/sim/stats"
)

// Source generates client arrivals and feeds them to a successor
// station. It schedules its own first arrival from an init hook, so a
// network only needs its Sources attached for traffic to start flowing
// once Run begins.
type Source struct {
	base

	interarrival dist.Generator
	batchSize    dist.Generator // nil = 1 client per arrival event
	typeName     string
	targetCount  int64 // 0 = unbounded, generate until the horizon

	next      Station
	generated int64

	InterArrival *stats.Discrete
}

// NewSource constructs a Source that draws inter-arrival gaps from
// interarrival and labels generated clients typeName.
func NewSource(name, typeName string, interarrival dist.Generator) *Source {
	return &Source{
		base:         base{name: name},
		typeName:     typeName,
		interarrival: interarrival,
		InterArrival: stats.NewDiscrete(),
	}
}

// SetNext wires the station newly generated clients are handed to.
func (s *Source) SetNext(next Station) *Source { s.next = next; return s }

// SetBatchSize installs a generator for how many clients arrive
// together per arrival event (default: exactly 1).
func (s *Source) SetBatchSize(d dist.Generator) *Source { s.batchSize = d; return s }

// SetTargetCount caps the number of clients this Source will ever
// generate; 0 (the default) means it keeps generating until the
// simulation horizon is reached.
func (s *Source) SetTargetCount(n int64) *Source { s.targetCount = n; return s }

func (s *Source) Attach(sim *Simulator) {
	s.sim = sim
	sim.Register(s)
	sim.RegisterInit(s.scheduleNext)
}

// Accept exists so Source satisfies Station (a Source can sit behind a
// Decide/Batcher in an unusual topology), but a Source normally never
// receives clients from a predecessor; any such client is simply
// forwarded on.
func (s *Source) Accept(sim *Simulator, now float64, c *Client) {
	if s.next != nil {
		s.next.Accept(sim, now, c)
	}
}

func (s *Source) scheduleNext(sim *Simulator) {
	if s.targetCount > 0 && s.generated >= s.targetCount {
		return
	}
	delay := s.interarrival()
	s.InterArrival.Record(delay)
	sim.Schedule(delay, KindArrival, s.arrive)
}

func (s *Source) arrive(sim *Simulator) {
	now := sim.Now()
	n := int64(1)
	if s.batchSize != nil {
		n = int64(s.batchSize())
		if n < 1 {
			n = 1
		}
	}
	for i := int64(0); i < n; i++ {
		if s.targetCount > 0 && s.generated >= s.targetCount {
			break
		}
		s.generated++
		c := NewClient(sim.NextClientID(), s.typeName, now)
		if s.next != nil {
			s.next.Accept(sim, now, c)
		}
	}
	s.scheduleNext(sim)
}

// Generated returns the number of clients produced so far.
func (s *Source) Generated() int64 { return s.generated }

// Next returns the station this Source forwards generated clients to,
// for callers (such as sim/network's graph export) that need to walk
// the wiring without reaching into unexported fields.
func (s *Source) Next() Station { return s.next }
