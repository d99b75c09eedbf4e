// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/queuesim/queuesim/sim/rng"
)

// Simulator is the virtual-time event kernel: a clock, a pending-event
// heap, and a run loop. Stations never advance the clock themselves —
// they schedule events and react to them.
type Simulator struct {
	now     float64
	horizon float64

	queue      eventHeap
	seqCounter uint64
	eventCount int64

	// initHooks run once, at now == 0, before the run loop starts
	// popping events. Sources use this to schedule their first arrival
	// without requiring the caller to seed the queue by hand.
	initHooks []func(*Simulator)

	rng      *rng.PartitionedRNG
	Log      *logrus.Logger
	Stations map[string]Station

	clientSeq uint64
	wallClock time.Duration
}

// NextClientID returns a fresh, monotonically increasing client
// identifier, unique within this simulator.
func (s *Simulator) NextClientID() uint64 {
	s.clientSeq++
	return s.clientSeq
}

// NewSimulator constructs a Simulator seeded with key for its
// per-subsystem random streams.
func NewSimulator(key rng.SimulationKey) *Simulator {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return &Simulator{
		queue:    make(eventHeap, 0),
		rng:      rng.NewPartitionedRNG(key),
		Log:      log,
		Stations: make(map[string]Station),
	}
}

// Now returns the current virtual time.
func (s *Simulator) Now() float64 { return s.now }

// RNG returns the random source for the named subsystem (typically a
// station name), partitioned so results are reproducible regardless of
// station construction order.
func (s *Simulator) RNG(subsystem string) *rand.Rand { return s.rng.ForSubsystem(subsystem) }

// EventCount returns the number of events executed so far.
func (s *Simulator) EventCount() int64 { return s.eventCount }

// RegisterInit registers a hook to run once at the start of Run, before
// any scheduled event executes. Stations call this from Attach to seed
// their first event (a Source's first arrival, for instance).
func (s *Simulator) RegisterInit(fn func(*Simulator)) {
	s.initHooks = append(s.initHooks, fn)
}

// Register records a station under its name in Stations, where it can
// be looked up by name (sim/network's ExportGraph walks this registry).
func (s *Simulator) Register(st Station) {
	s.Stations[st.Name()] = st
}

// Schedule places action at s.Now()+delay. delay must be >= 0: the
// kernel has no facility for reordering past events once the clock has
// moved beyond them. Returns the Event as a cancellation handle.
func (s *Simulator) Schedule(delay float64, kind Kind, action func(*Simulator)) *Event {
	if delay < 0 {
		panic(fmt.Errorf("%w: negative delay %v scheduled at now=%v", ErrScheduling, delay, s.now))
	}
	ev := &Event{
		time:   s.now + delay,
		seq:    s.nextSeq(),
		kind:   kind,
		action: action,
	}
	heap.Push(&s.queue, ev)
	return ev
}

// ScheduleAt places action at an absolute virtual time, which must be
// >= s.Now().
func (s *Simulator) ScheduleAt(at float64, kind Kind, action func(*Simulator)) *Event {
	if at < s.now {
		panic(fmt.Errorf("%w: absolute time %v is before now=%v", ErrScheduling, at, s.now))
	}
	return s.Schedule(at-s.now, kind, action)
}

// Cancel marks an event so the run loop skips it when popped, without
// searching the heap. Cancelling an already-fired or already-cancelled
// event is a harmless no-op — this is what lets a Process station
// unconditionally cancel a client's patience timer on service start
// without first checking whether it already fired.
func (s *Simulator) Cancel(ev *Event) {
	if ev == nil {
		return
	}
	ev.cancelled = true
}

func (s *Simulator) nextSeq() uint64 {
	s.seqCounter++
	return s.seqCounter
}

// Run drains the pending-event heap up to horizon, running initHooks
// first. Stations that have already been finalized (stats recorders
// closed out at s.now) should do so via a final event scheduled at the
// horizon, or the caller should call Finalize-style cleanup itself
// after Run returns.
func (s *Simulator) Run(horizon float64) {
	started := time.Now()
	s.horizon = horizon
	for _, hook := range s.initHooks {
		hook(s)
	}
	for s.queue.Len() > 0 {
		ev := heap.Pop(&s.queue).(*Event)
		if ev.cancelled {
			continue
		}
		if ev.time > horizon {
			break
		}
		s.now = ev.time
		s.eventCount++
		s.Log.Debugf("[t=%012.4f] executing %s (seq=%d)", s.now, ev.kind, ev.seq)
		ev.action(s)
	}
	if s.now < horizon {
		s.now = horizon
	}
	s.wallClock = time.Since(started)
	s.Log.Infof("run complete: t=%v events=%d", s.now, s.eventCount)
}

// WallClock returns how long the most recent call to Run took to
// execute, for reporting computing time per client/event alongside the
// simulated statistics.
func (s *Simulator) WallClock() time.Duration { return s.wallClock }
