package sim

// Kind tags an Event for logging and tracing. It carries no behavior —
// the behavior lives in the Event's action closure — but gives the run
// log the same "what kind of thing just happened" readability the
// station state machines need when debugging a trace.
type Kind string

const (
	KindArrival           Kind = "Arrival"
	KindServiceEnd        Kind = "ServiceEnd"
	KindPostProcessingEnd Kind = "PostProcessingEnd"
	KindPatienceExpiry    Kind = "PatienceExpiry"
	KindDelayEnd          Kind = "DelayEnd"
	KindGeneric           Kind = "Generic"
)

// Event is one entry in the simulator's pending-event heap: a point in
// virtual time at which an action runs. seq breaks timestamp ties in
// insertion order, giving same-instant events deterministic, FIFO
// "now-slot" ordering. cancelled marks an event for lazy deletion: the
// run loop skips it instead of searching the heap to remove it.
type Event struct {
	time      float64
	seq       uint64
	kind      Kind
	action    func(*Simulator)
	cancelled bool
}

// Timestamp returns the virtual time at which the event is scheduled.
func (e *Event) Timestamp() float64 { return e.time }

// Kind returns the event's tag.
func (e *Event) Kind() Kind { return e.kind }

// eventHeap implements container/heap.Interface, ordering by
// (time, seq) so that the heap is a total order even when many events
// share a timestamp.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
