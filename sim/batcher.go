package sim

// Batcher groups incoming clients into a single outgoing client,
// forwarding the group once it reaches size members, or, if maxWait is
// positive, once the oldest pending member has waited maxWait without
// the group filling up (a partial batch). The outgoing client carries
// its members under the "members" attribute; pair a Batcher with a
// Separator downstream to unpack it again.
type Batcher struct {
	base

	size    int
	maxWait float64
	next    Station

	pending []*Client
	timer   *Event
}

// NewBatcher constructs a Batcher that groups size clients together.
// maxWait of 0 disables the partial-batch timeout: a Batcher with no
// timeout will hold clients indefinitely until size is reached.
func NewBatcher(name string, size int, maxWait float64) *Batcher {
	if size < 1 {
		size = 1
	}
	return &Batcher{base: base{name: name}, size: size, maxWait: maxWait}
}

// SetNext wires the station that receives each assembled batch client.
func (b *Batcher) SetNext(next Station) *Batcher { b.next = next; return b }

func (b *Batcher) Attach(sim *Simulator) {
	b.sim = sim
	sim.Register(b)
}

func (b *Batcher) Accept(sim *Simulator, now float64, c *Client) {
	b.pending = append(b.pending, c)
	if len(b.pending) >= b.size {
		b.flush(sim, now)
		return
	}
	if b.maxWait > 0 && b.timer == nil {
		b.timer = sim.Schedule(b.maxWait, KindGeneric, func(sim *Simulator) { b.flush(sim, sim.Now()) })
	}
}

// Next returns the station each assembled batch is forwarded to.
func (b *Batcher) Next() Station { return b.next }

func (b *Batcher) flush(sim *Simulator, now float64) {
	if len(b.pending) == 0 {
		return
	}
	if b.timer != nil {
		sim.Cancel(b.timer)
		b.timer = nil
	}
	members := b.pending
	b.pending = nil

	batch := NewClient(sim.NextClientID(), "batch", now)
	batch.SetAttr("members", members)
	for _, m := range members {
		m.RecordHop(b.name, now, now, OutcomeRouted)
	}
	if b.next != nil {
		b.next.Accept(sim, now, batch)
	}
}
