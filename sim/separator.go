package sim

// Separator unpacks a client previously assembled by a Batcher,
// forwarding each of its members individually. A client with no
// "members" attribute (one that never passed through a Batcher) is
// forwarded unchanged, so a Separator is safe to place after a Decide
// branch that mixes batched and unbatched traffic.
type Separator struct {
	base

	next Station
}

// NewSeparator constructs a Separator.
func NewSeparator(name string) *Separator {
	return &Separator{base: base{name: name}}
}

// SetNext wires the station each unpacked (or passed-through) client is
// forwarded to.
func (s *Separator) SetNext(next Station) *Separator { s.next = next; return s }

func (s *Separator) Attach(sim *Simulator) {
	s.sim = sim
	sim.Register(s)
}

// Next returns the station each unpacked (or passed-through) client is
// forwarded to.
func (s *Separator) Next() Station { return s.next }

func (s *Separator) Accept(sim *Simulator, now float64, c *Client) {
	members, ok := c.Attr("members").([]*Client)
	if !ok {
		if s.next != nil {
			s.next.Accept(sim, now, c)
		}
		return
	}
	for _, m := range members {
		m.RecordHop(s.name, now, now, OutcomeRouted)
		if s.next != nil {
			s.next.Accept(sim, now, m)
		}
	}
}
