package sim

import (
	"github.com/queuesim/queuesim/sim/dist"
	"github.com/queuesim/queuesim/sim/stats"
)

// Delay holds every client for an independently drawn duration with no
// capacity limit and no queueing: unlike Process, a Delay station never
// blocks a client behind another (transport links, fixed think-time,
// unconstrained parallel holds).
type Delay struct {
	base

	duration dist.Generator
	next     Station

	inFlight int
	WIP      *stats.Continuous
	HoldTime *stats.Discrete
}

// NewDelay constructs a Delay station drawing hold durations from d.
func NewDelay(name string, d dist.Generator) *Delay {
	return &Delay{
		base:     base{name: name},
		duration: d,
		WIP:      stats.NewContinuous(0, 0),
		HoldTime: stats.NewDiscrete(),
	}
}

// SetNext wires the station a client is forwarded to after its hold
// expires.
func (d *Delay) SetNext(next Station) *Delay { d.next = next; return d }

func (d *Delay) Attach(sim *Simulator) {
	d.sim = sim
	sim.Register(d)
}

func (d *Delay) Accept(sim *Simulator, now float64, c *Client) {
	d.inFlight++
	d.WIP.Set(now, float64(d.inFlight))
	hold := d.duration()
	client := c
	enter := now
	sim.Schedule(hold, KindDelayEnd, func(sim *Simulator) { d.release(sim, client, enter) })
}

// Next returns the station this Delay forwards to after its hold
// expires.
func (d *Delay) Next() Station { return d.next }

func (d *Delay) release(sim *Simulator, c *Client, enter float64) {
	now := sim.Now()
	d.inFlight--
	d.WIP.Set(now, float64(d.inFlight))
	d.HoldTime.Record(now - enter)
	c.RecordHop(d.name, enter, now, OutcomeServed)
	if d.next != nil {
		d.next.Accept(sim, now, c)
	}
}
