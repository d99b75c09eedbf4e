package sim

import "github.com/queuesim/queuesim/sim/stats"

// Dispose is the network's sink: every client handed to it exits the
// simulation. It records overall residence time (arrival to this
// station) so an end-to-end latency statistic can be attached at the
// boundary of the network rather than at each intermediate station, as
// well as the client's final accumulated waiting/service time and the
// gap since the previous disposal.
type Dispose struct {
	base

	Residence      *stats.Discrete
	WaitTime       *stats.Discrete
	ServiceTime    *stats.Discrete
	InterDeparture *stats.Discrete

	disposed     int64
	lastDeparted float64
	hasDeparted  bool
}

// NewDispose constructs an empty Dispose sink.
func NewDispose(name string) *Dispose {
	return &Dispose{
		base:           base{name: name},
		Residence:      stats.NewDiscrete(),
		WaitTime:       stats.NewDiscrete(),
		ServiceTime:    stats.NewDiscrete(),
		InterDeparture: stats.NewDiscrete(),
	}
}

func (d *Dispose) Attach(sim *Simulator) {
	d.sim = sim
	sim.Register(d)
}

func (d *Dispose) Accept(sim *Simulator, now float64, c *Client) {
	d.disposed++
	d.Residence.Record(now - c.ArrivalTime)
	d.WaitTime.Record(c.WaitTime)
	d.ServiceTime.Record(c.ServiceTime)
	if d.hasDeparted {
		d.InterDeparture.Record(now - d.lastDeparted)
	}
	d.lastDeparted = now
	d.hasDeparted = true
	c.RecordHop(d.name, now, now, OutcomeDisposed)
}

// Disposed returns the number of clients that have exited through this
// sink.
func (d *Dispose) Disposed() int64 { return d.disposed }
