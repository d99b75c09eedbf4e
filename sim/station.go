package sim

// Station is implemented by every node in a queueing network: Source,
// Process, Delay, the three Decide variants, Dispose, Batcher, and
// Separator. A network is built by constructing stations and wiring
// their successors before the first call to Simulator.Run.
type Station interface {
	// Name returns the station's unique identifier within its network,
	// used for RNG partitioning, stats labeling, and trace logging.
	Name() string

	// Attach binds the station to its simulator: it should store sim,
	// call sim.Register(self), and call sim.RegisterInit for any
	// startup behavior (a Source's first arrival).
	Attach(sim *Simulator)

	// Accept is how a predecessor (or the outside world, for a Source
	// driven externally) hands a client to this station at time now.
	Accept(sim *Simulator, now float64, c *Client)
}

// base is embedded by every concrete station for the name/sim fields
// every station needs; it does not itself satisfy Station; each
// concrete station implements Attach/Accept and calls sim.Register(self)
// from its own Attach.
type base struct {
	name string
	sim  *Simulator
}

func (b *base) Name() string { return b.name }
