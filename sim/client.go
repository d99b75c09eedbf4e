package sim

// Client is the entity that flows through a network of stations. It
// carries its own arrival time and accumulates a per-hop history as it
// passes through each station, which is how residence/wait/service time
// statistics get attributed to the right station after the fact.
type Client struct {
	ID          uint64
	TypeName    string
	ArrivalTime float64

	// Attrs holds arbitrary per-client data (e.g. a priority class or a
	// routing key) consulted by Decide-by-condition branches and
	// attribute-based priority functions. Absent keys read as nil.
	Attrs map[string]any

	// WaitTime and ServiceTime are running totals across every Process
	// station this client has visited so far (a retrying client may
	// visit more than one). ResidenceTime is kept in lockstep with their
	// sum by RecordWait/RecordService, so it always equals WaitTime +
	// ServiceTime, per the testable property that the two must agree at
	// disposal.
	WaitTime      float64
	ServiceTime   float64
	ResidenceTime float64

	hops []Hop
}

// Hop records one station visit: when the client entered and left, and
// how it left.
type Hop struct {
	Station string
	Enter   float64
	Exit    float64
	Outcome Outcome
}

// Outcome classifies how a client left a station.
type Outcome string

const (
	OutcomeServed   Outcome = "served"
	OutcomeBalked   Outcome = "balked"   // rejected on arrival, capacity full
	OutcomeReneged  Outcome = "reneged"  // patience expired while waiting
	OutcomeRouted   Outcome = "routed"   // passed through a Decide/Batcher/Separator
	OutcomeDisposed Outcome = "disposed"
)

// NewClient constructs a client entering the network at arrivalTime.
func NewClient(id uint64, typeName string, arrivalTime float64) *Client {
	return &Client{ID: id, TypeName: typeName, ArrivalTime: arrivalTime}
}

// Attr reads a client attribute, returning nil if unset.
func (c *Client) Attr(key string) any {
	if c.Attrs == nil {
		return nil
	}
	return c.Attrs[key]
}

// SetAttr sets a client attribute.
func (c *Client) SetAttr(key string, value any) {
	if c.Attrs == nil {
		c.Attrs = make(map[string]any)
	}
	c.Attrs[key] = value
}

// RecordWait adds d to the client's waiting-time accumulator, for time
// spent queued behind other clients at a Process station.
func (c *Client) RecordWait(d float64) {
	c.WaitTime += d
	c.ResidenceTime += d
}

// RecordService adds d to the client's service-time accumulator, for
// time spent actively in service (including post-processing) at a
// Process station.
func (c *Client) RecordService(d float64) {
	c.ServiceTime += d
	c.ResidenceTime += d
}

// RecordHop appends a completed station visit to the client's history.
func (c *Client) RecordHop(station string, enter, exit float64, outcome Outcome) {
	c.hops = append(c.hops, Hop{Station: station, Enter: enter, Exit: exit, Outcome: outcome})
}

// Hops returns the client's full station-visit history, in order.
func (c *Client) Hops() []Hop {
	out := make([]Hop, len(c.hops))
	copy(out, c.hops)
	return out
}

// TotalResidence returns the time between arrival and the exit time of
// the client's last recorded hop (0 if the client hasn't completed any
// hop yet).
func (c *Client) TotalResidence() float64 {
	if len(c.hops) == 0 {
		return 0
	}
	return c.hops[len(c.hops)-1].Exit - c.ArrivalTime
}
