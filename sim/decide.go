package sim

import (
	"fmt"
	"math/rand"
)

// DecideByWeight routes each client to one of several successors
// chosen at random, proportional to fixed weights. Construction fails
// if the weights don't sum to a positive number.
type DecideByWeight struct {
	base

	branches []Station
	weights  []float64
	cum      []float64
	total    float64

	rng *rand.Rand
}

// NewDecideByWeight builds a weighted random router. branches and
// weights must be the same non-empty length, and the weights must sum
// to a positive total.
func NewDecideByWeight(name string, branches []Station, weights []float64) (*DecideByWeight, error) {
	if len(branches) == 0 || len(branches) != len(weights) {
		return nil, fmt.Errorf("%w: DecideByWeight requires equal non-empty branches and weights", ErrParameter)
	}
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: DecideByWeight weight %d is negative", ErrParameter, i)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: DecideByWeight weights must sum to a positive total", ErrParameter)
	}
	return &DecideByWeight{base: base{name: name}, branches: branches, weights: weights, cum: cum, total: total}, nil
}

func (d *DecideByWeight) Attach(sim *Simulator) {
	d.sim = sim
	d.rng = sim.RNG(d.name)
	sim.Register(d)
}

// Branches returns every destination this router can send a client to.
func (d *DecideByWeight) Branches() []Station { return d.branches }

func (d *DecideByWeight) Accept(sim *Simulator, now float64, c *Client) {
	r := d.rng.Float64() * d.total
	idx := 0
	for i, edge := range d.cum {
		if r < edge {
			idx = i
			break
		}
		idx = i
	}
	c.RecordHop(d.name, now, now, OutcomeRouted)
	d.branches[idx].Accept(sim, now, c)
}

// Condition is one arm of a DecideByCondition router: clients for
// which Predicate returns true are sent to Then. Arms are evaluated in
// order; the first match wins.
type Condition struct {
	Predicate func(c *Client) bool
	Then      Station
}

// DecideByCondition routes each client to the first arm whose
// Predicate matches, or to a default branch if none do.
type DecideByCondition struct {
	base

	arms []Condition
	dflt Station
}

// NewDecideByCondition builds a predicate-ordered router. dflt (may be
// nil, meaning "drop") receives any client matched by no arm.
func NewDecideByCondition(name string, arms []Condition, dflt Station) *DecideByCondition {
	return &DecideByCondition{base: base{name: name}, arms: arms, dflt: dflt}
}

func (d *DecideByCondition) Attach(sim *Simulator) {
	d.sim = sim
	sim.Register(d)
}

// Branches returns every destination this router can send a client to:
// each arm's Then, followed by the default (nil if unset).
func (d *DecideByCondition) Branches() []Station {
	out := make([]Station, 0, len(d.arms)+1)
	for _, arm := range d.arms {
		out = append(out, arm.Then)
	}
	return append(out, d.dflt)
}

func (d *DecideByCondition) Accept(sim *Simulator, now float64, c *Client) {
	c.RecordHop(d.name, now, now, OutcomeRouted)
	for _, arm := range d.arms {
		if arm.Predicate(c) {
			arm.Then.Accept(sim, now, c)
			return
		}
	}
	if d.dflt != nil {
		d.dflt.Accept(sim, now, c)
	}
}

// DecideByClientType routes each client by its TypeName, falling back
// to a default branch for any type not in the table.
type DecideByClientType struct {
	base

	byType map[string]Station
	dflt   Station
}

// NewDecideByClientType builds a client-type router. dflt receives any
// client whose TypeName isn't in byType; it may be nil, in which case
// such a client makes Accept panic with ErrWiring.
func NewDecideByClientType(name string, byType map[string]Station, dflt Station) *DecideByClientType {
	return &DecideByClientType{base: base{name: name}, byType: byType, dflt: dflt}
}

func (d *DecideByClientType) Attach(sim *Simulator) {
	d.sim = sim
	sim.Register(d)
}

// Branches returns every destination this router can send a client to:
// each typed destination, followed by the default (nil if unset).
func (d *DecideByClientType) Branches() []Station {
	out := make([]Station, 0, len(d.byType)+1)
	for _, s := range d.byType {
		out = append(out, s)
	}
	return append(out, d.dflt)
}

// Accept routes c by its TypeName. A client whose type isn't in byType
// and no default branch is configured is a wiring error, not a drop:
// this panics with ErrWiring, detected at first use rather than
// silently misrouting the client.
func (d *DecideByClientType) Accept(sim *Simulator, now float64, c *Client) {
	if s, ok := d.byType[c.TypeName]; ok {
		c.RecordHop(d.name, now, now, OutcomeRouted)
		s.Accept(sim, now, c)
		return
	}
	if d.dflt != nil {
		c.RecordHop(d.name, now, now, OutcomeRouted)
		d.dflt.Accept(sim, now, c)
		return
	}
	panic(fmt.Errorf("%w: %s has no branch for client type %q and no default", ErrWiring, d.name, c.TypeName))
}
