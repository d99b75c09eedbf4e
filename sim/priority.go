package sim

import "fmt"

// PriorityFCFS orders clients by arrival order alone: every client gets
// the same key, so the waitQueue's insertion-order tie-break does all
// the work.
func PriorityFCFS(c *Client, waitedSoFar float64) float64 { return 0 }

// PriorityLIFO reverses arrival order by keying on wait time directly:
// the client that has waited the least (just arrived) gets the lowest
// key and dequeues first, so the most recent arrival is served next.
func PriorityLIFO(c *Client, waitedSoFar float64) float64 { return waitedSoFar }

// PriorityByAttribute builds a priority function that orders by a
// numeric client attribute (lower value served first), falling back to
// 0 (equal priority, pure FCFS among same-attribute clients) when the
// attribute is unset or not a float64.
func PriorityByAttribute(attr string) PriorityFunc {
	return func(c *Client, waitedSoFar float64) float64 {
		if v, ok := c.Attr(attr).(float64); ok {
			return v
		}
		return 0
	}
}

// PriorityAging builds a priority function that starts every client at
// baseKey(c) and linearly decreases its key by rate per unit of time
// waited, so that clients that have waited long enough eventually
// overtake higher baseline priority — avoiding starvation under a
// strict priority-class discipline.
func PriorityAging(baseKey func(c *Client) float64, rate float64) PriorityFunc {
	return func(c *Client, waitedSoFar float64) float64 {
		return baseKey(c) - rate*waitedSoFar
	}
}

// PriorityKind names a built-in priority policy for config-driven
// construction.
type PriorityKind string

const (
	PriorityKindFCFS      PriorityKind = "fcfs"
	PriorityKindLIFO      PriorityKind = "lifo"
	PriorityKindAttribute PriorityKind = "attribute"
)

var validPriorityKinds = map[PriorityKind]bool{
	PriorityKindFCFS:      true,
	PriorityKindLIFO:      true,
	PriorityKindAttribute: true,
}

// IsValidPriorityKind reports whether kind names a built-in priority
// policy.
func IsValidPriorityKind(kind PriorityKind) bool { return validPriorityKinds[kind] }

// ValidPriorityKinds lists every built-in priority policy name.
func ValidPriorityKinds() []PriorityKind {
	out := make([]PriorityKind, 0, len(validPriorityKinds))
	for k := range validPriorityKinds {
		out = append(out, k)
	}
	return out
}

// NewPriorityFunc builds a named priority policy. attribute is required
// (and only used) for PriorityKindAttribute.
func NewPriorityFunc(kind PriorityKind, attribute string) (PriorityFunc, error) {
	switch kind {
	case PriorityKindFCFS:
		return PriorityFCFS, nil
	case PriorityKindLIFO:
		return PriorityLIFO, nil
	case PriorityKindAttribute:
		if attribute == "" {
			return nil, fmt.Errorf("%w: attribute priority requires a non-empty attribute name", ErrParameter)
		}
		return PriorityByAttribute(attribute), nil
	default:
		return nil, fmt.Errorf("%w: unknown priority kind %q", ErrParameter, kind)
	}
}
