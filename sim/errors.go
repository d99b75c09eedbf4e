package sim

import "errors"

// Sentinel errors wrapped by the construction and scheduling APIs. Callers
// use errors.Is to distinguish categories without string matching.
var (
	// ErrWiring reports a malformed network, such as a client-type
	// router that meets a client type with no branch and no default.
	ErrWiring = errors.New("sim: wiring error")

	// ErrScheduling reports an invalid event-queue operation, such as
	// scheduling into the past. Running an empty queue and cancelling an
	// event twice are not errors.
	ErrScheduling = errors.New("sim: scheduling error")

	// ErrParameter reports an invalid station or distribution parameter:
	// a weight table that is mismatched, negative or sums to zero, an
	// unknown priority kind, and similar.
	ErrParameter = errors.New("sim: parameter error")
)
