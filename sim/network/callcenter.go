package network

import (
	"github.com/queuesim/queuesim/sim"
	"github.com/queuesim/queuesim/sim/dist"
)

// CallCenter is the complex call-center topology grounded on
// original_source/example_sim_call_center.py:
//
//	            -------------
//	            v           |
//	Source -> Process -> Forwarding -> Dispose
//	          ^    |
//	          |   Retry ---------------+ (to Dispose)
//	          |    v
//	          +-- RetryDelay
//
// A served client is forwarded to Dispose, or, with probability
// forwardingRate, looped back into Process (e.g. an escalation to a
// second-line agent modeled as the same station). A client whose
// patience expires before being served is sent to Retry, which either
// disposes of it for good or, with probability retryRate, routes it
// through RetryDelay back into Process.
type CallCenter struct {
	Source     *sim.Source
	Process    *sim.Process
	Forwarding *sim.DecideByWeight
	Retry      *sim.DecideByWeight
	RetryDelay *sim.Delay
	Dispose    *sim.Dispose

	MeanInterarrival float64
	MeanService      float64
	MeanPatience     float64 // <= 0 means no impatience
	Capacity         int     // <= 0 means unlimited
	ForwardingRate   float64
	RetryRate        float64
	MeanRetryDelay   float64
	Servers          int
}

// BuildCallCenter wires a CallCenter topology. meanPatience <= 0
// disables impatience entirely (Process never reneges, and Retry is
// wired but unreachable). capacity <= 0 means unlimited system size.
func BuildCallCenter(simr *sim.Simulator, meanI, meanS, meanPatience float64, capacity int, forwardingRate, retryRate, meanRetryDelay float64, c int, count int64) (*CallCenter, error) {
	interarrival, _, err := dist.NewExponential(simr.RNG("Source"), meanI)
	if err != nil {
		return nil, err
	}
	service, _, err := dist.NewExponential(simr.RNG("Process"), meanS)
	if err != nil {
		return nil, err
	}
	retryDelayGen, _, err := dist.NewExponential(simr.RNG("RetryDelay"), meanRetryDelay)
	if err != nil {
		return nil, err
	}

	source := sim.NewSource("Source", "caller", interarrival)
	source.SetTargetCount(count)
	process := sim.NewProcess("Process", c, service)
	if capacity > 0 {
		process.SetCapacity(capacity)
	}
	if meanPatience > 0 {
		patience, _, err := dist.NewExponential(simr.RNG("Process.patience"), meanPatience)
		if err != nil {
			return nil, err
		}
		process.SetPatience(patience)
	}
	dispose := sim.NewDispose("Dispose")
	retryDelay := sim.NewDelay("RetryDelay", retryDelayGen)

	forwarding, err := sim.NewDecideByWeight("Forwarding", []sim.Station{dispose, process}, []float64{1 - forwardingRate, forwardingRate})
	if err != nil {
		return nil, err
	}
	retry, err := sim.NewDecideByWeight("Retry", []sim.Station{dispose, retryDelay}, []float64{1 - retryRate, retryRate})
	if err != nil {
		return nil, err
	}

	source.SetNext(process)
	process.SetNext(forwarding)
	process.SetRenegeTo(retry)
	retryDelay.SetNext(process)

	source.Attach(simr)
	process.Attach(simr)
	forwarding.Attach(simr)
	retry.Attach(simr)
	retryDelay.Attach(simr)
	dispose.Attach(simr)

	return &CallCenter{
		Source: source, Process: process, Forwarding: forwarding, Retry: retry, RetryDelay: retryDelay, Dispose: dispose,
		MeanInterarrival: meanI, MeanService: meanS, MeanPatience: meanPatience, Capacity: capacity,
		ForwardingRate: forwardingRate, RetryRate: retryRate, MeanRetryDelay: meanRetryDelay, Servers: c,
	}, nil
}
