// Package network assembles sim stations into the canonical topologies
// used to validate the kernel against closed-form queueing theory and
// to build larger multi-station networks: plain M/M/c, M/M/c with a
// priority discipline, M/M/c+M with impatience and an optional retry
// loop, arbitrary networks wired from transition-rate matrices, and the
// call-center topology with forwarding and retry (spec.md §6).
package network

import (
	"fmt"

	"github.com/queuesim/queuesim/sim"
	"github.com/queuesim/queuesim/sim/dist"
)

// MMC is a Source -> Process -> Dispose topology: the simplest queueing
// system, grounded on original_source/queuesim/models.py's mmc_model.
type MMC struct {
	Source  *sim.Source
	Process *sim.Process
	Dispose *sim.Dispose

	MeanInterarrival float64
	MeanService      float64
	Servers          int
}

// BuildMMC wires an M/M/c system: count client arrivals (0 = run until
// the simulation horizon), exponential inter-arrival times with mean
// meanI, c parallel servers, and exponential service times with mean
// meanS.
func BuildMMC(simr *sim.Simulator, meanI, meanS float64, c int, count int64) (*MMC, error) {
	return buildMMC(simr, meanI, meanS, c, count, nil)
}

// BuildMMCPriority wires an M/M/c system whose Process station orders
// its queue by priority instead of first-come-first-served, grounded
// on models.py's mmc_model_priorities.
func BuildMMCPriority(simr *sim.Simulator, meanI, meanS float64, c int, count int64, priority sim.PriorityFunc) (*MMC, error) {
	if priority == nil {
		return nil, fmt.Errorf("%w: BuildMMCPriority requires a non-nil priority function", sim.ErrParameter)
	}
	return buildMMC(simr, meanI, meanS, c, count, priority)
}

func buildMMC(simr *sim.Simulator, meanI, meanS float64, c int, count int64, priority sim.PriorityFunc) (*MMC, error) {
	interarrival, _, err := dist.NewExponential(simr.RNG("Source"), meanI)
	if err != nil {
		return nil, err
	}
	service, _, err := dist.NewExponential(simr.RNG("Process"), meanS)
	if err != nil {
		return nil, err
	}

	source := sim.NewSource("Source", "client", interarrival)
	source.SetTargetCount(count)
	process := sim.NewProcess("Process", c, service)
	if priority != nil {
		process.SetPriority(priority)
	}
	dispose := sim.NewDispose("Dispose")

	source.SetNext(process)
	process.SetNext(dispose)

	source.Attach(simr)
	process.Attach(simr)
	dispose.Attach(simr)

	return &MMC{Source: source, Process: process, Dispose: dispose, MeanInterarrival: meanI, MeanService: meanS, Servers: c}, nil
}

// ImpatienceRetry is an M/M/c+M topology: customers renege after a
// patience draw, and optionally retry after a delay instead of leaving
// for good. Grounded on models.py's impatience_and_retry_model_build —
// unlike the original, BuildMMCImpatienceRetry never silently
// overwrites the caller's server count to 1.
type ImpatienceRetry struct {
	Source      *sim.Source
	Process     *sim.Process
	Dispose     *sim.Dispose
	RetryDecide *sim.DecideByWeight // nil when retryProbability <= 0
	RetryDelay  *sim.Delay          // nil when retryProbability <= 0

	MeanInterarrival float64
	MeanService      float64
	MeanPatience     float64
	RetryProbability float64
	MeanRetryDelay   float64
	Servers          int
}

// BuildMMCImpatienceRetry wires an M/M/c+M system with c servers,
// exponential patience draws of mean meanWaitTolerance, and (when
// retryProbability > 0) a fraction of reneging clients looping back
// through a delay of mean meanRetryDelay instead of leaving.
func BuildMMCImpatienceRetry(simr *sim.Simulator, meanI, meanS, meanWaitTolerance, retryProbability, meanRetryDelay float64, c int, count int64) (*ImpatienceRetry, error) {
	if retryProbability < 0 || retryProbability > 1 {
		return nil, fmt.Errorf("%w: retry probability must be in [0, 1]", sim.ErrParameter)
	}

	interarrival, _, err := dist.NewExponential(simr.RNG("Source"), meanI)
	if err != nil {
		return nil, err
	}
	service, _, err := dist.NewExponential(simr.RNG("Process"), meanS)
	if err != nil {
		return nil, err
	}
	patience, _, err := dist.NewExponential(simr.RNG("Process.patience"), meanWaitTolerance)
	if err != nil {
		return nil, err
	}

	source := sim.NewSource("Source", "client", interarrival)
	source.SetTargetCount(count)
	process := sim.NewProcess("Process", c, service)
	process.SetPatience(patience)
	dispose := sim.NewDispose("Dispose")

	source.SetNext(process)
	process.SetNext(dispose)

	model := &ImpatienceRetry{
		Source: source, Process: process, Dispose: dispose,
		MeanInterarrival: meanI, MeanService: meanS, MeanPatience: meanWaitTolerance,
		RetryProbability: retryProbability, MeanRetryDelay: meanRetryDelay, Servers: c,
	}

	if retryProbability > 0 {
		retryDelayGen, _, err := dist.NewExponential(simr.RNG("RetryDelay"), meanRetryDelay)
		if err != nil {
			return nil, err
		}
		retryDelay := sim.NewDelay("RetryDelay", retryDelayGen)
		retryDecide, err := sim.NewDecideByWeight("RetryDecide", []sim.Station{retryDelay, dispose}, []float64{retryProbability, 1 - retryProbability})
		if err != nil {
			return nil, err
		}
		retryDelay.SetNext(process)
		process.SetRenegeTo(retryDecide)

		retryDecide.Attach(simr)
		retryDelay.Attach(simr)
		model.RetryDecide = retryDecide
		model.RetryDelay = retryDelay
	} else {
		process.SetRenegeTo(dispose)
	}

	source.Attach(simr)
	process.Attach(simr)
	dispose.Attach(simr)

	return model, nil
}
