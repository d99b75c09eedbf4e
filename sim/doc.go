// Package sim provides the core discrete-event simulation engine for
// queueing networks.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - client.go: Client lifecycle and per-hop accounting.
//   - event.go: Event types that drive the simulation (Arrival, ServiceEnd,
//     PostProcessingEnd, PatienceExpiry, DelayEnd).
//   - simulator.go: The virtual clock, pending-event heap, and run loop.
//   - station.go: The common Station interface every station implements.
//
// # Architecture
//
// Stations are the nodes of the network: source.go, process.go, delay.go,
// decide.go, and dispose.go each implement one station kind from the
// specification. They are wired together by successor references held on
// the station values themselves; the Simulator runs Events and keeps a
// name-to-station registry, but does not follow the wiring.
//
// Supporting packages:
//   - sim/rng: per-subsystem deterministic random number generation.
//   - sim/dist: the random-variate capability (distribution builders).
//   - sim/stats: discrete and continuous (time-weighted) statistics
//     recorders attached to stations.
//   - sim/network: convenience constructors for canonical topologies
//     (M/M/c, call centers, transition-matrix networks) and graph export.
//   - sim/analytic: closed-form Erlang-B/C and Allen-Cunneen formulas,
//     used only by tests and the CLI as a validation overlay — never
//     imported by the core packages above.
//   - sim/parallel: runs independent Simulator instances concurrently.
package sim
