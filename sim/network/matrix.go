package network

import (
	"fmt"

	"github.com/queuesim/queuesim/sim"
)

// BuildNetwork wires an arbitrary network of sources and process
// stations from two transition-rate matrices, grounded on
// original_source/queuesim/models.py's build_network_model: toProcess
// is len(sources) x len(processes), giving each source's routing
// weights into the process stations; fromProcess is len(processes) x
// (len(processes)+len(disposes)), giving each process station's
// routing weights onward to the other process stations (first
// len(processes) columns) or to the dispose stations (remaining
// columns). A zero or negative weight means "no edge". A row with
// exactly one positive weight is wired directly, without an
// intervening Decide station.
func BuildNetwork(simr *sim.Simulator, sources []*sim.Source, processes []*sim.Process, disposes []*sim.Dispose, toProcess, fromProcess [][]float64) error {
	if len(toProcess) != len(sources) {
		return fmt.Errorf("%w: toProcess row count %d does not match source count %d", sim.ErrParameter, len(toProcess), len(sources))
	}
	if len(fromProcess) != len(processes) {
		return fmt.Errorf("%w: fromProcess row count %d does not match process count %d", sim.ErrParameter, len(fromProcess), len(processes))
	}

	for i, source := range sources {
		row := toProcess[i]
		if len(row) > len(processes) {
			return fmt.Errorf("%w: toProcess row %d has %d columns, more than %d processes", sim.ErrParameter, i, len(row), len(processes))
		}
		branches, weights := nonzeroEdges(row, processes, nil)
		if len(branches) == 0 {
			continue
		}
		if len(branches) == 1 {
			source.SetNext(branches[0])
			continue
		}
		decide, err := sim.NewDecideByWeight(fmt.Sprintf("%s.route", source.Name()), branches, weights)
		if err != nil {
			return err
		}
		decide.Attach(simr)
		source.SetNext(decide)
	}

	for i, process := range processes {
		row := fromProcess[i]
		if len(row) > len(processes)+len(disposes) {
			return fmt.Errorf("%w: fromProcess row %d has %d columns, more than %d processes + %d disposes", sim.ErrParameter, i, len(row), len(processes), len(disposes))
		}
		branches, weights := nonzeroEdges(row, processes, disposes)
		if len(branches) == 0 {
			continue
		}
		if len(branches) == 1 {
			process.SetNext(branches[0])
			continue
		}
		decide, err := sim.NewDecideByWeight(fmt.Sprintf("%s.route", process.Name()), branches, weights)
		if err != nil {
			return err
		}
		decide.Attach(simr)
		process.SetNext(decide)
	}

	return nil
}

// nonzeroEdges converts one row of a transition matrix into parallel
// branch/weight slices, resolving column indices into process stations
// first and, if disposes is non-nil, dispose stations for the
// remaining columns.
func nonzeroEdges(row []float64, processes []*sim.Process, disposes []*sim.Dispose) ([]sim.Station, []float64) {
	var branches []sim.Station
	var weights []float64
	for col, weight := range row {
		if weight <= 0 {
			continue
		}
		if col < len(processes) {
			branches = append(branches, processes[col])
		} else {
			branches = append(branches, disposes[col-len(processes)])
		}
		weights = append(weights, weight)
	}
	return branches, weights
}
