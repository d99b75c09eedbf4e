package network

import (
	"fmt"
	"sort"
	"strings"

	"github.com/queuesim/queuesim/sim"
)

// ExportGraph renders a simulator's station wiring as a Graphviz DOT
// document, a Go-idiomatic stand-in for original_source's build_graph
// + networkx/matplotlib plotting (this module has no plotting
// dependency in the pack's corpus; DOT output is the nearest
// equivalent a caller can pipe into `dot -Tpng`).
func ExportGraph(simr *sim.Simulator) string {
	names := make([]string, 0, len(simr.Stations))
	for name := range simr.Stations {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("digraph network {\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %q;\n", name)
	}
	for _, name := range names {
		for _, next := range successors(simr.Stations[name]) {
			fmt.Fprintf(&b, "  %q -> %q;\n", name, next)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// successors returns the names of the stations st forwards clients to,
// reflecting on the concrete station types this package and sim build
// rather than requiring every Station implementation to expose its own
// successor list.
func successors(st sim.Station) []string {
	switch v := st.(type) {
	case *sim.Source:
		return nextOf(v)
	case *sim.Process:
		return multiOf(v)
	case *sim.Delay:
		return nextOf(v)
	case *sim.Batcher:
		return nextOf(v)
	case *sim.Separator:
		return nextOf(v)
	case *sim.DecideByWeight:
		return multiOf(v)
	case *sim.DecideByCondition:
		return multiOf(v)
	case *sim.DecideByClientType:
		return multiOf(v)
	case *ShortestQueueRouter:
		return multiOf(v)
	default:
		return nil
	}
}

// nextOf and multiOf are implemented via the Next()/Branches() describer
// interfaces below rather than type-switch field access, since sim's
// station fields are unexported.
func nextOf(d interface{ Next() sim.Station }) []string {
	n := d.Next()
	if n == nil {
		return nil
	}
	return []string{n.Name()}
}

func multiOf(d interface{ Branches() []sim.Station }) []string {
	var out []string
	for _, b := range d.Branches() {
		if b != nil {
			out = append(out, b.Name())
		}
	}
	return out
}
