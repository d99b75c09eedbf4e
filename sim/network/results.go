package network

import (
	"fmt"
	"strings"
	"time"

	"github.com/queuesim/queuesim/sim"
	"github.com/queuesim/queuesim/sim/stats"
)

// discreteLine formats a Discrete recorder the way
// original_source/queuesim/models.py's mmc_results/call_center_results
// render a Python Statistic's __str__: count, mean, standard deviation,
// coefficient of variation.
func discreteLine(d *stats.Discrete) string {
	return fmt.Sprintf("mean=%.4f, std=%.4f, CV=%.4f, n=%d", d.Mean(), d.StdDev(), d.CV(), d.Count())
}

// continuousLine formats a Continuous recorder's running statistics.
func continuousLine(c *stats.Continuous) string {
	return fmt.Sprintf("mean=%.4f, std=%.4f, min=%.4f, max=%.4f", c.Mean(), c.StdDev(), c.Min(), c.Max())
}

// MMCResults renders the key statistics of a completed MMC run,
// grounded on models.py's mmc_results.
func MMCResults(m *MMC) string {
	var b strings.Builder
	fmt.Fprintln(&b, "System")
	fmt.Fprintf(&b, "  Simulated arrivals: %d\n", m.Source.Generated())
	fmt.Fprintf(&b, "  Inter-departure times from the system (ID): %s\n", discreteLine(m.Dispose.InterDeparture))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Process station")
	fmt.Fprintf(&b, "  Waiting times (W): %s\n", discreteLine(m.Process.WaitTime))
	fmt.Fprintf(&b, "  Service times (S): %s\n", discreteLine(m.Process.ServiceTime))
	fmt.Fprintf(&b, "  Queue length (NQ): %s\n", continuousLine(m.Process.QueueLength))
	fmt.Fprintf(&b, "  Clients at the station (N): %s\n", continuousLine(m.Process.WIP))
	fmt.Fprintf(&b, "  Work load (rho*c): %s\n", continuousLine(m.Process.Utilization))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Clients")
	fmt.Fprintf(&b, "  Residence times (V): %s\n", discreteLine(m.Process.ResidenceTime))

	return b.String()
}

// CallCenterResults renders the key statistics of a completed
// CallCenter run, grounded on models.py's call_center_results.
func CallCenterResults(cc *CallCenter, simr *sim.Simulator) string {
	var b strings.Builder
	fmt.Fprintln(&b, "System")
	fmt.Fprintf(&b, "  Simulated arrivals: %d\n", cc.Source.Generated())
	fmt.Fprintf(&b, "  Inter-departure times from the system (ID): %s\n", discreteLine(cc.Dispose.InterDeparture))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Process station")
	fmt.Fprintf(&b, "  Waiting times (W): %s\n", discreteLine(cc.Process.WaitTime))
	fmt.Fprintf(&b, "  Service times (S): %s\n", discreteLine(cc.Process.ServiceTime))
	fmt.Fprintf(&b, "  Queue length (NQ): %s\n", continuousLine(cc.Process.QueueLength))
	fmt.Fprintf(&b, "  Clients at the station (N): %s\n", continuousLine(cc.Process.WIP))
	fmt.Fprintf(&b, "  Work load (c*rho): %s\n", continuousLine(cc.Process.Utilization))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Clients")
	fmt.Fprintf(&b, "  Residence times (V): %s\n", discreteLine(cc.Process.ResidenceTime))
	fmt.Fprintln(&b)

	if cc.ForwardingRate > 0 {
		fmt.Fprintln(&b, "Forwarding")
		fmt.Fprintln(&b, "  Exit 1 = Dispose")
		fmt.Fprintln(&b, "  Exit 2 = Forwarding back to process station")
		fmt.Fprintln(&b)
	}

	if cc.MeanPatience > 0 {
		fmt.Fprintln(&b, "Retry")
		fmt.Fprintln(&b, "  Exit 1 = Final cancellation")
		fmt.Fprintln(&b, "  Exit 2 = Retry")
		fmt.Fprintf(&b, "  Clients at the retry delay (N): %s\n", continuousLine(cc.RetryDelay.WIP))
		fmt.Fprintf(&b, "  Residence times at the retry delay (V): %s\n", discreteLine(cc.RetryDelay.HoldTime))
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "Simulator")
	events := simr.EventCount()
	fmt.Fprintf(&b, "  Total computing time: %s\n", simr.WallClock())
	if cc.Source.Generated() > 0 {
		fmt.Fprintf(&b, "  Computing time per client: %s\n", simr.WallClock()/time.Duration(cc.Source.Generated()))
	}
	if events > 0 {
		fmt.Fprintf(&b, "  Computing time per event: %s\n", simr.WallClock()/time.Duration(events))
	}
	fmt.Fprintf(&b, "  Simulated events: %d\n", events)

	return b.String()
}
