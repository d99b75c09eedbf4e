package stats

import "gonum.org/v1/gonum/stat"

// Summary holds a one-off, gonum-computed cross-check of a recorder's
// running-moment statistics against its full stored sample set. Only
// meaningful for recorders built WithStoredValues; computing it from
// scratch is O(n), so it is never called from the hot Record/Set path —
// running moments (Discrete.Mean/Variance, Continuous.Mean/Variance)
// remain the O(1)-per-sample statistics used during a run.
type Summary struct {
	Mean   float64
	StdDev float64
}

// Summary recomputes mean/stddev directly from the stored raw samples
// using gonum.org/v1/gonum/stat, for validating the running-moment
// accumulators in tests. Returns the zero Summary if no values were
// stored.
func (d *Discrete) Summary() Summary {
	if len(d.values) == 0 {
		return Summary{}
	}
	mean, _ := stat.MeanVariance(d.values, nil)
	return Summary{Mean: mean, StdDev: stat.StdDev(d.values, nil)}
}
