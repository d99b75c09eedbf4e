// Package stats implements the two statistics recorder variants of
// spec.md §3/§4.8: Discrete, for individual samples (waiting time,
// service time, inter-arrival time, ...), and Continuous, for
// time-weighted step signals (work-in-progress, servers busy, ...).
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultBucketWidth is the histogram bucket width used when a recorder
// is constructed without an explicit width. spec.md §9 flags this as an
// Open Question left implicit in the source; this module resolves it
// explicitly to 1.0, overridable per recorder (see WithBucketWidth).
const DefaultBucketWidth = 1.0

// Option configures a Discrete or Continuous recorder at construction.
type Option func(*config)

type config struct {
	bucketWidth    float64
	rejectNegative bool
	keepValues     bool
}

// WithBucketWidth overrides the histogram bucket width.
func WithBucketWidth(w float64) Option {
	return func(c *config) { c.bucketWidth = w }
}

// WithRejectNegative makes Record/Set panic on a negative sample instead
// of folding it into bucket 0. Off by default (spec.md §4.8: "values
// below 0 rejected or bucketed into bucket 0 per configuration").
func WithRejectNegative() Option {
	return func(c *config) { c.rejectNegative = true }
}

// WithStoredValues opts the recorder into keeping every raw sample (for
// Discrete) or every (t, y) step (for Continuous), enabling Values() and
// the gonum-backed Summary(). Off by default — memory cost is O(n).
func WithStoredValues() Option {
	return func(c *config) { c.keepValues = true }
}

func newConfig(opts []Option) config {
	c := config{bucketWidth: DefaultBucketWidth}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Discrete accumulates individual samples x1...xn: count, sum,
// sum-of-squares, min, max, and a fixed-bucket-width histogram.
type Discrete struct {
	cfg config

	count     int64
	sum       float64
	sumSq     float64
	min       float64
	max       float64
	histogram []int64

	values []float64 // only populated when cfg.keepValues
}

// NewDiscrete constructs an empty Discrete recorder.
func NewDiscrete(opts ...Option) *Discrete {
	return &Discrete{
		cfg: newConfig(opts),
		min: math.Inf(1),
		max: math.Inf(-1),
	}
}

// Record adds a sample. Negative samples are folded into bucket 0 unless
// the recorder was built WithRejectNegative, in which case Record panics
// — a negative waiting/service/residence time is a programmer error, not
// a modeled outcome.
func (d *Discrete) Record(x float64) {
	if x < 0 {
		if d.cfg.rejectNegative {
			panic("stats: negative sample recorded")
		}
	}
	d.count++
	d.sum += x
	d.sumSq += x * x
	if x < d.min {
		d.min = x
	}
	if x > d.max {
		d.max = x
	}
	d.recordHistogram(x)
	if d.cfg.keepValues {
		d.values = append(d.values, x)
	}
}

func (d *Discrete) recordHistogram(x float64) {
	bucket := int64(x / d.cfg.bucketWidth)
	if bucket < 0 {
		bucket = 0
	}
	for int64(len(d.histogram)) <= bucket {
		d.histogram = append(d.histogram, 0)
	}
	d.histogram[bucket]++
}

// Count returns the number of recorded samples.
func (d *Discrete) Count() int64 { return d.count }

// Mean returns the arithmetic mean, or 0 on an empty recorder (spec.md
// §7: "querying mean on an empty recorder returns 0 ... not an error").
func (d *Discrete) Mean() float64 {
	if d.count == 0 {
		return 0
	}
	return d.sum / float64(d.count)
}

// Variance returns the population variance derived from the running
// moments (sum, sum-of-squares), or 0 with fewer than 2 samples.
func (d *Discrete) Variance() float64 {
	if d.count < 2 {
		return 0
	}
	n := float64(d.count)
	mean := d.sum / n
	v := d.sumSq/n - mean*mean
	if v < 0 {
		// floating point cancellation can push this slightly negative
		// for near-zero-variance samples.
		v = 0
	}
	return v
}

// StdDev returns the standard deviation, or 0 with fewer than 2 samples.
func (d *Discrete) StdDev() float64 {
	return math.Sqrt(d.Variance())
}

// CV returns the coefficient of variation (StdDev/Mean), or 0 when the
// mean is 0 (spec.md §4.8).
func (d *Discrete) CV() float64 {
	mean := d.Mean()
	if mean == 0 {
		return 0
	}
	return d.StdDev() / mean
}

// Min returns the smallest recorded sample, or +Inf if no samples were
// recorded.
func (d *Discrete) Min() float64 { return d.min }

// Max returns the largest recorded sample, or -Inf if no samples were
// recorded.
func (d *Discrete) Max() float64 { return d.max }

// BucketWidth returns the histogram's bucket width.
func (d *Discrete) BucketWidth() float64 { return d.cfg.bucketWidth }

// Histogram returns a copy of the sample-count histogram, indexed by
// bucket (bucket i covers [i*BucketWidth, (i+1)*BucketWidth)).
func (d *Discrete) Histogram() []int64 {
	out := make([]int64, len(d.histogram))
	copy(out, d.histogram)
	return out
}

// Values returns a copy of the stored raw samples; it is empty (not nil)
// if the recorder wasn't built WithStoredValues.
func (d *Discrete) Values() []float64 {
	out := make([]float64, len(d.values))
	copy(out, d.values)
	return out
}

// Percentile returns the p-th percentile (0-100) of the stored raw
// samples via linear interpolation (gonum/stat.Quantile). Requires the
// recorder to have been built WithStoredValues; otherwise it returns 0.
func (d *Discrete) Percentile(p float64) float64 {
	if len(d.values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), d.values...)
	sort.Float64s(sorted)
	return stat.Quantile(p/100.0, stat.LinInterp, sorted, nil)
}
