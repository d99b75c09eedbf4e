package stats

import "math"

// Continuous tracks a time-weighted step signal y(t) — work-in-progress,
// servers-busy, queue length — per spec.md §3/§4.8.
//
// Set(t, y) records that the signal held its *previous* value between
// the previous call's t and this call's t; the new value y only takes
// effect going forward. Finalize(t) must be called once at the end of a
// run to account for the time between the last Set and simulator.now.
type Continuous struct {
	cfg config

	initialized bool
	finalized   bool
	tPrev       float64
	yPrev       float64

	totalTime float64
	weightedSum   float64
	weightedSumSq float64
	min           float64
	max           float64
	histogram     map[int64]float64 // bucket -> time spent

	values []step // only populated when cfg.keepValues
}

type step struct {
	T, Y float64
}

// NewContinuous constructs an empty Continuous recorder. t0 is the time
// at which the signal starts (usually the simulator's time at
// construction, generally 0).
func NewContinuous(t0 float64, initial float64, opts ...Option) *Continuous {
	c := &Continuous{
		cfg:         newConfig(opts),
		initialized: true,
		tPrev:       t0,
		yPrev:       initial,
		min:         initial,
		max:         initial,
		histogram:   make(map[int64]float64),
	}
	if c.cfg.keepValues {
		c.values = append(c.values, step{T: t0, Y: initial})
	}
	return c
}

// Set records that the signal changes to y at time t. t must be >= the
// time of the previous Set/Finalize call.
func (c *Continuous) Set(t, y float64) {
	c.accumulate(t)
	c.yPrev = y
	if y < c.min {
		c.min = y
	}
	if y > c.max {
		c.max = y
	}
	if c.cfg.keepValues {
		c.values = append(c.values, step{T: t, Y: y})
	}
}

// accumulate charges the elapsed time since tPrev, at the value yPrev,
// into the running totals and histogram.
func (c *Continuous) accumulate(t float64) {
	dt := t - c.tPrev
	if dt < 0 {
		panic("stats: Continuous recorder time went backwards")
	}
	c.totalTime += dt
	c.weightedSum += c.yPrev * dt
	c.weightedSumSq += c.yPrev * c.yPrev * dt
	if dt > 0 {
		bucket := int64(c.yPrev / c.cfg.bucketWidth)
		if bucket < 0 {
			bucket = 0
		}
		c.histogram[bucket] += dt
	}
	c.tPrev = t
}

// Finalize charges the remaining time between the last Set and now into
// the accumulators. Must be called exactly once, at simulator.now, at
// run end (spec.md §4.8: "At run end, each recorder is finalized at
// simulator.now").
func (c *Continuous) Finalize(now float64) {
	if c.finalized {
		return
	}
	c.accumulate(now)
	c.finalized = true
}

// TotalTime returns the total elapsed time observed.
func (c *Continuous) TotalTime() float64 { return c.totalTime }

// Mean returns ∫y dt / total_time, or 0 if no time has elapsed.
func (c *Continuous) Mean() float64 {
	if c.totalTime == 0 {
		return 0
	}
	return c.weightedSum / c.totalTime
}

// Variance returns the time-weighted variance of y, or 0 if no time has
// elapsed.
func (c *Continuous) Variance() float64 {
	if c.totalTime == 0 {
		return 0
	}
	mean := c.Mean()
	v := c.weightedSumSq/c.totalTime - mean*mean
	if v < 0 {
		v = 0
	}
	return v
}

// StdDev returns the time-weighted standard deviation of y.
func (c *Continuous) StdDev() float64 { return math.Sqrt(c.Variance()) }

// CV returns the coefficient of variation, or 0 when the mean is 0.
func (c *Continuous) CV() float64 {
	mean := c.Mean()
	if mean == 0 {
		return 0
	}
	return c.StdDev() / mean
}

// Min returns the smallest value the signal held.
func (c *Continuous) Min() float64 { return c.min }

// Max returns the largest value the signal held.
func (c *Continuous) Max() float64 { return c.max }

// BucketWidth returns the histogram's bucket width.
func (c *Continuous) BucketWidth() float64 { return c.cfg.bucketWidth }

// Histogram returns the time-weighted histogram as a dense slice indexed
// by bucket, covering buckets 0..max observed.
func (c *Continuous) Histogram() []float64 {
	maxBucket := int64(-1)
	for b := range c.histogram {
		if b > maxBucket {
			maxBucket = b
		}
	}
	out := make([]float64, maxBucket+1)
	for b, t := range c.histogram {
		out[b] = t
	}
	return out
}

// Values returns a copy of the stored (t, y) step samples; it is empty
// (not nil) if the recorder wasn't built WithStoredValues. The owning station's record_values flag
// (spec.md §4.8) controls whether this is enabled.
func (c *Continuous) Values() [][2]float64 {
	out := make([][2]float64, len(c.values))
	for i, s := range c.values {
		out[i] = [2]float64{s.T, s.Y}
	}
	return out
}
