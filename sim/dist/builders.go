package dist

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrParameter is returned when a distribution is misconfigured — a
// non-positive mean for a positive-support distribution, a negative std
// dev, an inverted [low, high] range, and so on. Parameter errors are
// fatal at builder time (spec.md §7).
var ErrParameter = errors.New("parameter error")

// Builder is the common shape every NewXxx constructor below follows:
// validate, build a Generator bound to r, and return the Spec that can
// rehydrate an equivalent Generator elsewhere (spec.md §4.7).

// NewDeterministic returns a Generator that always yields mean.
func NewDeterministic(mean float64) (Generator, Spec, error) {
	spec := Spec{Kind: KindDeterministic, Params: map[string]float64{"mean": mean}}
	return deterministicGen(mean), spec, nil
}

func deterministicGen(mean float64) Generator {
	return func() float64 { return mean }
}

// NewExponential returns a Generator for Exp(1/mean).
func NewExponential(r *rand.Rand, mean float64) (Generator, Spec, error) {
	if mean <= 0 {
		return nil, Spec{}, fmt.Errorf("%w: exponential mean must be positive, got %v", ErrParameter, mean)
	}
	spec := Spec{Kind: KindExponential, Params: map[string]float64{"mean": mean}}
	return exponentialGen(r, mean), spec, nil
}

func exponentialGen(r *rand.Rand, mean float64) Generator {
	return func() float64 { return r.ExpFloat64() * mean }
}

// NewLogNormal returns a Generator for a log-normal distribution with the
// given mean and standard deviation (not the underlying mu/sigma — those
// are derived internally, mirroring original_source/queuesim/
// random_dist.py's log_normal()).
func NewLogNormal(r *rand.Rand, mean, std float64) (Generator, Spec, error) {
	if mean <= 0 || std < 0 {
		return nil, Spec{}, fmt.Errorf("%w: log-normal requires mean > 0 and std >= 0", ErrParameter)
	}
	spec := Spec{Kind: KindLogNormal, Params: map[string]float64{"mean": mean, "std": std}}
	return logNormalGen(r, mean, std), spec, nil
}

func logNormalGen(r *rand.Rand, mean, std float64) Generator {
	mu := math.Log(mean * mean / math.Sqrt(std*std+mean*mean))
	sigma := math.Sqrt(math.Log(std*std/(mean*mean) + 1))
	return func() float64 { return math.Exp(mu + sigma*r.NormFloat64()) }
}

// NewGamma returns a Generator for a gamma distribution matching the
// given mean and standard deviation.
func NewGamma(r *rand.Rand, mean, std float64) (Generator, Spec, error) {
	if mean <= 0 || std <= 0 {
		return nil, Spec{}, fmt.Errorf("%w: gamma requires mean > 0 and std > 0", ErrParameter)
	}
	spec := Spec{Kind: KindGamma, Params: map[string]float64{"mean": mean, "std": std}}
	return gammaGen(r, mean, std), spec, nil
}

func gammaGen(r *rand.Rand, mean, std float64) Generator {
	rate := mean / (std * std) // beta, in the rate parameterization
	alpha := mean * rate
	g := distuv.Gamma{Alpha: alpha, Beta: rate, Src: r}
	return func() float64 { return g.Rand() }
}

// NewErlang returns a Generator for an Erlang distribution (a gamma
// distribution with an integer shape parameter) matching the given mean
// and standard deviation, rounding the derived shape to the nearest
// integer >= 1 per original_source/queuesim/random_dist.py's erlang().
func NewErlang(r *rand.Rand, mean, std float64) (Generator, Spec, error) {
	if mean <= 0 || std <= 0 {
		return nil, Spec{}, fmt.Errorf("%w: erlang requires mean > 0 and std > 0", ErrParameter)
	}
	spec := Spec{Kind: KindErlang, Params: map[string]float64{"mean": mean, "std": std}}
	return erlangGen(r, mean, std), spec, nil
}

func erlangGen(r *rand.Rand, mean, std float64) Generator {
	scale := std * std / mean
	shape := math.Max(1, math.Round(mean/scale))
	g := distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: r}
	return func() float64 { return g.Rand() }
}

// NewUniform returns a Generator uniform on [low, high].
func NewUniform(r *rand.Rand, low, high float64) (Generator, Spec, error) {
	if high < low {
		return nil, Spec{}, fmt.Errorf("%w: uniform high must be >= low", ErrParameter)
	}
	spec := Spec{Kind: KindUniform, Params: map[string]float64{"low": low, "high": high}}
	return uniformGen(r, low, high), spec, nil
}

func uniformGen(r *rand.Rand, low, high float64) Generator {
	return func() float64 { return low + r.Float64()*(high-low) }
}

// NewTriangular returns a Generator for a triangular distribution on
// [low, high] with mode.
func NewTriangular(r *rand.Rand, low, mode, high float64) (Generator, Spec, error) {
	if !(low <= mode && mode <= high) {
		return nil, Spec{}, fmt.Errorf("%w: triangular requires low <= mode <= high", ErrParameter)
	}
	spec := Spec{Kind: KindTriangular, Params: map[string]float64{"low": low, "mode": mode, "high": high}}
	return triangularGen(r, low, mode, high), spec, nil
}

func triangularGen(r *rand.Rand, low, mode, high float64) Generator {
	return func() float64 {
		u := r.Float64()
		fc := 0.0
		if high > low {
			fc = (mode - low) / (high - low)
		}
		if u < fc {
			return low + math.Sqrt(u*(high-low)*(mode-low))
		}
		return high - math.Sqrt((1-u)*(high-low)*(high-mode))
	}
}

// NewTrapezoid returns a Generator for a trapezoid distribution with
// support [a, d] and plateau [b, c].
func NewTrapezoid(r *rand.Rand, a, b, c, d float64) (Generator, Spec, error) {
	if !(a <= b && b <= c && c <= d) {
		return nil, Spec{}, fmt.Errorf("%w: trapezoid requires a <= b <= c <= d", ErrParameter)
	}
	spec := Spec{Kind: KindTrapezoid, Params: map[string]float64{"a": a, "b": b, "c": c, "d": d}}
	return trapezoidGen(r, a, b, c, d), spec, nil
}

// trapezoidGen inverts the trapezoid CDF directly. The trapezoid density
// ramps linearly from 0 at a to its plateau height over [a,b], holds flat
// over [b,c], then ramps back to 0 over [c,d].
func trapezoidGen(r *rand.Rand, a, b, c, d float64) Generator {
	// plateau height h chosen so the total area is 1.
	h := 2.0 / ((d + c) - (a + b))
	areaRise := 0.5 * (b - a) * h
	areaFlat := (c - b) * h
	areaTotal := areaRise + areaFlat + 0.5*(d-c)*h
	return func() float64 {
		u := r.Float64() * areaTotal
		switch {
		case u < areaRise:
			// invert the triangular rise: area(x) = h*(x-a)^2 / (2*(b-a))
			return a + math.Sqrt(2*u*(b-a)/h)
		case u < areaRise+areaFlat:
			return b + (u-areaRise)/h
		default:
			rem := areaTotal - u
			return d - math.Sqrt(2*rem*(d-c)/h)
		}
	}
}

// NewBeta returns a Generator for a beta distribution rescaled to
// [low, high].
func NewBeta(r *rand.Rand, alpha, beta, low, high float64) (Generator, Spec, error) {
	if alpha <= 0 || beta <= 0 {
		return nil, Spec{}, fmt.Errorf("%w: beta alpha and beta must be positive", ErrParameter)
	}
	if high <= low {
		return nil, Spec{}, fmt.Errorf("%w: beta high must be > low", ErrParameter)
	}
	spec := Spec{Kind: KindBeta, Params: map[string]float64{"alpha": alpha, "beta": beta, "low": low, "high": high}}
	return betaGen(r, alpha, beta, low, high), spec, nil
}

func betaGen(r *rand.Rand, alpha, beta, low, high float64) Generator {
	b := distuv.Beta{Alpha: alpha, Beta: beta, Src: r}
	return func() float64 { return low + b.Rand()*(high-low) }
}

// NewHalfNormal returns a Generator for a half-normal distribution with
// support starting at low and the given mean.
func NewHalfNormal(r *rand.Rand, low, mean float64) (Generator, Spec, error) {
	if mean <= low {
		return nil, Spec{}, fmt.Errorf("%w: half-normal mean must be > low", ErrParameter)
	}
	spec := Spec{Kind: KindHalfNormal, Params: map[string]float64{"low": low, "mean": mean}}
	return halfNormalGen(r, low, mean), spec, nil
}

func halfNormalGen(r *rand.Rand, low, mean float64) Generator {
	scale := (mean - low) * math.Sqrt(math.Pi/2)
	return func() float64 { return low + math.Abs(r.NormFloat64())*scale }
}

// NewEmpirical returns a Generator sampling from a finite weighted value
// set via inverse-CDF binary search, mirroring the teacher's
// EmpiricalPDFSampler (sim/workload/distribution.go in the retrieval
// pack). Weights need not be normalized.
func NewEmpirical(r *rand.Rand, values, weights []float64) (Generator, Spec, error) {
	if len(values) == 0 || len(values) != len(weights) {
		return nil, Spec{}, fmt.Errorf("%w: empirical distribution requires matching non-empty value/weight arrays", ErrParameter)
	}
	for _, w := range weights {
		if w < 0 {
			return nil, Spec{}, fmt.Errorf("%w: empirical weights must be non-negative", ErrParameter)
		}
	}
	spec := Spec{
		Kind:             KindEmpirical,
		EmpiricalValues:  append([]float64(nil), values...),
		EmpiricalWeights: append([]float64(nil), weights...),
	}
	return empiricalGen(r, values, weights), spec, nil
}

func empiricalGen(r *rand.Rand, values, weights []float64) Generator {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	cdf := make([]float64, len(weights))
	cum := 0.0
	for i, w := range weights {
		cum += w / total
		cdf[i] = cum
	}
	if len(cdf) > 0 {
		cdf[len(cdf)-1] = 1.0
	}
	vals := append([]float64(nil), values...)
	return func() float64 {
		u := r.Float64()
		idx := sort.SearchFloat64s(cdf, u)
		if idx >= len(vals) {
			idx = len(vals) - 1
		}
		return vals[idx]
	}
}
