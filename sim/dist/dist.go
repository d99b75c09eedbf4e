// Package dist provides the random-variate capability the simulator
// consumes: a zero-argument Generator returning a non-negative real, plus
// named builders parameterized by mean (and, where applicable, standard
// deviation) that convert to each distribution's natural parameters.
//
// Every builder also returns a Spec — a tagged (kind, params) recipe that
// re-hydrates to an equivalent Generator via New. Specs, not Generators,
// are what cross a parallel worker boundary (see sim/parallel): function
// values can't be serialized or safely shared, but a Spec is a plain
// value.
package dist

import (
	"fmt"
	"math/rand"
)

// Generator draws a non-negative real number each time it is called.
// Implementations must be driven by the *rand.Rand passed at
// construction time (see New) so that draws are reproducible under
// sim/rng's partitioned RNG scheme.
type Generator func() float64

// Kind names a distribution family. Kind values are stable strings so
// that Specs serialize (e.g. to YAML) and compare cleanly.
type Kind string

const (
	KindDeterministic Kind = "deterministic"
	KindExponential   Kind = "exponential"
	KindLogNormal     Kind = "lognormal"
	KindGamma         Kind = "gamma"
	KindErlang        Kind = "erlang"
	KindUniform       Kind = "uniform"
	KindTriangular    Kind = "triangular"
	KindTrapezoid     Kind = "trapezoid"
	KindBeta          Kind = "beta"
	KindHalfNormal     Kind = "halfnormal"
	KindEmpirical     Kind = "empirical"
)

var validKinds = map[Kind]bool{
	KindDeterministic: true,
	KindExponential:   true,
	KindLogNormal:     true,
	KindGamma:         true,
	KindErlang:        true,
	KindUniform:       true,
	KindTriangular:    true,
	KindTrapezoid:     true,
	KindBeta:          true,
	KindHalfNormal:    true,
	KindEmpirical:     true,
}

// IsValidKind reports whether name is a recognized distribution kind.
func IsValidKind(k Kind) bool { return validKinds[k] }

// Spec is the serializable recipe for a Generator: a tagged variant of
// (kind, numeric params, optional empirical value/weight table). Spec
// values hold only plain data and can be sent across goroutine
// boundaries; the Generator they build cannot. A Spec holds a map and
// slices, so it is not comparable with ==.
type Spec struct {
	Kind   Kind
	Params map[string]float64

	// EmpiricalValues/EmpiricalWeights hold the finite value set for
	// KindEmpirical; parallel arrays because map iteration order isn't
	// stable and the recipe must be exactly reproducible.
	EmpiricalValues  []float64
	EmpiricalWeights []float64
}

// param fetches a required parameter, returning a parameter error if
// absent — mirrors the factory-by-name validation idiom used throughout
// this module (see sim.NewPriorityFunc and sim.IsValidPriorityKind).
func (s Spec) param(name string) (float64, error) {
	v, ok := s.Params[name]
	if !ok {
		return 0, fmt.Errorf("%w: distribution %q missing parameter %q", ErrParameter, s.Kind, name)
	}
	return v, nil
}

// New builds a Generator from a Spec, drawing from r. This is the
// rehydration half of the recipe round-trip: New(spec.Kind's builder's
// own Spec) must produce a Generator statistically equivalent to the one
// the original builder returned (spec.md §4.7, §8 "Generator round-trip"
// law).
func New(spec Spec, r *rand.Rand) (Generator, error) {
	if !IsValidKind(spec.Kind) {
		return nil, fmt.Errorf("%w: unknown distribution kind %q", ErrParameter, spec.Kind)
	}
	switch spec.Kind {
	case KindDeterministic:
		mean, err := spec.param("mean")
		if err != nil {
			return nil, err
		}
		return deterministicGen(mean), nil

	case KindExponential:
		mean, err := spec.param("mean")
		if err != nil {
			return nil, err
		}
		if mean <= 0 {
			return nil, fmt.Errorf("%w: exponential mean must be positive, got %v", ErrParameter, mean)
		}
		return exponentialGen(r, mean), nil

	case KindLogNormal:
		mean, std, err := meanStd(spec)
		if err != nil {
			return nil, err
		}
		return logNormalGen(r, mean, std), nil

	case KindGamma:
		mean, std, err := meanStd(spec)
		if err != nil {
			return nil, err
		}
		if mean <= 0 || std <= 0 {
			return nil, fmt.Errorf("%w: gamma mean and std must be positive", ErrParameter)
		}
		return gammaGen(r, mean, std), nil

	case KindErlang:
		mean, std, err := meanStd(spec)
		if err != nil {
			return nil, err
		}
		if mean <= 0 || std <= 0 {
			return nil, fmt.Errorf("%w: erlang mean and std must be positive", ErrParameter)
		}
		return erlangGen(r, mean, std), nil

	case KindUniform:
		low, err := spec.param("low")
		if err != nil {
			return nil, err
		}
		high, err := spec.param("high")
		if err != nil {
			return nil, err
		}
		if high < low {
			return nil, fmt.Errorf("%w: uniform high must be >= low", ErrParameter)
		}
		return uniformGen(r, low, high), nil

	case KindTriangular:
		low, err := spec.param("low")
		if err != nil {
			return nil, err
		}
		mode, err := spec.param("mode")
		if err != nil {
			return nil, err
		}
		high, err := spec.param("high")
		if err != nil {
			return nil, err
		}
		if !(low <= mode && mode <= high) {
			return nil, fmt.Errorf("%w: triangular requires low <= mode <= high", ErrParameter)
		}
		return triangularGen(r, low, mode, high), nil

	case KindTrapezoid:
		a, err := spec.param("a")
		if err != nil {
			return nil, err
		}
		b, err := spec.param("b")
		if err != nil {
			return nil, err
		}
		c, err := spec.param("c")
		if err != nil {
			return nil, err
		}
		d, err := spec.param("d")
		if err != nil {
			return nil, err
		}
		if !(a <= b && b <= c && c <= d) {
			return nil, fmt.Errorf("%w: trapezoid requires a <= b <= c <= d", ErrParameter)
		}
		return trapezoidGen(r, a, b, c, d), nil

	case KindBeta:
		alpha, err := spec.param("alpha")
		if err != nil {
			return nil, err
		}
		beta, err := spec.param("beta")
		if err != nil {
			return nil, err
		}
		low, err := spec.param("low")
		if err != nil {
			return nil, err
		}
		high, err := spec.param("high")
		if err != nil {
			return nil, err
		}
		if alpha <= 0 || beta <= 0 {
			return nil, fmt.Errorf("%w: beta alpha and beta must be positive", ErrParameter)
		}
		if high <= low {
			return nil, fmt.Errorf("%w: beta high must be > low", ErrParameter)
		}
		return betaGen(r, alpha, beta, low, high), nil

	case KindHalfNormal:
		low, err := spec.param("low")
		if err != nil {
			return nil, err
		}
		mean, err := spec.param("mean")
		if err != nil {
			return nil, err
		}
		if mean <= low {
			return nil, fmt.Errorf("%w: half-normal mean must be > low", ErrParameter)
		}
		return halfNormalGen(r, low, mean), nil

	case KindEmpirical:
		if len(spec.EmpiricalValues) == 0 || len(spec.EmpiricalValues) != len(spec.EmpiricalWeights) {
			return nil, fmt.Errorf("%w: empirical distribution requires matching non-empty value/weight arrays", ErrParameter)
		}
		return empiricalGen(r, spec.EmpiricalValues, spec.EmpiricalWeights), nil
	}
	return nil, fmt.Errorf("%w: unhandled distribution kind %q", ErrParameter, spec.Kind)
}

func meanStd(spec Spec) (mean, std float64, err error) {
	mean, err = spec.param("mean")
	if err != nil {
		return 0, 0, err
	}
	std, err = spec.param("std")
	if err != nil {
		return 0, 0, err
	}
	return mean, std, nil
}
