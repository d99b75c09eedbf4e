package analytic

import "math"

// ErlangC solves the Erlang C formula for an M/M/c system with
// unlimited queueing and no impatience.
type ErlangC struct {
	l  float64 // arrival rate, lambda
	mu float64 // service rate, mu
	a  float64 // workload, lambda/mu
	c  int

	p0 float64
	p1 float64
	pn map[int]float64
}

// NewErlangC builds an ErlangC for arrival rate l, service rate mu, and
// c servers.
func NewErlangC(l, mu float64, c int) ErlangC {
	if l < 0 {
		l = 0
	}
	if mu < 0 {
		mu = 0
	}
	if c < 1 {
		c = 1
	}
	a := 0.0
	if mu > 0 {
		a = l / mu
	}

	sum := 0.0
	for k := 0; k < c; k++ {
		sum += powerFactorial(a, k)
	}
	sum += powerFactorial(a, c) * float64(c) / (float64(c) - a)
	p0 := 0.0
	if sum > 0 {
		p0 = 1 / sum
	}
	p1 := powerFactorial(a, c) * float64(c) / (float64(c) - a) * p0

	return ErlangC{l: l, mu: mu, a: a, c: c, p0: p0, p1: p1, pn: map[int]float64{0: p0}}
}

func (e ErlangC) L() float64  { return e.l }
func (e ErlangC) Mu() float64 { return e.mu }
func (e ErlangC) A() float64  { return e.a }
func (e ErlangC) C() int      { return e.c }

// Rho returns the utilization a/c.
func (e ErlangC) Rho() float64 { return e.a / float64(e.c) }

// Pn returns P(N = n), the probability of n clients in the system.
func (e ErlangC) Pn(n int) float64 {
	if v, ok := e.pn[n]; ok {
		return v
	}
	var result float64
	if n <= e.c {
		result = powerFactorial(e.a, n) * e.p0
	} else {
		result = powerFactorial(e.a, e.c) * math.Pow(e.a/float64(e.c), float64(n-e.c)) * e.p0
	}
	e.pn[n] = result
	return result
}

// P1 returns the P1 term of the Erlang C formula (the unconditional
// probability that an arrival must wait at all).
func (e ErlangC) P1() float64 { return e.p1 }

// Pt returns P(W <= t), the probability an arrival waits no more than
// t before entering service.
func (e ErlangC) Pt(t float64) float64 {
	if e.a >= float64(e.c) {
		return 0
	}
	return 1 - e.p1*math.Exp(-(float64(e.c)-e.a)*e.mu*t)
}

// ENQ returns the mean number of clients in the queue.
func (e ErlangC) ENQ() float64 {
	if e.a >= float64(e.c) {
		return 0
	}
	return e.p1 * e.a / (float64(e.c) - e.a)
}

// EN returns the mean number of clients in the system (queue +
// service).
func (e ErlangC) EN() float64 {
	if e.a >= float64(e.c) {
		return 0
	}
	return e.p1*e.a/(float64(e.c)-e.a) + e.a
}

// EW returns the mean waiting time.
func (e ErlangC) EW() float64 {
	if e.a >= float64(e.c) {
		return 0
	}
	return e.p1 / (float64(e.c)*e.mu - e.l)
}

// EV returns the mean residence time (waiting + service).
func (e ErlangC) EV() float64 {
	if e.a >= float64(e.c) {
		return 0
	}
	return e.p1/(float64(e.c)*e.mu-e.l) + 1/e.mu
}
