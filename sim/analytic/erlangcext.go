package analytic

import "gonum.org/v1/gonum/mathext"

// ErlangCExt solves the extended Erlang C formula for an M/M/c/K+M
// system: c servers, a finite system capacity K, and customer
// impatience modeled as an exponential cancellation rate nu.
type ErlangCExt struct {
	l, mu, nu float64
	a         float64
	c, k      int

	cn map[int]float64
	pn map[int]float64
}

// NewErlangCExt builds an ErlangCExt for arrival rate l, service rate
// mu, cancellation rate nu, c servers, and system capacity k (clamped
// to >= c).
func NewErlangCExt(l, mu, nu float64, c, k int) *ErlangCExt {
	if l < 0 {
		l = 0
	}
	if mu < 0 {
		mu = 0
	}
	if nu < 0 {
		nu = 0
	}
	if c < 1 {
		c = 1
	}
	if k < c {
		k = c
	}
	a := 0.0
	if mu > 0 {
		a = l / mu
	}

	e := &ErlangCExt{l: l, mu: mu, nu: nu, a: a, c: c, k: k, cn: make(map[int]float64), pn: make(map[int]float64)}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += e.Cn(i)
	}
	p0 := 0.0
	if sum > 0 {
		p0 = 1 / sum
	}
	e.pn[0] = p0
	return e
}

func (e *ErlangCExt) L() float64  { return e.l }
func (e *ErlangCExt) Mu() float64 { return e.mu }
func (e *ErlangCExt) Nu() float64 { return e.nu }
func (e *ErlangCExt) A() float64  { return e.a }
func (e *ErlangCExt) C() int      { return e.c }
func (e *ErlangCExt) K() int      { return e.k }

// RhoOffered returns the offered utilization a/c.
func (e *ErlangCExt) RhoOffered() float64 { return e.a / float64(e.c) }

// Cn computes the recursive C(n) factor feeding every probability
// below.
func (e *ErlangCExt) Cn(n int) float64 {
	if v, ok := e.cn[n]; ok {
		return v
	}
	var value float64
	if n <= e.c {
		value = powerFactorial(e.l/e.mu, n)
	} else {
		value = powerFactorial(e.l/e.mu, e.c)
		for i := 1; i <= n-e.c; i++ {
			value *= e.l / (float64(e.c)*e.mu + float64(i)*e.nu)
		}
	}
	e.cn[n] = value
	return value
}

// Pn returns P(N = n), 0 for n > K.
func (e *ErlangCExt) Pn(n int) float64 {
	if n > e.k {
		return 0
	}
	if v, ok := e.pn[n]; ok {
		return v
	}
	value := e.Cn(n) * e.pn[0]
	e.pn[n] = value
	return value
}

// PBlocked returns P(N = K), the probability an arrival is rejected
// outright because the system is full.
func (e *ErlangCExt) PBlocked() float64 { return e.Pn(e.k) }

// PA returns the cancellation probability P(A): the fraction of
// admitted clients that renege before being served.
func (e *ErlangCExt) PA() float64 {
	p0 := e.Pn(0)
	inputReject := e.Pn(e.k)
	sum := 0.0
	for n := e.c + 1; n <= e.k; n++ {
		sum += e.nu / (e.l * (1 - inputReject)) * float64(n-e.c) * p0 * e.Cn(n)
	}
	return sum
}

// Pt returns P(W <= t).
func (e *ErlangCExt) Pt(t float64) float64 {
	p0 := e.Pn(0)
	p := 1.0
	if p0 != 0 {
		p = 1 - p0*e.Cn(e.k)
	}
	for n := e.c; n < e.k; n++ {
		a := float64(n - e.c + 1)
		x := (float64(e.c)*e.mu + e.nu) * t
		g := 1 - mathext.GammaIncReg(a, x)
		p -= p0 * e.Cn(n) * g
	}
	return p
}

// RhoReal returns the real utilization (E[N]-E[NQ])/c.
func (e *ErlangCExt) RhoReal() float64 { return (e.EN() - e.ENQ()) / float64(e.c) }

// ENQ returns the mean number of clients in the queue.
func (e *ErlangCExt) ENQ() float64 {
	p0 := e.Pn(0)
	sum := 0.0
	for n := e.c + 1; n <= e.k; n++ {
		sum += p0 * float64(n-e.c) * e.Cn(n)
	}
	return sum
}

// EN returns the mean number of clients in the system.
func (e *ErlangCExt) EN() float64 {
	p0 := e.Pn(0)
	sum := 0.0
	for n := 1; n <= e.k; n++ {
		sum += p0 * float64(n) * e.Cn(n)
	}
	return sum
}

// EW returns the mean waiting time.
func (e *ErlangCExt) EW() float64 {
	if e.l == 0 {
		return 0
	}
	return e.ENQ() / e.l
}

// EV returns the mean residence time.
func (e *ErlangCExt) EV() float64 {
	if e.l == 0 {
		return 0
	}
	return e.EN() / e.l
}
