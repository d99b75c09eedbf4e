package analytic

// ErlangB solves the Erlang B formula for an M/M/c/c loss system (no
// queueing: an arrival finding all c servers busy is lost outright).
type ErlangB struct {
	a float64 // offered workload, lambda/mu
	c int
}

// NewErlangB builds an ErlangB for workload a (lambda/mu) and c
// servers. a is clamped to >= 0 and c to >= 1, matching erlang_b.py.
func NewErlangB(a float64, c int) ErlangB {
	if a < 0 {
		a = 0
	}
	if c < 1 {
		c = 1
	}
	return ErlangB{a: a, c: c}
}

// A returns the offered workload.
func (e ErlangB) A() float64 { return e.a }

// C returns the number of servers.
func (e ErlangB) C() int { return e.c }

// RhoOffered returns the offered utilization a/c.
func (e ErlangB) RhoOffered() float64 { return e.a / float64(e.c) }

// EN returns the mean number of clients in the system.
func (e ErlangB) EN() float64 {
	denom := 0.0
	for n := 0; n <= e.c; n++ {
		denom += powerFactorial(e.a, n)
	}
	num := 0.0
	for n := 0; n <= e.c; n++ {
		num += powerFactorial(e.a, n) * float64(n)
	}
	return num / denom
}

// RhoReal returns the real utilization E[N]/c.
func (e ErlangB) RhoReal() float64 { return e.EN() / float64(e.c) }

// PBlocked returns the blocking probability P(N = c): the fraction of
// arrivals that find every server busy and are lost.
func (e ErlangB) PBlocked() float64 {
	denom := 0.0
	for n := 0; n <= e.c; n++ {
		denom += powerFactorial(e.a, n)
	}
	return powerFactorial(e.a, e.c) / denom
}
