package analytic

// ACApprox is the Allen-Cunneen approximation for a GI/G/c system: an
// M/M/c-based approximation corrected for non-exponential
// inter-arrival and service time variability via their squared
// coefficients of variation.
type ACApprox struct {
	l, mu    float64
	c        int
	scvI     float64
	scvS     float64
	erlangENQ float64
}

// NewACApprox builds an ACApprox for arrival rate l, service rate mu, c
// servers, and the squared coefficients of variation of the
// inter-arrival (scvI) and service (scvS) time distributions. scvI ==
// scvS == 1 recovers the Erlang C system exactly.
func NewACApprox(l, mu float64, c int, scvI, scvS float64) ACApprox {
	if l < 0 {
		l = 0
	}
	if mu < 0 {
		mu = 0
	}
	if c < 1 {
		c = 1
	}
	if scvI < 0 {
		scvI = 0
	}
	if scvS < 0 {
		scvS = 0
	}
	return ACApprox{l: l, mu: mu, c: c, scvI: scvI, scvS: scvS, erlangENQ: NewErlangC(l, mu, c).ENQ()}
}

func (a ACApprox) L() float64    { return a.l }
func (a ACApprox) Mu() float64   { return a.mu }
func (a ACApprox) C() int        { return a.c }
func (a ACApprox) SCVI() float64 { return a.scvI }
func (a ACApprox) SCVS() float64 { return a.scvS }

func (a ACApprox) workload() float64 {
	if a.mu == 0 {
		return 0
	}
	return a.l / a.mu
}

// Rho returns the utilization a/c.
func (a ACApprox) Rho() float64 { return a.workload() / float64(a.c) }

// ENQ returns the approximate mean number of clients in the queue.
func (a ACApprox) ENQ() float64 {
	if a.workload() >= float64(a.c) {
		return 0
	}
	return a.erlangENQ * (a.scvI + a.scvS) / 2
}

// EN returns the approximate mean number of clients in the system.
func (a ACApprox) EN() float64 {
	if a.workload() >= float64(a.c) {
		return 0
	}
	return a.erlangENQ*(a.scvI+a.scvS)/2 + a.workload()
}

// EW returns the approximate mean waiting time.
func (a ACApprox) EW() float64 {
	if a.workload() >= float64(a.c) || a.l == 0 {
		return 0
	}
	return a.erlangENQ / a.l * (a.scvI + a.scvS) / 2
}

// EV returns the approximate mean residence time.
func (a ACApprox) EV() float64 {
	if a.workload() >= float64(a.c) || a.l == 0 || a.mu == 0 {
		return 0
	}
	return a.erlangENQ/a.l*(a.scvI+a.scvS)/2 + 1/a.mu
}
