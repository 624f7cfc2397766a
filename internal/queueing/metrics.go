package queueing

import "gonum.org/v1/gonum/floats"

// chainFor expresses a Markovian model as a birth-death chain. Departures are
// min(n, s)·μ everywhere; the models differ in how arrivals depend on n and
// where the state space ends.
func chainFor(m Model, p Parameters) Chain {
	s := p.servers(m)
	mu := p.Mu
	death := func(n int) float64 { return float64(min(n, s)) * mu }

	switch m {
	case MM1K, MMSK:
		k, lambda := p.Capacity, p.Lambda
		return Chain{
			Model: m,
			Birth: func(n int) float64 {
				if n >= k {
					return 0
				}
				return lambda
			},
			Death: death,
			Bound: k,
		}
	case MM1N, MMSN:
		pop, lambda := p.Population, p.Lambda
		return Chain{
			Model: m,
			Birth: func(n int) float64 {
				if n >= pop {
					return 0
				}
				return float64(pop-n) * lambda
			},
			Death: death,
			Bound: pop,
		}
	}

	// mm1, mms and the total occupancy of a priority queue
	lambda := p.arrivalRate(m)
	return Chain{
		Model: m,
		Birth: func(int) float64 { return lambda },
		Death: death,
		Bound: Unbounded,
		Knee:  s,
	}
}

// deriveMetrics turns a solved table into the standard metric set. L comes
// straight from the table, so the finite-population effective arrival rate
// λ(N−L) needs no fixed-point iteration.
func deriveMetrics(m Model, p Parameters, c Chain, d *Distribution) Result {
	s := p.servers(m)
	res := Result{
		Model: m,
		Rho:   CheckStability(m, p).Utilization,
		P0:    d.P0(),
		L:     d.Mean(),
	}

	lambdaEff := p.Lambda
	switch m {
	case MM1K, MMSK:
		pk := d.at(p.Capacity)
		lambdaEff = p.Lambda * (1 - pk)
		res.PK = ptr(pk)
		res.LambdaEffective = ptr(lambdaEff)
	case MM1N, MMSN:
		operational := float64(p.Population) - res.L
		lambdaEff = p.Lambda * operational
		res.LambdaEffective = ptr(lambdaEff)
		res.NumOperational = ptr(operational)
	}

	res.W = res.L / lambdaEff
	res.Lq = nonNegative(res.L - lambdaEff/p.Mu)
	res.Wq = nonNegative(res.W - 1/p.Mu)
	res.PWqEqualsZero = ptr(immediateService(c, d, s))
	return res
}

// admitted is the distribution seen by arriving customers that enter the
// system: πₙ = λₙPₙ / Σ λₖPₖ. Blocked arrivals (λ_K = 0) drop out and finite
// populations weight by the number of idle sources. Only bounded tables are
// supported; unbounded Poisson arrivals see the time average.
func admitted(c Chain, d *Distribution) []float64 {
	pi := d.Probabilities()
	for n := range pi {
		pi[n] *= c.Birth(n)
	}
	if total := floats.Sum(pi); total > 0 {
		floats.Scale(1/total, pi)
	}
	return pi
}

// immediateService is P(Wq = 0): an admitted arrival finds a free server.
func immediateService(c Chain, d *Distribution, s int) float64 {
	if !d.Bounded() {
		return 1 - d.Tail(s-1)
	}
	pi := admitted(c, d)
	return floats.Sum(pi[:min(s, len(pi))])
}

// nonNegative clears rounding noise below zero.
func nonNegative(v float64) float64 {
	if v < 0 && v > -1e-12 {
		return 0
	}
	return v
}
