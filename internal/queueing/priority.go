package queueing

// Discipline selects how a priority queue treats the customer in service when
// a higher class arrives.
type Discipline int

const (
	// Preemptive interrupts lower-class service (preemptive resume).
	Preemptive Discipline = iota
	// NonPreemptive lets service in progress finish.
	NonPreemptive
)

func (d Discipline) String() string {
	if d == NonPreemptive {
		return "non-preemptive"
	}
	return "preemptive"
}

func disciplineOf(m Model) Discipline {
	if m == PriorityNonPreemptive {
		return NonPreemptive
	}
	return Preemptive
}

// aggregateClasses computes the cumulative loads σₖ = (λ₁+…+λₖ)/(sμ) and the
// per-class delays. Both disciplines share the (1−σₖ₋₁)(1−σₖ) denominator:
//
//	preemptive:     Wₖ  = (1/μ) / [(1−σₖ₋₁)(1−σₖ)]
//	non-preemptive: Wqₖ = W₀ / [(1−σₖ₋₁)(1−σₖ)],  W₀ = C(s, λ/μ) / (sμ)
//
// W₀ is the expected residual work an arrival finds ahead of it; for s = 1 it
// reduces to λ/μ².
func aggregateClasses(rates []float64, s int, mu float64, disc Discipline) []ClassResult {
	capacity := float64(s) * mu
	lambda := 0.0
	for _, l := range rates {
		lambda += l
	}
	w0 := erlangC(s, lambda/mu) / capacity
	service := 1 / mu

	classes := make([]ClassResult, 0, len(rates))
	prev, cum := 0.0, 0.0
	for k, l := range rates {
		cum += l
		sigma := cum / capacity
		denom := (1 - prev) * (1 - sigma)

		var w, wq float64
		switch disc {
		case NonPreemptive:
			wq = w0 / denom
			w = wq + service
		default:
			w = service / denom
			wq = w - service
		}

		classes = append(classes, ClassResult{
			ClassIndex: k + 1,
			Lambda:     l,
			L:          l * w,
			Lq:         l * wq,
			W:          w,
			Wq:         wq,
			Sigma:      sigma,
		})
		prev = sigma
	}
	return classes
}

// solvePriority aggregates the classes into the system-wide record. With a
// common exponential service rate the total occupancy is that of an M/M/s
// queue regardless of class order, which supplies P0.
func solvePriority(m Model, p Parameters) (Result, error) {
	s := p.servers(m)
	lambda := p.arrivalRate(m)

	d, err := chainFor(m, p).Solve()
	if err != nil {
		return Result{}, err
	}

	classes := aggregateClasses(p.ClassArrivalRates, s, p.Mu, disciplineOf(m))
	var l, lq float64
	for _, c := range classes {
		l += c.L
		lq += c.Lq
	}

	return Result{
		Model:       m,
		Rho:         lambda / (float64(s) * p.Mu),
		P0:          d.P0(),
		L:           l,
		Lq:          lq,
		W:           l / lambda,
		Wq:          lq / lambda,
		LambdaTotal: ptr(lambda),
		Capacity:    ptr(float64(s) * p.Mu),
		Classes:     classes,
	}, nil
}
