package queueing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Unbounded marks a chain whose state space has no upper limit.
const Unbounded = -1

// Chain is a birth-death process: in state n customers arrive at Birth(n) and
// depart at Death(n). Every finite-state Markovian model in this package is a
// Chain with different rate functions.
type Chain struct {
	Model Model
	Birth func(n int) float64
	Death func(n int) float64

	// Bound is the largest reachable state, or Unbounded.
	Bound int
	// Knee applies to unbounded chains only: from this state on the ratio
	// Birth(n)/Death(n+1) is constant, so the tail is geometric.
	Knee int
}

// Solve normalises the chain into steady-state probabilities.
func (c Chain) Solve() (*Distribution, error) {
	if c.Bound == Unbounded {
		return c.solveUnbounded()
	}
	if c.Bound < 0 {
		return nil, internalErr(c.Model, "chain bound %d is negative", c.Bound)
	}

	r := ratioSequence(c.Birth, c.Death, c.Bound)
	total := floats.Sum(r)
	if !allFinite(total) || total <= 0 {
		return nil, internalErr(c.Model, "state ratios do not normalise (sum=%g)", total)
	}
	floats.Scale(1/total, r)
	return &Distribution{model: c.Model, probs: r, bound: c.Bound}, nil
}

func (c Chain) solveUnbounded() (*Distribution, error) {
	knee := c.Knee
	if knee < 0 {
		knee = 0
	}
	rho := c.Birth(knee) / c.Death(knee+1)
	if !(rho < 1) {
		return nil, internalErr(c.Model, "geometric tail ratio %g is not below 1", rho)
	}

	r := ratioSequence(c.Birth, c.Death, knee)
	// Σ_{n>knee} r_knee·ρ^{n−knee} = r_knee·ρ/(1−ρ)
	total := floats.Sum(r) + r[knee]*rho/(1-rho)
	if !allFinite(total) || total <= 0 {
		return nil, internalErr(c.Model, "state ratios do not normalise (sum=%g)", total)
	}
	floats.Scale(1/total, r)
	return &Distribution{model: c.Model, probs: r, bound: Unbounded, rho: rho}, nil
}

// Distribution is a solved steady-state table P(n). Bounded chains are held in
// full; unbounded chains keep the head up to the knee and extend it
// geometrically on demand.
type Distribution struct {
	model Model
	probs []float64
	bound int
	rho   float64
}

// Bounded reports whether the state space is finite.
func (d *Distribution) Bounded() bool { return d.bound != Unbounded }

// UpperBound is the largest state, or Unbounded.
func (d *Distribution) UpperBound() int { return d.bound }

// P0 is the probability of an empty system.
func (d *Distribution) P0() float64 { return d.probs[0] }

// P returns the probability of exactly n customers in the system.
func (d *Distribution) P(n int) (float64, error) {
	if n < 0 || (d.Bounded() && n > d.bound) {
		return 0, domainErr(d.model, "n=%d is outside the state space %s", n, d.stateSpace())
	}
	return d.at(n), nil
}

func (d *Distribution) at(n int) float64 {
	last := len(d.probs) - 1
	if n <= last {
		return d.probs[n]
	}
	if d.Bounded() {
		return 0
	}
	return d.probs[last] * math.Pow(d.rho, float64(n-last))
}

// Probabilities returns a copy of the materialised table. For an unbounded
// chain this is only the head up to the knee.
func (d *Distribution) Probabilities() []float64 {
	out := make([]float64, len(d.probs))
	copy(out, d.probs)
	return out
}

// Tail returns P(N > r).
func (d *Distribution) Tail(r int) float64 {
	if r < 0 {
		return 1
	}
	last := len(d.probs) - 1
	if d.Bounded() {
		if r >= last {
			return 0
		}
		return floats.Sum(d.probs[r+1:])
	}
	geo := d.probs[last] * d.rho / (1 - d.rho)
	if r >= last {
		return geo * math.Pow(d.rho, float64(r-last))
	}
	return floats.Sum(d.probs[r+1:]) + geo
}

// Mean is the expected number in the system, L = Σ n·Pₙ.
func (d *Distribution) Mean() float64 {
	idx := make([]float64, len(d.probs))
	for i := range idx {
		idx[i] = float64(i)
	}
	mean := floats.Dot(idx, d.probs)
	if d.Bounded() {
		return mean
	}
	// Σ_{j≥1} (M+j)·P_M·ρ^j = P_M·(M·ρ/(1−ρ) + ρ/(1−ρ)²)
	last := len(d.probs) - 1
	q := 1 - d.rho
	return mean + d.probs[last]*(float64(last)*d.rho/q+d.rho/(q*q))
}

// Total is Σ Pₙ over the whole state space; 1 up to rounding.
func (d *Distribution) Total() float64 {
	return floats.Sum(d.probs) + d.Tail(len(d.probs)-1)
}

func (d *Distribution) stateSpace() string {
	if d.Bounded() {
		return fmt.Sprintf("[0, %d]", d.bound)
	}
	return "[0, ∞)"
}
