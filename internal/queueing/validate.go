package queueing

import (
	"fmt"
	"math"
)

// DefaultMaxStates caps K and N so a single request stays bounded.
const DefaultMaxStates = 100000

// Verdict is the outcome of a stability check.
type Verdict struct {
	Stable bool `json:"stable"`
	// Condition names the violated inequality with substituted values; empty when stable.
	Condition string `json:"condition,omitempty"`
	// Utilization is the load the condition was evaluated against.
	Utilization float64 `json:"utilization"`
}

// CheckStability evaluates the ergodicity condition for a model. Finite
// capacity and finite population models are always stable. The parameters
// are assumed to be structurally valid. Legacy aliases are accepted.
func CheckStability(m Model, p Parameters) Verdict {
	if parsed, err := ParseModel(string(m)); err == nil {
		m = parsed
	}
	s := p.servers(m)
	lambda := p.arrivalRate(m)

	switch m {
	case MM1:
		rho := lambda / p.Mu
		if lambda >= p.Mu {
			return Verdict{Condition: fmt.Sprintf("λ ≥ μ: %g ≥ %g", lambda, p.Mu), Utilization: rho}
		}
		return Verdict{Stable: true, Utilization: rho}
	case MMS:
		capacity := float64(s) * p.Mu
		rho := lambda / capacity
		if lambda >= capacity {
			return Verdict{
				Condition:   fmt.Sprintf("λ ≥ s·μ: %g ≥ %g (s=%d, μ=%g)", lambda, capacity, s, p.Mu),
				Utilization: rho,
			}
		}
		return Verdict{Stable: true, Utilization: rho}
	case MG1:
		load := lambda * (1 / p.Mu)
		if load >= 1 {
			return Verdict{Condition: fmt.Sprintf("λ·E[S] ≥ 1: %g·%g = %g", lambda, 1/p.Mu, load), Utilization: load}
		}
		return Verdict{Stable: true, Utilization: load}
	case PriorityPreemptive, PriorityNonPreemptive:
		capacity := float64(s) * p.Mu
		rho := lambda / capacity
		if rho >= 1 {
			return Verdict{
				Condition:   fmt.Sprintf("Σλᵢ/(s·μ) ≥ 1: %g/%g = %g", lambda, capacity, rho),
				Utilization: rho,
			}
		}
		return Verdict{Stable: true, Utilization: rho}
	case MM1K, MMSK:
		return Verdict{Stable: true, Utilization: lambda / (float64(s) * p.Mu)}
	case MM1N, MMSN:
		return Verdict{Stable: true, Utilization: float64(p.Population) * lambda / (float64(s) * p.Mu)}
	}
	return Verdict{Condition: fmt.Sprintf("unknown model %q", m)}
}

// Validate runs the structural checks and then the stability check. It never
// mutates p. maxStates ≤ 0 falls back to DefaultMaxStates.
func Validate(m Model, p Parameters, maxStates int) error {
	m, err := ParseModel(string(m))
	if err != nil {
		return err
	}
	if err := validateStructure(m, p, maxStates); err != nil {
		return err
	}
	if v := CheckStability(m, p); !v.Stable {
		return stabilityErr(m, v.Condition)
	}
	return nil
}

func validateStructure(m Model, p Parameters, maxStates int) error {
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}
	if _, err := ParseModel(string(m)); err != nil {
		return err
	}

	if !positive(p.Mu) {
		return validationErr(m, "service rate mu must be a positive number, got %g", p.Mu)
	}

	if m.priority() {
		if len(p.ClassArrivalRates) == 0 {
			return validationErr(m, "at least one priority class arrival rate is required")
		}
		for i, l := range p.ClassArrivalRates {
			if !positive(l) {
				return validationErr(m, "arrival rate of class %d must be a positive number, got %g", i+1, l)
			}
		}
		if p.Lambda != 0 {
			total := p.arrivalRate(m)
			if math.Abs(p.Lambda-total) > 1e-9*math.Max(1, total) {
				return validationErr(m, "lambda %g does not match the sum of class arrival rates %g", p.Lambda, total)
			}
		}
	} else if !positive(p.Lambda) {
		return validationErr(m, "arrival rate lambda must be a positive number, got %g", p.Lambda)
	}

	s := p.servers(m)
	if m.singleServer() && s != 1 {
		return validationErr(m, "model is single-server, got servers=%d", p.Servers)
	}
	if s < 1 {
		return validationErr(m, "servers must be at least 1, got %d", p.Servers)
	}

	switch m {
	case MM1K, MMSK:
		if p.Capacity < s {
			return validationErr(m, "capacity K must be at least the number of servers (K=%d, s=%d)", p.Capacity, s)
		}
		if p.Capacity > maxStates {
			return validationErr(m, "capacity K=%d exceeds the limit of %d states", p.Capacity, maxStates)
		}
	case MM1N:
		if p.Population < 1 {
			return validationErr(m, "population N must be at least 1, got %d", p.Population)
		}
	case MMSN:
		if p.Population <= s {
			return validationErr(m, "population N must exceed the number of servers (N=%d, s=%d)", p.Population, s)
		}
	}
	if (m == MM1N || m == MMSN) && p.Population > maxStates {
		return validationErr(m, "population N=%d exceeds the limit of %d states", p.Population, maxStates)
	}

	if p.ServiceVariance != nil {
		if v := *p.ServiceVariance; v < 0 || !allFinite(v) {
			return validationErr(m, "service variance must be a non-negative number, got %g", v)
		}
	}

	if p.PointCount != nil && *p.PointCount < 0 {
		return validationErr(m, "n must be non-negative, got %d", *p.PointCount)
	}
	if p.TailThreshold != nil && *p.TailThreshold < 0 {
		return validationErr(m, "r must be non-negative, got %d", *p.TailThreshold)
	}
	if p.TimeThreshold != nil {
		if t := *p.TimeThreshold; t < 0 || !allFinite(t) {
			return validationErr(m, "t must be a non-negative number, got %g", t)
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && allFinite(v)
}
