package queueing

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// rescaleLimit bounds the magnitude of accumulated ratios. Once a ratio passes
// it the whole prefix is divided down; only relative sizes matter before
// normalisation.
const rescaleLimit = 1e250

// ratioSequence returns r₀…r_upto with r₀ = 1 and rₙ₊₁ = rₙ·λₙ/μₙ₊₁, up to a
// common scale factor. Factorials and large powers are never formed.
func ratioSequence(birth, death func(n int) float64, upto int) []float64 {
	r := make([]float64, upto+1)
	r[0] = 1
	for n := 0; n < upto; n++ {
		next := r[n] * birth(n) / death(n+1)
		if next > rescaleLimit {
			floats.Scale(1/rescaleLimit, r[:n+1])
			next /= rescaleLimit
		}
		r[n+1] = next
	}
	return r
}

// erlangB evaluates the Erlang loss formula B(s, a) with the recurrence
// B(k) = a·B(k−1) / (k + a·B(k−1)), B(0) = 1.
func erlangB(s int, a float64) float64 {
	b := 1.0
	for k := 1; k <= s; k++ {
		b = a * b / (float64(k) + a*b)
	}
	return b
}

// erlangC is the probability that an arrival to a stable M/M/s queue with
// offered load a = λ/μ has to wait.
func erlangC(s int, a float64) float64 {
	b := erlangB(s, a)
	return float64(s) * b / (float64(s) - a*(1-b))
}

// logPoisson is log(e^{-x}·x^k/k!) for x > 0.
func logPoisson(k int, x float64) float64 {
	lg, _ := math.Lgamma(float64(k + 1))
	return -x + float64(k)*math.Log(x) - lg
}

// erlangTails returns q[m] = P(Erlang(m, 1) > x) = e^{-x}·Σ_{k<m} x^k/k! for
// m = 0…upto. Rate scaling is left to the caller (x = rate·t).
func erlangTails(upto int, x float64) []float64 {
	q := make([]float64, upto+1)
	for m := 1; m <= upto; m++ {
		if x <= 0 {
			q[m] = 1
			continue
		}
		q[m] = math.Min(q[m-1]+math.Exp(logPoisson(m-1, x)), 1)
	}
	return q
}

// logPoissonUpperTails returns u[m] = log Σ_{k≥m} e^{-y}·y^k/k! for
// m = 0…upto, accumulated from the far tail downwards so that tiny tails keep
// their exponent instead of underflowing.
func logPoissonUpperTails(upto int, y float64) []float64 {
	u := make([]float64, upto+1)
	spread := 40*math.Sqrt(y+1) + 64
	if float64(upto) < y-spread {
		// every m ≤ upto sits far below the mean; the lower sum is tiny and exact
		q := erlangTails(upto, y)
		for m := range u {
			u[m] = math.Log1p(-q[m])
		}
		return u
	}
	top := max(upto, int(y+spread))
	acc := math.Inf(-1)
	for k := top; k >= 0; k-- {
		acc = logAddExp(acc, logPoisson(k, y))
		if k <= upto {
			u[k] = acc
		}
	}
	return u
}

func logAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// sojournTails returns P(W > t) and P(Wq > t) for a FCFS queue with s
// exponential servers of rate mu, where pi[n] is the probability that an
// admitted arrival finds n customers in the system.
//
// An arrival finding n ≥ s waits Erlang(m, sμ) with m = n−s+1, then is
// served Exp(μ). For s ≥ 2 the sum has the closed form
//
//	P(W > t) = Q(m, sμt) + (s/(s−1))^m · e^{−μt} · P(Poisson((s−1)μt) ≥ m)
//
// and for s = 1 the sojourn is simply Erlang(m+1, μ).
func sojournTails(pi []float64, s int, mu, t float64) (pw, pwq float64) {
	if t <= 0 {
		for n, w := range pi {
			pw += w
			if n >= s {
				pwq += w
			}
		}
		return math.Min(pw, 1), math.Min(pwq, 1)
	}

	stay := math.Exp(-mu * t)
	maxM := len(pi) - s
	if maxM < 1 {
		for _, w := range pi {
			pw += w * stay
		}
		return math.Min(pw, 1), 0
	}

	wait := erlangTails(maxM+1, float64(s)*mu*t)
	var upper []float64
	logRatio := 0.0
	if s > 1 {
		upper = logPoissonUpperTails(maxM, float64(s-1)*mu*t)
		logRatio = math.Log(float64(s) / float64(s-1))
	}

	for n, w := range pi {
		if w == 0 {
			continue
		}
		if n < s {
			pw += w * stay
			continue
		}
		m := n - s + 1
		pwq += w * wait[m]
		if s == 1 {
			pw += w * wait[m+1]
			continue
		}
		pw += w * (wait[m] + math.Exp(float64(m)*logRatio-mu*t+upper[m]))
	}
	return math.Min(pw, 1), math.Min(pwq, 1)
}

// allFinite reports whether every value is a real number.
func allFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
