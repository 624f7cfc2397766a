package queueing

import "math"

// answerQueries fills the optional conditional probabilities. Absent inputs
// leave their fields nil.
func answerQueries(m Model, p Parameters, c Chain, d *Distribution, res *Result) error {
	if p.PointCount != nil {
		n := *p.PointCount
		pn, err := d.P(n)
		if err != nil {
			return err
		}
		res.Pn = ptr(pn)
		res.N = ptr(n)
	}

	if p.TailThreshold != nil {
		r := *p.TailThreshold
		res.PnGreaterThanR = ptr(d.Tail(r))
		res.R = ptr(r)
	}

	if p.TimeThreshold != nil {
		t := *p.TimeThreshold
		s := p.servers(m)
		var pw, pwq float64
		if d.Bounded() {
			pw, pwq = sojournTails(admitted(c, d), s, p.Mu, t)
		} else {
			pw, pwq = markovianTails(s, p.arrivalRate(m), p.Mu, t)
		}
		res.PWGreaterThanT = ptr(pw)
		res.PWqGreaterThanT = ptr(pwq)
		res.T = ptr(t)
	}
	return nil
}

// markovianTails are the closed-form delay tails of the stable M/M/s queue.
//
//	s = 1: P(W>t) = e^{−μ(1−ρ)t},  P(Wq>t) = ρ·e^{−μ(1−ρ)t}
//	s > 1: P(Wq>t) = C·e^{−(sμ−λ)t}
//	       P(W>t)  = e^{−μt}·[1 + C·(1 − e^{−μt(s−1−λ/μ)}) / (s−1−λ/μ)]
//
// where C is the Erlang-C probability of waiting.
func markovianTails(s int, lambda, mu, t float64) (pw, pwq float64) {
	a := lambda / mu
	if s == 1 {
		decay := math.Exp(-mu * (1 - a) * t)
		return decay, a * decay
	}

	c := erlangC(s, a)
	pwq = c * math.Exp(-(float64(s)*mu-lambda)*t)

	stay := math.Exp(-mu * t)
	gap := float64(s) - 1 - a
	if math.Abs(gap) < 1e-9 {
		return stay * (1 + c*mu*t), pwq
	}
	// e^{−μt}·e^{μt·(a+1−s)} is written as e^{−μt(s−a)} so neither factor overflows
	return stay + c*(stay-math.Exp(-mu*t*(float64(s)-a)))/gap, pwq
}
