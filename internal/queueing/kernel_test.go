package queueing

import (
	"math"
	"testing"
)

func TestErlangB(t *testing.T) {
	tests := []struct {
		name     string
		s        int
		a        float64
		expected float64
	}{
		{"SingleServer", 1, 1, 0.5},
		{"TwoServers", 2, 1.5, 0.9 / 2.9},
		{"NoLoad", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := erlangB(tt.s, tt.a); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("erlangB() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErlangC(t *testing.T) {
	tests := []struct {
		name     string
		s        int
		a        float64
		expected float64
	}{
		{"SingleServerIsRho", 1, 0.75, 0.75},
		{"TwoServers", 2, 1.5, 9.0 / 14.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := erlangC(tt.s, tt.a); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("erlangC() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRatioSequence_Rescales(t *testing.T) {
	r := ratioSequence(
		func(int) float64 { return 1e200 },
		func(int) float64 { return 1 },
		4,
	)
	if !allFinite(r...) {
		t.Fatalf("ratioSequence() produced non-finite values: %v", r)
	}
	for n := 2; n < len(r); n++ {
		got := r[n] / r[n-1]
		if math.Abs(got/1e200-1) > 1e-9 {
			t.Errorf("ratio r[%d]/r[%d] = %g, want 1e200", n, n-1, got)
		}
	}
}

func TestErlangTails(t *testing.T) {
	x := 2.0
	q := erlangTails(3, x)
	want := []float64{0, math.Exp(-x), math.Exp(-x) * (1 + x), math.Exp(-x) * (1 + x + x*x/2)}
	for m := range want {
		if math.Abs(q[m]-want[m]) > 1e-12 {
			t.Errorf("erlangTails()[%d] = %v, want %v", m, q[m], want[m])
		}
	}
}

func TestLogPoissonUpperTails(t *testing.T) {
	y := 2.0
	u := logPoissonUpperTails(3, y)
	if math.Abs(u[0]) > 1e-12 {
		t.Errorf("u[0] = %v, want 0", u[0])
	}
	want := math.Log(1 - math.Exp(-y))
	if math.Abs(u[1]-want) > 1e-12 {
		t.Errorf("u[1] = %v, want %v", u[1], want)
	}

	// far below the mean the complement path is used
	far := logPoissonUpperTails(2, 1e6)
	for m, v := range far {
		if math.Abs(v) > 1e-9 {
			t.Errorf("far[%d] = %v, want ~0", m, v)
		}
	}
}

func TestSojournTails_SingleServer(t *testing.T) {
	// M/M/1/2 with λ=3, μ=4: admitted arrivals see π = (4/7, 3/7, 0)
	pi := []float64{4.0 / 7, 3.0 / 7, 0}
	pw, pwq := sojournTails(pi, 1, 4, 0.5)

	e := math.Exp(-2)
	if want := e * 13 / 7; math.Abs(pw-want) > 1e-12 {
		t.Errorf("P(W>t) = %v, want %v", pw, want)
	}
	if want := e * 3 / 7; math.Abs(pwq-want) > 1e-12 {
		t.Errorf("P(Wq>t) = %v, want %v", pwq, want)
	}
}

func TestSojournTails_AtZero(t *testing.T) {
	pi := []float64{0.2, 0.3, 0.5}
	pw, pwq := sojournTails(pi, 2, 1, 0)
	if math.Abs(pw-1) > 1e-12 {
		t.Errorf("P(W>0) = %v, want 1", pw)
	}
	if math.Abs(pwq-0.5) > 1e-12 {
		t.Errorf("P(Wq>0) = %v, want 0.5", pwq)
	}
}
