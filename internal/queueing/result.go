package queueing

import "strconv"

// ClassResult holds the per-class metrics of a priority model.
type ClassResult struct {
	ClassIndex int     `json:"classIndex" yaml:"classIndex"`
	Lambda     float64 `json:"lambda" yaml:"lambda"`
	L          float64 `json:"L" yaml:"L"`
	Lq         float64 `json:"Lq" yaml:"Lq"`
	W          float64 `json:"W" yaml:"W"`
	Wq         float64 `json:"Wq" yaml:"Wq"`
	Sigma      float64 `json:"sigma" yaml:"sigma"`
}

// Result is the flat record returned for a solved request. Optional metrics
// are pointers: nil means "not applicable or not requested", never zero.
type Result struct {
	Model Model `json:"model" yaml:"model"`

	Rho float64 `json:"rho" yaml:"rho"`
	P0  float64 `json:"P0" yaml:"P0"`
	L   float64 `json:"L" yaml:"L"`
	Lq  float64 `json:"Lq" yaml:"Lq"`
	W   float64 `json:"W" yaml:"W"`
	Wq  float64 `json:"Wq" yaml:"Wq"`

	PK              *float64 `json:"PK,omitempty" yaml:"PK,omitempty"`
	LambdaEffective *float64 `json:"lambdaEffective,omitempty" yaml:"lambdaEffective,omitempty"`
	NumOperational  *float64 `json:"numOperational,omitempty" yaml:"numOperational,omitempty"`
	PWqEqualsZero   *float64 `json:"PWqEqualsZero,omitempty" yaml:"PWqEqualsZero,omitempty"`

	Pn              *float64 `json:"Pn,omitempty" yaml:"Pn,omitempty"`
	PnGreaterThanR  *float64 `json:"PnGreaterThanR,omitempty" yaml:"PnGreaterThanR,omitempty"`
	PWGreaterThanT  *float64 `json:"PWGreaterThanT,omitempty" yaml:"PWGreaterThanT,omitempty"`
	PWqGreaterThanT *float64 `json:"PWqGreaterThanT,omitempty" yaml:"PWqGreaterThanT,omitempty"`

	// Query inputs echoed back for display.
	N *int     `json:"n,omitempty" yaml:"n,omitempty"`
	R *int     `json:"r,omitempty" yaml:"r,omitempty"`
	T *float64 `json:"t,omitempty" yaml:"t,omitempty"`

	LambdaTotal *float64      `json:"lambdaTotal,omitempty" yaml:"lambdaTotal,omitempty"`
	Capacity    *float64      `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Classes     []ClassResult `json:"classes,omitempty" yaml:"classes,omitempty"`
}

// Metrics flattens the scalar metrics into a name → value map. Per-class
// values are keyed "class<k>.<metric>".
func (r Result) Metrics() map[string]float64 {
	out := map[string]float64{
		"rho": r.Rho,
		"P0":  r.P0,
		"L":   r.L,
		"Lq":  r.Lq,
		"W":   r.W,
		"Wq":  r.Wq,
	}
	optional := map[string]*float64{
		"PK":              r.PK,
		"lambdaEffective": r.LambdaEffective,
		"numOperational":  r.NumOperational,
		"PWqEqualsZero":   r.PWqEqualsZero,
		"Pn":              r.Pn,
		"PnGreaterThanR":  r.PnGreaterThanR,
		"PWGreaterThanT":  r.PWGreaterThanT,
		"PWqGreaterThanT": r.PWqGreaterThanT,
		"lambdaTotal":     r.LambdaTotal,
		"capacity":        r.Capacity,
	}
	for k, v := range optional {
		if v != nil {
			out[k] = *v
		}
	}
	for _, c := range r.Classes {
		prefix := "class" + strconv.Itoa(c.ClassIndex) + "."
		out[prefix+"lambda"] = c.Lambda
		out[prefix+"L"] = c.L
		out[prefix+"Lq"] = c.Lq
		out[prefix+"W"] = c.W
		out[prefix+"Wq"] = c.Wq
		out[prefix+"sigma"] = c.Sigma
	}
	return out
}

func (r Result) finite() bool {
	for _, v := range r.Metrics() {
		if !allFinite(v) {
			return false
		}
	}
	return true
}

func ptr[T any](v T) *T { return &v }
