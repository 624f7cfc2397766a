package queueing

import (
	"github.com/rs/zerolog/log"
)

// Options tunes an Engine. The zero value is usable.
type Options struct {
	// MaxStates caps K and N. Zero means DefaultMaxStates.
	MaxStates int
}

// Engine validates requests and dispatches them to the model solvers. It
// holds no mutable state and is safe for concurrent use.
type Engine struct {
	maxStates int
}

// NewEngine returns an engine configured with opts.
func NewEngine(opts Options) *Engine {
	maxStates := opts.MaxStates
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}
	return &Engine{maxStates: maxStates}
}

type strategy struct {
	// queries reports whether n, r and t are answerable; only models with a
	// state table support them.
	queries bool
	solve   func(m Model, p Parameters) (Result, error)
}

var strategies = map[Model]strategy{
	MM1:                   {queries: true, solve: solveBirthDeath},
	MMS:                   {queries: true, solve: solveBirthDeath},
	MM1K:                  {queries: true, solve: solveBirthDeath},
	MMSK:                  {queries: true, solve: solveBirthDeath},
	MM1N:                  {queries: true, solve: solveBirthDeath},
	MMSN:                  {queries: true, solve: solveBirthDeath},
	MG1:                   {solve: solveMG1},
	PriorityPreemptive:    {solve: solvePriority},
	PriorityNonPreemptive: {solve: solvePriority},
}

func solveBirthDeath(m Model, p Parameters) (Result, error) {
	c := chainFor(m, p)
	d, err := c.Solve()
	if err != nil {
		return Result{}, err
	}
	res := deriveMetrics(m, p, c, d)
	if err := answerQueries(m, p, c, d, &res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Solve validates req and computes its performance metrics. Every failure is
// an *Error; nothing is computed for a request that fails validation.
func (e *Engine) Solve(req Request) (Result, error) {
	m, err := ParseModel(string(req.Model))
	if err != nil {
		return Result{}, err
	}
	p := req.Parameters

	if err := Validate(m, p, e.maxStates); err != nil {
		return Result{}, err
	}

	st := strategies[m]
	if !st.queries && p.hasQuery() {
		return Result{}, domainErr(m, "conditional queries n, r and t need a state distribution, which this model does not provide")
	}

	res, err := st.solve(m, p)
	if err != nil {
		if KindOf(err) == KindInternal {
			log.Error().Err(err).Str("model", string(m)).Stringer("parameters", p).Msg("Solver failed")
		}
		return Result{}, err
	}

	if !res.finite() {
		err := internalErr(m, "non-finite metric produced for %s", p)
		log.Error().Err(err).Str("model", string(m)).Msg("Solver produced a non-finite metric")
		return Result{}, err
	}

	log.Debug().Str("model", string(m)).Float64("rho", res.Rho).Float64("L", res.L).Msg("Solved")
	return res, nil
}

// Check runs structural validation and reports the stability verdict. An
// unstable system is a verdict, not an error.
func (e *Engine) Check(req Request) (Verdict, error) {
	m, err := ParseModel(string(req.Model))
	if err != nil {
		return Verdict{}, err
	}
	if err := validateStructure(m, req.Parameters, e.maxStates); err != nil {
		return Verdict{}, err
	}
	return CheckStability(m, req.Parameters), nil
}

// Solve uses an engine with default options.
func Solve(req Request) (Result, error) {
	return NewEngine(Options{}).Solve(req)
}
