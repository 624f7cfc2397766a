package queueing

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Outcome is the per-request slot of a batch. Exactly one of Result and
// Error is set.
type Outcome struct {
	Index  int     `json:"index" yaml:"index"`
	Model  Model   `json:"model" yaml:"model"`
	Result *Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  *Error  `json:"error,omitempty" yaml:"error,omitempty"`
}

// SolveBatch solves independent requests on at most workers goroutines
// (unbounded when workers ≤ 0). Outcomes keep the input order. A failed
// request only fails its own slot; the returned error is non-nil only when
// ctx is cancelled.
func (e *Engine) SolveBatch(ctx context.Context, reqs []Request, workers int) ([]Outcome, error) {
	out := make([]Outcome, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slot := Outcome{Index: i, Model: req.Model}
			res, err := e.Solve(req)
			if err != nil {
				slot.Error = asError(req.Model, err)
			} else {
				slot.Result = &res
			}
			out[i] = slot
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func asError(m Model, err error) *Error {
	var qe *Error
	if errors.As(err, &qe) {
		return qe
	}
	return internalErr(m, "%v", err)
}
