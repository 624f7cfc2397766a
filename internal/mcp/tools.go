package mcp

import (
	"context"

	"queuecalc/internal/queueing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// QueueArgs is the flat argument record shared by solve_queue and
// check_stability.
type QueueArgs struct {
	Model             string    `json:"model" jsonschema:"model tag: mm1, mms, mm1k, mmsk, mm1n, mmsn, mg1, priority-preemptive or priority-nonpreemptive"`
	Lambda            float64   `json:"lambda,omitempty" jsonschema:"arrival rate λ (per source for mm1n/mmsn; omit for priority models)"`
	Mu                float64   `json:"mu" jsonschema:"service rate μ of one server"`
	Servers           int       `json:"servers,omitempty" jsonschema:"number of servers s (required for mms, mmsk, mmsn)"`
	Capacity          int       `json:"capacity,omitempty" jsonschema:"system capacity K for mm1k/mmsk, at least s"`
	Population        int       `json:"population,omitempty" jsonschema:"calling population N for mm1n/mmsn"`
	ServiceVariance   *float64  `json:"serviceVariance,omitempty" jsonschema:"service time variance for mg1; defaults to 1/μ² (exponential); 0 means deterministic"`
	ClassArrivalRates []float64 `json:"classArrivalRates,omitempty" jsonschema:"per-class arrival rates for priority models, highest priority first"`
	N                 *int      `json:"n,omitempty" jsonschema:"optional: report P(exactly n in system)"`
	R                 *int      `json:"r,omitempty" jsonschema:"optional: report P(more than r in system)"`
	T                 *float64  `json:"t,omitempty" jsonschema:"optional: report P(W>t) and P(Wq>t)"`
}

func (a QueueArgs) request() queueing.Request {
	return queueing.Request{
		Model: queueing.Model(a.Model),
		Parameters: queueing.Parameters{
			Lambda:            a.Lambda,
			Mu:                a.Mu,
			Servers:           a.Servers,
			Capacity:          a.Capacity,
			Population:        a.Population,
			ServiceVariance:   a.ServiceVariance,
			ClassArrivalRates: a.ClassArrivalRates,
			PointCount:        a.N,
			TailThreshold:     a.R,
			TimeThreshold:     a.T,
		},
	}
}

// ListModelsArgs takes no input.
type ListModelsArgs struct{}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "list_models",
		Description: "List the supported queueing models with their parameters and optional queries. " +
			"Guidance: Call this first if you are unsure which model tag matches the user's system.",
	}, s.handleListModels)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "check_stability",
		Description: "Check whether a queueing system reaches steady state before solving it. Returns the utilization and, when unstable, the violated condition with the user's numbers substituted. " +
			"Finite capacity (mm1k, mmsk) and finite population (mm1n, mmsn) models are always stable.",
	}, s.handleCheckStability)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "solve_queue",
		Description: "Solve a queueing model analytically: utilization ρ, P0, L, Lq, W, Wq and model-specific extras (blocking probability PK, effective arrival rate, per-class metrics for priority queues). " +
			"Optional n, r and t add P(n), P(N>r), P(W>t) and P(Wq>t) for the Markovian models (not mg1 or priority). \n\n" +
			"STRICT GUARDRAIL: Report the returned numbers as they are. If the tool returns an error, explain the violated condition to the user instead of estimating metrics yourself.",
	}, s.handleSolve)
}

func (s *Server) handleListModels(ctx context.Context, req *mcp.CallToolRequest, args ListModelsArgs) (*mcp.CallToolResult, any, error) {
	return textResult(queueing.Models()), nil, nil
}

func (s *Server) handleCheckStability(ctx context.Context, req *mcp.CallToolRequest, args QueueArgs) (*mcp.CallToolResult, any, error) {
	verdict, err := s.engine.Check(args.request())
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(verdict), nil, nil
}

func (s *Server) handleSolve(ctx context.Context, req *mcp.CallToolRequest, args QueueArgs) (*mcp.CallToolResult, any, error) {
	res, err := s.engine.Solve(args.request())
	if err != nil {
		log.Debug().Err(err).Str("model", args.Model).Msg("solve_queue rejected")
		return errorResult(err), nil, nil
	}
	return textResult(res), nil, nil
}
