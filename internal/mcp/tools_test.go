package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"queuecalc/internal/queueing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	s := NewServer(queueing.NewEngine(queueing.Options{}), "test")

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callText(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t)
	res, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_models", "check_stability", "solve_queue"}, names)
}

func TestSolveQueue(t *testing.T) {
	cs := connect(t)
	text, isErr := callText(t, cs, "solve_queue", map[string]any{"model": "mm1", "lambda": 3, "mu": 4, "t": 1})
	require.False(t, isErr, text)

	var res queueing.Result
	require.NoError(t, json.Unmarshal([]byte(text), &res))
	assert.InDelta(t, 3.0, res.L, 1e-12)
	require.NotNil(t, res.PWGreaterThanT)
	assert.Nil(t, res.Pn)
}

func TestSolveQueue_Priority(t *testing.T) {
	cs := connect(t)
	text, isErr := callText(t, cs, "solve_queue", map[string]any{
		"model":             "priority-nonpreemptive",
		"mu":                5,
		"classArrivalRates": []float64{1, 1},
	})
	require.False(t, isErr, text)

	var res queueing.Result
	require.NoError(t, json.Unmarshal([]byte(text), &res))
	require.Len(t, res.Classes, 2)
	assert.InDelta(t, 0.3, res.Classes[0].W, 1e-12)
}

func TestSolveQueue_Unstable(t *testing.T) {
	cs := connect(t)
	text, isErr := callText(t, cs, "solve_queue", map[string]any{"model": "mms", "lambda": 30, "mu": 20, "servers": 1})
	require.True(t, isErr)

	var body struct {
		Error queueing.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	assert.Equal(t, queueing.KindStability, body.Error.Kind)
	assert.Contains(t, body.Error.Message, "λ ≥ s·μ")
}

func TestCheckStability(t *testing.T) {
	cs := connect(t)
	text, isErr := callText(t, cs, "check_stability", map[string]any{"model": "mms", "lambda": 30, "mu": 20, "servers": 1})
	require.False(t, isErr, text)

	var v queueing.Verdict
	require.NoError(t, json.Unmarshal([]byte(text), &v))
	assert.False(t, v.Stable)
	assert.InDelta(t, 1.5, v.Utilization, 1e-12)
}

func TestListModels(t *testing.T) {
	cs := connect(t)
	text, isErr := callText(t, cs, "list_models", map[string]any{})
	require.False(t, isErr)

	var models []queueing.ModelInfo
	require.NoError(t, json.Unmarshal([]byte(text), &models))
	assert.Len(t, models, 9)
}

func TestQueueArgsRequest(t *testing.T) {
	n := 4
	req := QueueArgs{Model: "mm1k", Lambda: 1, Mu: 2, Capacity: 5, N: &n}.request()
	assert.Equal(t, queueing.MM1K, req.Model)
	assert.Equal(t, 5, req.Parameters.Capacity)
	assert.Same(t, &n, req.Parameters.PointCount)
}
