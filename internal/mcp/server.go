// Package mcp serves the engine as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"queuecalc/internal/queueing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server holds the state for the MCP server.
type Server struct {
	engine *queueing.Engine
	server *mcp.Server
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(engine *queueing.Engine, version string) *Server {
	s := &Server{
		engine: engine,
		server: mcp.NewServer(&mcp.Implementation{Name: "queuecalc", Version: version}, nil),
	}
	s.registerTools()
	return s
}

// Run serves the JSON-RPC loop over stdio until the client disconnects or
// ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Msg("MCP server starting stdio loop")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func formatResult(data any) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}

func textResult(data any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: formatResult(data)}},
	}
}

// errorResult reports an engine failure to the model as tool output rather
// than a protocol error, so it can correct the parameters and retry.
func errorResult(err error) *mcp.CallToolResult {
	var qe *queueing.Error
	if !errors.As(err, &qe) {
		qe = &queueing.Error{Kind: queueing.KindInternal, Message: err.Error()}
	}
	res := textResult(map[string]any{"error": qe})
	res.IsError = true
	return res
}
