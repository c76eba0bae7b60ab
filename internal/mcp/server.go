// ABOUTME: MCP server initialization and configuration for mailprompt.
// ABOUTME: Exposes preset management and prompt building tools over stdio.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/2389-research/mailprompt/internal/workspace"
)

// Server wraps the MCP server around a workspace.
type Server struct {
	mcp    *gomcp.Server
	ws     *workspace.Workspace
	logger *zap.Logger
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithLogger sets the logger used for tool calls.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server over ws.
func NewServer(ws *workspace.Workspace, version string, opts ...ServerOption) (*Server, error) {
	if ws == nil {
		return nil, fmt.Errorf("workspace is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "mailprompt",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		ws:     ws,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerPresetTools()
	s.registerPromptTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.String("transport", "stdio"))
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
