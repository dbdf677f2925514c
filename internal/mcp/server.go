package mcp

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kokistudios/thinkstate/internal/thinking"
)

// Guide is the Cognitive State Model documentation shown to calling agents.
//
//go:embed guide.md
var Guide string

// Options names the server and its single tool.
type Options struct {
	Name     string
	Version  string
	ToolName string
}

// Server wraps the MCP server around a thinking handler.
type Server struct {
	handler *thinking.Handler
	server  *mcp.Server
	tool    string
}

// NewServer creates a new thinkstate MCP server.
func NewServer(h *thinking.Handler, opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "thinkstate"
	}
	if opts.ToolName == "" {
		opts.ToolName = "thinkstate"
	}
	s := &Server{handler: h, tool: opts.ToolName}

	impl := &mcp.Implementation{
		Name:    opts.Name,
		Version: opts.Version,
	}

	s.server = mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: "Call " + opts.ToolName + " once per reasoning step. Label steps with branchId \"state: NAME\".",
	})
	s.registerTools()

	return s
}

// Run starts the MCP server on stdio.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds the thought tool. It is registered with the raw handler
// form so argument validation, and its error shape, stay under our control.
func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        s.tool,
		Title:       "Structured thinking",
		Description: Guide,
		InputSchema: inputSchema(),
	}, s.handleThought)
}

func (s *Server) handleThought(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw json.RawMessage
	if req != nil && req.Params != nil {
		raw = req.Params.Arguments
	}

	res := s.handler.HandleJSON(ctx, raw)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: res.Text()}},
		IsError: res.IsError,
	}, nil
}

func inputSchema() *jsonschema.Schema {
	one := 1.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"thought": {
				Type:        "string",
				Description: "Your current thinking step",
			},
			"nextThoughtNeeded": {
				Type:        "boolean",
				Description: "Whether another thought step is needed",
			},
			"thoughtNumber": {
				Type:        "integer",
				Minimum:     &one,
				Description: "Current thought number",
			},
			"totalThoughts": {
				Type:        "integer",
				Minimum:     &one,
				Description: "Estimated total thoughts needed",
			},
			"isRevision": {
				Type:        "boolean",
				Description: "Whether this revises previous thinking",
			},
			"revisesThought": {
				Type:        "integer",
				Minimum:     &one,
				Description: "Which thought is being reconsidered",
			},
			"branchFromThought": {
				Type:        "integer",
				Minimum:     &one,
				Description: "Branching point thought number",
			},
			"branchId": {
				Type:        "string",
				Description: "Branch identifier, by convention \"state: NAME\" or \"state: NAME(component)\"",
			},
		},
		Required: []string{"thought", "nextThoughtNeeded", "thoughtNumber", "totalThoughts"},
	}
}
