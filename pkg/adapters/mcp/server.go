package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/registry"
	"github.com/aretw0/canopy/pkg/schema"
)

// ParseArgs are the arguments of the parse_document tool.
type ParseArgs struct {
	Schema   string `json:"schema"`
	Document string `json:"document"`
}

// ParseResult mirrors the HTTP adapter's response so both transports agree.
type ParseResult struct {
	Valid  bool           `json:"valid" jsonschema_description:"True when the document produced no errors"`
	Value  any            `json:"value" jsonschema_description:"The parsed value, partial when invalid"`
	Errors []schema.Issue `json:"errors" jsonschema_description:"Every problem found, with its path"`
}

// Server exposes a registry of schemas as MCP tools.
type Server struct {
	registry  *registry.Registry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets the logger used for rejected tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		registry:  reg,
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("canopy-mcp", canopy.Version, server.WithToolCapabilities(false)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer returns the underlying server, for in-process transports and tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// TOOL: list_schemas
	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the names of the registered schemas."),
		mcp.WithReadOnlyHintAnnotation(true),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.registry.Names())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: parse_document
	parseTool := mcp.NewTool("parse_document",
		mcp.WithDescription("Parse a JSON document with a registered schema. Returns the coerced value and every error with its path."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Name of the schema")),
		mcp.WithString("document", mcp.Required(), mcp.Description("The document, JSON encoded")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOutputSchema[ParseResult](),
	)
	s.mcpServer.AddTool(parseTool, mcp.NewStructuredToolHandler(s.handleParse))
}

func (s *Server) handleParse(ctx context.Context, request mcp.CallToolRequest, args ParseArgs) (ParseResult, error) {
	var doc any
	if err := json.Unmarshal([]byte(args.Document), &doc); err != nil {
		s.logger.Warn("MCP Parse: Invalid document", "schema", args.Schema, "error", err)
		return ParseResult{}, fmt.Errorf("invalid document: %w", err)
	}

	value, errs, err := s.registry.Parse(args.Schema, doc)
	if err != nil {
		return ParseResult{}, err
	}
	if len(errs) > 0 {
		s.logger.Debug("MCP Parse: Document rejected", "schema", args.Schema, "errors", len(errs))
	}

	return ParseResult{
		Valid:  len(errs) == 0,
		Value:  value,
		Errors: schema.Issues(errs),
	}, nil
}
