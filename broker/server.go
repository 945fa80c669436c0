package broker

import (
	"context"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hupe1980/agentbus/logging"
)

// ServerOptions configures a broker Server.
type ServerOptions struct {
	// Name reported during the MCP handshake.
	Name string
	// Version reported during the MCP handshake.
	Version string
	// WebAgentURL is the A2A endpoint of the web research agent.
	WebAgentURL string
	// RAGAgentURL is the A2A endpoint of the knowledge base agent.
	RAGAgentURL string
	// Bridge forwards tool calls to the agents. Defaults to a new bridge.
	Bridge *Bridge
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Server is the MCP tool broker. It registers web_tool and rag_tool, each
// delegating to a remote A2A agent, and serves them over streamable HTTP.
type Server struct {
	mcpServer   *mcpserver.MCPServer
	httpServer  *mcpserver.StreamableHTTPServer
	bridge      *Bridge
	webAgentURL string
	ragAgentURL string
	logger      logging.Logger
}

// NewServer creates a broker server with optional overrides.
func NewServer(optFns ...func(o *ServerOptions)) *Server {
	opts := ServerOptions{
		Name:        "agentbus-broker",
		Version:     "0.1.0",
		WebAgentURL: "http://localhost:8081",
		RAGAgentURL: "http://localhost:8082",
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Bridge == nil {
		opts.Bridge = NewBridge(func(o *BridgeOptions) {
			o.Logger = opts.Logger
		})
	}

	s := &Server{
		mcpServer:   mcpserver.NewMCPServer(opts.Name, opts.Version),
		bridge:      opts.Bridge,
		webAgentURL: opts.WebAgentURL,
		ragAgentURL: opts.RAGAgentURL,
		logger:      opts.Logger,
	}
	s.registerTools()

	return s
}

// MCPServer exposes the underlying MCP server, mainly for tests.
func (s *Server) MCPServer() *mcpserver.MCPServer { return s.mcpServer }

// registerTools registers the agent-backed MCP tools.
func (s *Server) registerTools() {
	s.mcpServer.AddTools(
		s.webTool(),
		s.ragTool(),
	)
}

func (s *Server) webTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("web_tool",
		mcplib.WithDescription("Search the web for current information and return a researched answer"),
		mcplib.WithString("query",
			mcplib.Required(),
			mcplib.Description("The question to research on the web"),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.handleWebTool,
	}
}

func (s *Server) ragTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("rag_tool",
		mcplib.WithDescription("Answer a question from the indexed knowledge base"),
		mcplib.WithString("question",
			mcplib.Required(),
			mcplib.Description("The question to answer from the knowledge base"),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.handleRAGTool,
	}
}

func (s *Server) handleWebTool(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := req.GetArguments()
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcplib.NewToolResultError("query is required"), nil
	}

	s.logger.Debug("broker.web_tool", "query", query)
	return mcplib.NewToolResultText(s.bridge.Ask(ctx, s.webAgentURL, query)), nil
}

func (s *Server) handleRAGTool(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := req.GetArguments()
	question, ok := args["question"].(string)
	if !ok || question == "" {
		return mcplib.NewToolResultError("question is required"), nil
	}

	s.logger.Debug("broker.rag_tool", "question", question)
	return mcplib.NewToolResultText(s.bridge.Ask(ctx, s.ragAgentURL, question)), nil
}

// Start serves the broker over streamable HTTP on addr. Blocks until the
// listener fails or Stop is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("broker.server.start", "addr", addr)
	s.httpServer = mcpserver.NewStreamableHTTPServer(s.mcpServer)
	return s.httpServer.Start(addr)
}

// Stop gracefully shuts down the HTTP listener.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("broker.server.stop")
	return s.httpServer.Shutdown(ctx)
}
