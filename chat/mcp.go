package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hupe1980/agentbus/tool"
)

// mcpCaller is the slice of the MCP client surface the toolset needs.
type mcpCaller interface {
	ListTools(ctx context.Context, req mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
	Close() error
}

// Toolset exposes the tools of a remote MCP server as local tool.Tool values.
type Toolset struct {
	caller mcpCaller
	tools  []tool.Tool
}

// NewToolset connects to the MCP server at url over streamable HTTP,
// performs the handshake and lists the available tools.
func NewToolset(ctx context.Context, url string) (*Toolset, error) {
	mcpClient, err := client.NewStreamableHttpClient(url)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp client: %w", err)
	}

	if err := mcpClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start mcp client: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "agentbus-chat",
		Version: "0.1.0",
	}
	if _, err := mcpClient.Initialize(ctx, initReq); err != nil {
		_ = mcpClient.Close()
		return nil, fmt.Errorf("failed to initialize mcp session: %w", err)
	}

	return newToolset(ctx, mcpClient)
}

// newToolset lists tools from an established caller.
func newToolset(ctx context.Context, caller mcpCaller) (*Toolset, error) {
	listResp, err := caller.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = caller.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	ts := &Toolset{caller: caller}
	for _, t := range listResp.Tools {
		ts.tools = append(ts.tools, &remoteTool{
			caller:      caller,
			name:        t.Name,
			description: t.Description,
			schema:      convertSchema(t.InputSchema),
		})
	}
	return ts, nil
}

// Tools returns the remote tools.
func (ts *Toolset) Tools() []tool.Tool { return ts.tools }

// Close terminates the MCP session.
func (ts *Toolset) Close() error { return ts.caller.Close() }

// remoteTool proxies calls to one MCP tool.
type remoteTool struct {
	caller      mcpCaller
	name        string
	description string
	schema      map[string]interface{}
}

func (r *remoteTool) Name() string { return r.name }

func (r *remoteTool) Description() string { return r.description }

func (r *remoteTool) Parameters() map[string]interface{} { return r.schema }

// Call invokes the remote tool and concatenates its text content. An IsError
// result comes back as a regular error so the conversation loop can report it
// to the model.
func (r *remoteTool) Call(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = r.name
	req.Params.Arguments = args

	resp, err := r.caller.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mcp call failed: %w", err)
	}

	var text string
	for _, content := range resp.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			text += tc.Text
		}
	}

	if resp.IsError {
		if text == "" {
			text = "unknown tool error"
		}
		return nil, fmt.Errorf("%s", text)
	}
	return text, nil
}

// convertSchema turns the MCP input schema into a plain map.
func convertSchema(schema mcp.ToolInputSchema) map[string]interface{} {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return result
}

// Ensure remoteTool implements tool.Tool.
var _ tool.Tool = (*remoteTool)(nil)
