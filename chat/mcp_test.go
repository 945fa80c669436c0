package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMCPCaller serves a canned tool list and records calls.
type fakeMCPCaller struct {
	tools    []mcp.Tool
	result   *mcp.CallToolResult
	callErr  error
	lastCall mcp.CallToolRequest
	closed   bool
}

func (f *fakeMCPCaller) ListTools(_ context.Context, _ mcp.ListToolsRequest) (*mcp.ListToolsResult, error) {
	return &mcp.ListToolsResult{Tools: f.tools}, nil
}

func (f *fakeMCPCaller) CallTool(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f.lastCall = req
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.result, nil
}

func (f *fakeMCPCaller) Close() error {
	f.closed = true
	return nil
}

func webToolSpec() mcp.Tool {
	return mcp.NewTool("web_tool",
		mcp.WithDescription("Search the web"),
		mcp.WithString("query", mcp.Required()),
	)
}

func TestToolsetListsRemoteTools(t *testing.T) {
	caller := &fakeMCPCaller{tools: []mcp.Tool{webToolSpec()}}

	ts, err := newToolset(context.Background(), caller)
	require.NoError(t, err)

	tools := ts.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, "web_tool", tools[0].Name())
	assert.Equal(t, "Search the web", tools[0].Description())

	schema := tools[0].Parameters()
	require.NotNil(t, schema)
	assert.Equal(t, "object", schema["type"])
}

func TestRemoteToolCall(t *testing.T) {
	caller := &fakeMCPCaller{
		tools: []mcp.Tool{webToolSpec()},
		result: &mcp.CallToolResult{
			Content: []mcp.Content{mcp.TextContent{Type: "text", Text: "the answer"}},
		},
	}

	ts, err := newToolset(context.Background(), caller)
	require.NoError(t, err)

	result, err := ts.Tools()[0].Call(context.Background(), map[string]any{"query": "anything"})
	require.NoError(t, err)
	assert.Equal(t, "the answer", result)
	assert.Equal(t, "web_tool", caller.lastCall.Params.Name)
}

func TestRemoteToolErrorResult(t *testing.T) {
	caller := &fakeMCPCaller{
		tools: []mcp.Tool{webToolSpec()},
		result: &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{mcp.TextContent{Type: "text", Text: "query is required"}},
		},
	}

	ts, err := newToolset(context.Background(), caller)
	require.NoError(t, err)

	_, err = ts.Tools()[0].Call(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestRemoteToolTransportError(t *testing.T) {
	caller := &fakeMCPCaller{
		tools:   []mcp.Tool{webToolSpec()},
		callErr: errors.New("connection reset"),
	}

	ts, err := newToolset(context.Background(), caller)
	require.NoError(t, err)

	_, err = ts.Tools()[0].Call(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mcp call failed")
}

func TestToolsetClose(t *testing.T) {
	caller := &fakeMCPCaller{tools: []mcp.Tool{webToolSpec()}}

	ts, err := newToolset(context.Background(), caller)
	require.NoError(t, err)
	require.NoError(t, ts.Close())
	assert.True(t, caller.closed)
}
