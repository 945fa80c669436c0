package broker

import (
	"context"
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServerWithBridge(t *testing.T, client taskClient) *Server {
	t.Helper()
	return NewServer(func(o *ServerOptions) {
		o.Bridge = newTestBridge(client, nil)
	})
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()

	tools := s.MCPServer().ListTools()
	tool, ok := tools[name]
	require.True(t, ok, "tool %q not registered", name)

	result, err := tool.Handler(context.Background(), mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	return result
}

func resultText(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcplib.TextContent)
	require.True(t, ok, "expected TextContent")
	return text.Text
}

func TestServerRegistersTools(t *testing.T) {
	s := NewServer()

	tools := s.MCPServer().ListTools()
	require.Len(t, tools, 2)
	assert.Contains(t, tools, "web_tool")
	assert.Contains(t, tools, "rag_tool")
}

func TestWebTool(t *testing.T) {
	s := newServerWithBridge(t, &fakeTaskClient{task: completedTask("Go 1.24 was released in February 2025")})

	result := callTool(t, s, "web_tool", map[string]any{"query": "latest Go release"})
	assert.False(t, result.IsError)
	assert.Equal(t, "Go 1.24 was released in February 2025", resultText(t, result))
}

func TestWebToolMissingQuery(t *testing.T) {
	s := newServerWithBridge(t, &fakeTaskClient{task: completedTask("unused")})

	result := callTool(t, s, "web_tool", nil)
	assert.True(t, result.IsError)
}

func TestRAGTool(t *testing.T) {
	s := newServerWithBridge(t, &fakeTaskClient{task: completedTask("The warranty lasts two years")})

	result := callTool(t, s, "rag_tool", map[string]any{"question": "how long is the warranty?"})
	assert.False(t, result.IsError)
	assert.Equal(t, "The warranty lasts two years", resultText(t, result))
}

func TestRAGToolMissingQuestion(t *testing.T) {
	s := newServerWithBridge(t, &fakeTaskClient{task: completedTask("unused")})

	result := callTool(t, s, "rag_tool", map[string]any{})
	assert.True(t, result.IsError)
}

func TestToolsNeverFail(t *testing.T) {
	// Agent failures come back as readable text, not protocol errors.
	task := completedTask("")
	task.Artifacts = nil
	task.Status.State = a2a.TaskStateFailed
	s := newServerWithBridge(t, &fakeTaskClient{task: task})

	result := callTool(t, s, "web_tool", map[string]any{"query": "anything"})
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Agent task failed")
}
