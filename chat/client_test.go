package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentbus/core"
	"github.com/hupe1980/agentbus/model"
	"github.com/hupe1980/agentbus/tool"
)

// scriptedModel replays responses in order and records each request.
type scriptedModel struct {
	responses []model.Response
	requests  []model.Request
	err       error
}

func (m *scriptedModel) Generate(_ context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	respCh := make(chan model.Response, 1)
	errCh := make(chan error, 1)

	m.requests = append(m.requests, req)
	if m.err != nil {
		errCh <- m.err
	} else if len(m.responses) > 0 {
		resp := m.responses[0]
		m.responses = m.responses[1:]
		respCh <- resp
	}
	close(respCh)
	close(errCh)
	return respCh, errCh
}

func (m *scriptedModel) Info() model.Info {
	return model.Info{Name: "scripted", Provider: "test"}
}

func textResponse(text string) model.Response {
	return model.Response{
		Content: core.Content{
			Role:  "assistant",
			Parts: []core.Part{core.TextPart{Text: text}},
		},
		FinishReason: "stop",
	}
}

func toolCallResponse(call core.FunctionCall) model.Response {
	return model.Response{
		Content: core.Content{
			Role:  "assistant",
			Parts: []core.Part{core.FunctionCallPart{FunctionCall: call}},
		},
		FinishReason: "tool_calls",
	}
}

func TestClientSend(t *testing.T) {
	m := &scriptedModel{responses: []model.Response{textResponse("hi there")}}
	client := NewClient(m, nil)

	answer, err := client.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", answer)
}

func TestClientHistoryAccumulates(t *testing.T) {
	m := &scriptedModel{responses: []model.Response{
		textResponse("hi there"),
		textResponse("still here"),
	}}
	client := NewClient(m, nil)

	ctx := context.Background()
	_, err := client.Send(ctx, "hello")
	require.NoError(t, err)
	_, err = client.Send(ctx, "are you there?")
	require.NoError(t, err)

	history, err := client.History()
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "hello", core.TextOf(history[0]))
	assert.Equal(t, "hi there", core.TextOf(history[1]))
	assert.Equal(t, "are you there?", core.TextOf(history[2]))
	assert.Equal(t, "still here", core.TextOf(history[3]))

	// The second turn saw the first turn's history.
	secondReq := m.requests[1]
	require.Len(t, secondReq.Contents, 3)
	assert.Equal(t, "hello", core.TextOf(secondReq.Contents[0]))
}

func TestClientToolLoop(t *testing.T) {
	m := &scriptedModel{responses: []model.Response{
		toolCallResponse(core.FunctionCall{ID: "call-1", Name: "answer_tool", Arguments: `{"q": "anything"}`}),
		textResponse("The broker says: 42"),
	}}

	answerTool := tool.NewFunctionTool("answer_tool", "answers questions",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"q": map[string]any{"type": "string"},
			},
			"required": []string{"q"},
		},
		func(_ context.Context, _ map[string]any) (any, error) {
			return "42", nil
		},
	)

	client := NewClient(m, []tool.Tool{answerTool})

	answer, err := client.Send(context.Background(), "what is the answer?")
	require.NoError(t, err)
	assert.Equal(t, "The broker says: 42", answer)

	// History holds the tool exchange: user, tool call, tool result, answer.
	history, err := client.History()
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "tool", history[2].Role)
}

func TestClientToolErrorReportedToModel(t *testing.T) {
	m := &scriptedModel{responses: []model.Response{
		toolCallResponse(core.FunctionCall{ID: "call-1", Name: "missing_tool"}),
		textResponse("I could not use that tool"),
	}}

	client := NewClient(m, nil)

	answer, err := client.Send(context.Background(), "try the tool")
	require.NoError(t, err)
	assert.Equal(t, "I could not use that tool", answer)
}

func TestClientModelFailure(t *testing.T) {
	m := &scriptedModel{err: errors.New("model unavailable")}
	client := NewClient(m, nil)

	_, err := client.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestClientMaxIterations(t *testing.T) {
	m := &scriptedModel{responses: []model.Response{
		toolCallResponse(core.FunctionCall{ID: "c1", Name: "missing"}),
		toolCallResponse(core.FunctionCall{ID: "c2", Name: "missing"}),
		toolCallResponse(core.FunctionCall{ID: "c3", Name: "missing"}),
	}}

	client := NewClient(m, nil, func(o *ClientOptions) {
		o.MaxIterations = 2
	})

	_, err := client.Send(context.Background(), "loop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations")
}
