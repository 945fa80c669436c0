package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStreamEvent(t *testing.T) {
	before := time.Now()
	ev := NewStreamEvent(StreamEventToolStart, map[string]any{"text": "Calling tool", "tool": "calculate"})

	assert.Equal(t, StreamEventToolStart, ev.Type)
	assert.Equal(t, "Calling tool", ev.Text())
	assert.Equal(t, "calculate", ev.Data["tool"])
	assert.False(t, ev.Timestamp.Before(before))
	assert.False(t, ev.Terminal())
}

func TestNewResponseEvent(t *testing.T) {
	ev := NewResponseEvent("42")

	assert.Equal(t, StreamEventResponse, ev.Type)
	assert.Equal(t, "42", ev.Text())
	assert.True(t, ev.Terminal())
}

func TestNewErrorEvent(t *testing.T) {
	ev := NewErrorEvent(errors.New("model unavailable"))

	assert.Equal(t, StreamEventError, ev.Type)
	assert.Equal(t, "model unavailable", ev.Text())
	assert.True(t, ev.Terminal())
}

func TestStreamEventTextMissing(t *testing.T) {
	ev := NewStreamEvent(StreamEventAgentStart, nil)
	assert.Empty(t, ev.Text())
}

func TestInvocationError(t *testing.T) {
	cause := errors.New("boom")
	err := NewInvocationError("calculator", cause)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "calculator")
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, errors.Is(err, cause))

	var invErr *InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, "calculator", invErr.Agent)
}

func TestContentHelpers(t *testing.T) {
	c := NewUserContent("hello")
	assert.Equal(t, "user", c.Role)
	assert.Equal(t, "hello", TextOf(c))

	mixed := Content{Role: "assistant", Parts: []Part{
		TextPart{Text: "a"},
		FunctionCallPart{FunctionCall: FunctionCall{Name: "calculate"}},
		TextPart{Text: "b"},
	}}
	assert.Equal(t, "ab", TextOf(mixed))
}
