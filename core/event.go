package core

import "time"

// StreamEventType classifies the progress events emitted during a streaming
// invocation. The set is closed; transports map unknown types to working
// status updates.
type StreamEventType string

const (
	// StreamEventAgentStart signals the agent began processing the query.
	StreamEventAgentStart StreamEventType = "agent_start"
	// StreamEventAgentEnd signals the agent finished its reasoning loop.
	StreamEventAgentEnd StreamEventType = "agent_end"
	// StreamEventToolStart signals a tool call is about to execute.
	StreamEventToolStart StreamEventType = "tool_start"
	// StreamEventToolEnd signals a tool call returned.
	StreamEventToolEnd StreamEventType = "tool_end"
	// StreamEventResponse carries the final answer text. Emitted exactly once
	// per successful invocation.
	StreamEventResponse StreamEventType = "response"
	// StreamEventError carries a terminal failure. Emitted exactly once per
	// failed invocation.
	StreamEventError StreamEventType = "error"
)

// StreamEvent is a single notification on an invocation stream. Data holds a
// type specific payload; every event produced by this module sets "text" to a
// human-readable description, tool events additionally set "tool".
type StreamEvent struct {
	Type      StreamEventType `json:"type"`
	Data      map[string]any  `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewStreamEvent constructs a timestamped event.
func NewStreamEvent(eventType StreamEventType, data map[string]any) StreamEvent {
	return StreamEvent{Type: eventType, Data: data, Timestamp: time.Now()}
}

// NewResponseEvent constructs the terminal success event carrying the answer.
func NewResponseEvent(text string) StreamEvent {
	return NewStreamEvent(StreamEventResponse, map[string]any{"text": text})
}

// NewErrorEvent constructs the terminal failure event.
func NewErrorEvent(err error) StreamEvent {
	return NewStreamEvent(StreamEventError, map[string]any{"text": err.Error()})
}

// Text returns the "text" payload or the empty string.
func (e StreamEvent) Text() string {
	s, _ := e.Data["text"].(string)
	return s
}

// Terminal reports whether the event ends the stream (response or error).
func (e StreamEvent) Terminal() bool {
	return e.Type == StreamEventResponse || e.Type == StreamEventError
}
