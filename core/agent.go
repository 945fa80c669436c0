package core

import (
	"context"
	"errors"
	"fmt"
)

// ErrCancelNotSupported is returned for every attempt to cancel a running
// task. Tasks are short-lived and run to completion or failure; cancellation
// is rejected without mutating any task state.
var ErrCancelNotSupported = errors.New("cancel not supported")

// Agent is a unit of autonomous work. A single query in, a single textual
// answer out — either synchronously (Invoke) or as an event stream
// (InvokeStream).
type Agent interface {
	// Name returns the unique identifier for this agent.
	Name() string

	// Description returns a human-readable summary of the agent's capability.
	Description() string

	// Invoke runs the agent to completion and returns the final answer text.
	Invoke(ctx context.Context, query string) (string, error)

	// InvokeStream runs the agent asynchronously, returning a channel of
	// progress events and a channel for a terminal error.
	//
	// Contract:
	//   - Hook events (agent_start, tool_start, tool_end, agent_end) are
	//     forwarded in emission order while the computation runs. A hook
	//     event that is already queued is always delivered before the
	//     terminal event.
	//   - On success exactly one response event carrying the answer text is
	//     emitted; hook events still queued at that instant follow it.
	//   - On failure exactly one error event is emitted and the same error
	//     is delivered on the error channel.
	//   - Both channels are closed when the invocation is finished.
	InvokeStream(ctx context.Context, query string) (<-chan StreamEvent, <-chan error)
}

// InvocationError wraps a failure produced while an agent computed its
// answer. It preserves the originating agent name for logging and the
// underlying cause for errors.Is / errors.As inspection.
type InvocationError struct {
	Agent string // Name of the agent that failed
	Err   error  // Underlying cause
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	return fmt.Sprintf("agent %q invocation failed: %v", e.Agent, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InvocationError) Unwrap() error { return e.Err }

// NewInvocationError wraps err as an InvocationError for the named agent.
func NewInvocationError(agent string, err error) *InvocationError {
	return &InvocationError{Agent: agent, Err: err}
}
