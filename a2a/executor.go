package a2a

import (
	"context"
	"fmt"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"

	"github.com/hupe1980/agentbus/core"
	"github.com/hupe1980/agentbus/logging"
)

// eventWriter is the narrow queue surface the executor needs.
type eventWriter interface {
	Write(ctx context.Context, event a2a.Event) error
}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Executor adapts a core.Agent to the a2asrv.AgentExecutor interface.
//
// Event translation follows these rules:
//   - New task: emit TaskStatusUpdateEvent with TaskStateSubmitted
//   - Before agent invocation: emit TaskStatusUpdateEvent with TaskStateWorking
//   - For each hook event: emit TaskStatusUpdateEvent (working) carrying the
//     event text as an agent message
//   - On the final answer: emit a TaskArtifactUpdateEvent with the text,
//     close the artifact with LastChunk, then TaskStateCompleted (final)
//   - On invocation failure: emit TaskStateFailed (final) with the error text
//     and return nil, so the failure is reported through the task rather than
//     the transport
type Executor struct {
	agent  core.Agent
	logger logging.Logger
}

// NewExecutor creates an executor serving the given agent.
func NewExecutor(agent core.Agent, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Executor{agent: agent, logger: opts.Logger}
}

// Execute implements a2asrv.AgentExecutor.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	return e.run(ctx, reqCtx, queue)
}

// Cancel implements a2asrv.AgentExecutor. Running tasks cannot be canceled;
// every cancellation request is rejected.
func (e *Executor) Cancel(_ context.Context, reqCtx *a2asrv.RequestContext, _ eventqueue.Queue) error {
	e.logger.Info("a2a.cancel.rejected", "task_id", string(reqCtx.TaskID))
	return fmt.Errorf("task %s: %w", reqCtx.TaskID, core.ErrCancelNotSupported)
}

func (e *Executor) run(ctx context.Context, reqCtx *a2asrv.RequestContext, q eventWriter) error {
	msg := reqCtx.Message
	if msg == nil {
		return fmt.Errorf("message not provided")
	}

	query := textOf(msg)
	if query == "" {
		return fmt.Errorf("message contains no text parts")
	}

	e.logger.Debug("a2a.execute.start",
		"agent", e.agent.Name(),
		"task_id", string(reqCtx.TaskID),
		"context_id", reqCtx.ContextID,
	)

	// New tasks enter the lifecycle as submitted.
	if reqCtx.StoredTask == nil {
		if err := q.Write(ctx, a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateSubmitted, nil)); err != nil {
			return fmt.Errorf("failed to write submitted event: %w", err)
		}
	}

	if err := q.Write(ctx, a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, nil)); err != nil {
		return fmt.Errorf("failed to write working event: %w", err)
	}

	events, errCh := e.agent.InvokeStream(ctx, query)

	var answer string
	for ev := range events {
		switch ev.Type {
		case core.StreamEventResponse:
			answer = ev.Text()
		case core.StreamEventError:
			// The terminal failure is delivered on errCh below.
		default:
			statusMsg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: ev.Text()})
			update := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, statusMsg)
			update.Metadata = hookMeta(ev)
			if err := q.Write(ctx, update); err != nil {
				return fmt.Errorf("failed to write status event: %w", err)
			}
		}
	}

	if err := <-errCh; err != nil {
		e.logger.Warn("a2a.execute.failed",
			"agent", e.agent.Name(),
			"task_id", string(reqCtx.TaskID),
			"error", err.Error(),
		)
		failed := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateFailed,
			a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: err.Error()}))
		failed.Final = true
		if writeErr := q.Write(ctx, failed); writeErr != nil {
			return fmt.Errorf("failed to write failed event: %w (original: %w)", writeErr, err)
		}
		return nil
	}

	artifact := a2a.NewArtifactEvent(reqCtx, a2a.TextPart{Text: answer})
	artifact.Artifact.Name = e.agent.Name() + "_result"
	if err := q.Write(ctx, artifact); err != nil {
		return fmt.Errorf("failed to write artifact event: %w", err)
	}

	last := a2a.NewArtifactUpdateEvent(reqCtx, artifact.Artifact.ID)
	last.LastChunk = true
	if err := q.Write(ctx, last); err != nil {
		return fmt.Errorf("failed to write artifact close event: %w", err)
	}

	completed := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCompleted, nil)
	completed.Final = true
	if err := q.Write(ctx, completed); err != nil {
		return fmt.Errorf("failed to write completed event: %w", err)
	}

	e.logger.Debug("a2a.execute.done", "agent", e.agent.Name(), "task_id", string(reqCtx.TaskID))
	return nil
}

// hookMeta attaches the event classification so clients can render progress.
func hookMeta(ev core.StreamEvent) map[string]any {
	meta := map[string]any{"event_type": string(ev.Type)}
	if tool, ok := ev.Data["tool"].(string); ok {
		meta["tool"] = tool
	}
	if agent, ok := ev.Data["agent"].(string); ok {
		meta["agent"] = agent
	}
	return meta
}

// textOf concatenates the text parts of an A2A message.
func textOf(msg *a2a.Message) string {
	var text string
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok {
			text += tp.Text
		}
	}
	return text
}

// Ensure Executor implements a2asrv.AgentExecutor.
var _ a2asrv.AgentExecutor = (*Executor)(nil)
