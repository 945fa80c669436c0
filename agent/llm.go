package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/agentbus/core"
	"github.com/hupe1980/agentbus/logging"
	"github.com/hupe1980/agentbus/model"
	"github.com/hupe1980/agentbus/tool"
)

// Options configures an LLMAgent.
type Options struct {
	// Description is a human-readable summary surfaced in agent cards.
	Description string
	// Instruction is the system prompt prepended to every invocation.
	Instruction string
	// Tools are the callable capabilities exposed to the model.
	Tools []tool.Tool
	// MaxIterations bounds the generate/tool-call loop.
	MaxIterations int
	// HookBufferSize sets the channel buffer for stream events.
	HookBufferSize int
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// LLMAgent is a model-backed agent with function calling. A single invocation
// alternates between model generation and tool execution until the model
// answers with plain text (or MaxIterations is exceeded).
type LLMAgent struct {
	name          string
	description   string
	instruction   string
	model         model.Model
	tools         []tool.Tool
	toolsByName   map[string]tool.Tool
	maxIterations int
	hookBuffer    int
	logger        logging.Logger
}

// New constructs an LLMAgent with optional overrides.
func New(name string, m model.Model, optFns ...func(o *Options)) *LLMAgent {
	opts := Options{
		Description:    fmt.Sprintf("Agent %s", name),
		MaxIterations:  8,
		HookBufferSize: 32,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	byName := make(map[string]tool.Tool, len(opts.Tools))
	for _, t := range opts.Tools {
		byName[t.Name()] = t
	}

	return &LLMAgent{
		name:          name,
		description:   opts.Description,
		instruction:   opts.Instruction,
		model:         m,
		tools:         opts.Tools,
		toolsByName:   byName,
		maxIterations: opts.MaxIterations,
		hookBuffer:    opts.HookBufferSize,
		logger:        opts.Logger,
	}
}

// Name returns the unique identifier for this agent.
func (a *LLMAgent) Name() string { return a.name }

// Description returns a human-readable summary of the agent's capability.
func (a *LLMAgent) Description() string { return a.description }

// Invoke runs the agent to completion and returns the final answer text.
func (a *LLMAgent) Invoke(ctx context.Context, query string) (string, error) {
	return a.run(ctx, query, nil)
}

// InvokeStream runs the agent asynchronously. Hook events are forwarded while
// the computation runs; queued hook events take precedence over the terminal
// event, and hook events still queued when the computation finishes are
// delivered after the response event.
func (a *LLMAgent) InvokeStream(ctx context.Context, query string) (<-chan core.StreamEvent, <-chan error) {
	out := make(chan core.StreamEvent, a.hookBuffer)
	errCh := make(chan error, 1)
	hooks := make(chan core.StreamEvent, a.hookBuffer)
	done := make(chan struct{})

	var (
		result string
		runErr error
	)

	go func() {
		result, runErr = a.run(ctx, query, func(ev core.StreamEvent) {
			select {
			case hooks <- ev:
			case <-ctx.Done():
			}
		})
		close(hooks)
		close(done)
	}()

	go func() {
		defer close(out)
		defer close(errCh)

		active := hooks
		for {
			// Prefer hook events that are already queued.
			if active != nil {
				select {
				case ev, ok := <-active:
					if !ok {
						active = nil
						continue
					}
					out <- ev
					continue
				default:
				}
			}

			select {
			case ev, ok := <-active:
				if !ok {
					active = nil
					continue
				}
				out <- ev
			case <-done:
				if runErr != nil {
					out <- core.NewErrorEvent(runErr)
					errCh <- runErr
				} else {
					out <- core.NewResponseEvent(result)
				}
				a.drain(active, out)
				return
			}
		}
	}()

	return out, errCh
}

// drain forwards hook events that were still queued at completion time.
func (a *LLMAgent) drain(hooks <-chan core.StreamEvent, out chan<- core.StreamEvent) {
	if hooks == nil {
		return
	}
	for {
		select {
		case ev, ok := <-hooks:
			if !ok {
				return
			}
			out <- ev
		default:
			return
		}
	}
}

// run drives the generate/tool-call loop. emit is nil for synchronous
// invocations.
func (a *LLMAgent) run(ctx context.Context, query string, emit func(core.StreamEvent)) (string, error) {
	a.logger.Debug("agent.invoke.start", "agent", a.name)
	if emit != nil {
		emit(core.NewStreamEvent(core.StreamEventAgentStart, map[string]any{
			"text":  "Agent processing started",
			"agent": a.name,
		}))
	}

	var contents []core.Content
	if a.instruction != "" {
		contents = append(contents, core.Content{Role: "system", Parts: []core.Part{core.TextPart{Text: a.instruction}}})
	}
	contents = append(contents, core.NewUserContent(query))

	for i := 0; i < a.maxIterations; i++ {
		resp, err := a.generate(ctx, contents)
		if err != nil {
			a.logger.Error("agent.invoke.error", "agent", a.name, "error", err.Error())
			return "", core.NewInvocationError(a.name, err)
		}

		calls := functionCalls(resp.Content)
		if len(calls) == 0 {
			text := core.TextOf(resp.Content)
			if emit != nil {
				emit(core.NewStreamEvent(core.StreamEventAgentEnd, map[string]any{
					"text":  "Agent processing completed",
					"agent": a.name,
				}))
			}
			a.logger.Debug("agent.invoke.done", "agent", a.name, "iterations", i+1)
			return text, nil
		}

		contents = append(contents, resp.Content)

		toolParts := make([]core.Part, 0, len(calls))
		for _, call := range calls {
			if emit != nil {
				emit(core.NewStreamEvent(core.StreamEventToolStart, map[string]any{
					"text": fmt.Sprintf("Calling tool %q", call.Name),
					"tool": call.Name,
				}))
			}
			toolParts = append(toolParts, a.execute(ctx, call))
			if emit != nil {
				emit(core.NewStreamEvent(core.StreamEventToolEnd, map[string]any{
					"text": fmt.Sprintf("Tool %q finished", call.Name),
					"tool": call.Name,
				}))
			}
		}
		contents = append(contents, core.Content{Role: "tool", Parts: toolParts})
	}

	return "", core.NewInvocationError(a.name, fmt.Errorf("max iterations (%d) exceeded", a.maxIterations))
}

// generate drains a single model turn and returns the final response.
func (a *LLMAgent) generate(ctx context.Context, contents []core.Content) (model.Response, error) {
	respCh, errCh := a.model.Generate(ctx, model.Request{
		Instructions: a.instruction,
		Contents:     contents,
		Tools:        a.toolDefinitions(),
	})

	var (
		final    *model.Response
		firstErr error
	)
	for respCh != nil || errCh != nil {
		select {
		case r, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			if !r.Partial {
				rr := r
				final = &rr
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return model.Response{}, firstErr
	}
	if final == nil {
		return model.Response{}, fmt.Errorf("model returned no final response")
	}
	return *final, nil
}

// execute runs one tool call and wraps the outcome as a function response
// part. Tool failures are reported back to the model instead of aborting the
// invocation.
func (a *LLMAgent) execute(ctx context.Context, call core.FunctionCall) core.Part {
	response := core.FunctionResponse{ID: call.ID, Name: call.Name}

	t, ok := a.toolsByName[call.Name]
	if !ok {
		response.Error = fmt.Sprintf("unknown tool %q", call.Name)
		response.Response = response.Error
		return core.FunctionResponsePart{FunctionResponse: response}
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			response.Error = fmt.Sprintf("invalid tool arguments: %v", err)
			response.Response = response.Error
			return core.FunctionResponsePart{FunctionResponse: response}
		}
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		a.logger.Warn("agent.tool.error", "agent", a.name, "tool", call.Name, "error", err.Error())
		response.Error = err.Error()
		response.Response = err.Error()
		return core.FunctionResponsePart{FunctionResponse: response}
	}

	response.Response = fmt.Sprintf("%v", result)
	return core.FunctionResponsePart{FunctionResponse: response}
}

// toolDefinitions converts registered tools into model tool definitions.
func (a *LLMAgent) toolDefinitions() []model.ToolDefinition {
	if len(a.tools) == 0 {
		return nil
	}
	defs := make([]model.ToolDefinition, len(a.tools))
	for i, t := range a.tools {
		defs[i] = model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		}
	}
	return defs
}

// functionCalls extracts the function call parts of a model response.
func functionCalls(c core.Content) []core.FunctionCall {
	var calls []core.FunctionCall
	for _, p := range c.Parts {
		if fc, ok := p.(core.FunctionCallPart); ok {
			calls = append(calls, fc.FunctionCall)
		}
	}
	return calls
}

// Ensure LLMAgent implements core.Agent.
var _ core.Agent = (*LLMAgent)(nil)
