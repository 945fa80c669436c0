package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/agentbus/core"
	"github.com/hupe1980/agentbus/logging"
	"github.com/hupe1980/agentbus/model"
	"github.com/hupe1980/agentbus/session"
	"github.com/hupe1980/agentbus/tool"
)

// ClientOptions configures a chat Client.
type ClientOptions struct {
	// Instruction is the system prompt prepended to every turn.
	Instruction string
	// SessionID keys the conversation history.
	SessionID string
	// Store persists history across turns. Defaults to an in-memory store.
	Store session.Store
	// MaxIterations bounds the generate/tool-call loop per turn.
	MaxIterations int
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Client drives a multi-turn conversation: each Send appends the user turn to
// the session, runs the model with the full history and the available tools,
// executes tool calls, and persists every turn back to the store.
type Client struct {
	model         model.Model
	tools         []tool.Tool
	toolsByName   map[string]tool.Tool
	instruction   string
	sessionID     string
	store         session.Store
	maxIterations int
	logger        logging.Logger
}

// NewClient creates a chat client with optional overrides.
func NewClient(m model.Model, tools []tool.Tool, optFns ...func(o *ClientOptions)) *Client {
	opts := ClientOptions{
		SessionID:     "default",
		Store:         session.NewInMemoryStore(),
		MaxIterations: 8,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	byName := make(map[string]tool.Tool, len(tools))
	for _, t := range tools {
		byName[t.Name()] = t
	}

	return &Client{
		model:         m,
		tools:         tools,
		toolsByName:   byName,
		instruction:   opts.Instruction,
		sessionID:     opts.SessionID,
		store:         opts.Store,
		maxIterations: opts.MaxIterations,
		logger:        opts.Logger,
	}
}

// Send processes one user turn and returns the assistant's answer.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	if err := c.store.Append(c.sessionID, core.NewUserContent(text)); err != nil {
		return "", fmt.Errorf("failed to store user turn: %w", err)
	}

	for i := 0; i < c.maxIterations; i++ {
		sess, err := c.store.Get(c.sessionID)
		if err != nil {
			return "", fmt.Errorf("failed to load session: %w", err)
		}

		contents := sess.Contents
		if c.instruction != "" {
			contents = append([]core.Content{{
				Role:  "system",
				Parts: []core.Part{core.TextPart{Text: c.instruction}},
			}}, contents...)
		}

		resp, err := c.generate(ctx, contents)
		if err != nil {
			return "", err
		}

		if err := c.store.Append(c.sessionID, resp.Content); err != nil {
			return "", fmt.Errorf("failed to store assistant turn: %w", err)
		}

		calls := functionCalls(resp.Content)
		if len(calls) == 0 {
			return core.TextOf(resp.Content), nil
		}

		toolParts := make([]core.Part, 0, len(calls))
		for _, call := range calls {
			toolParts = append(toolParts, c.execute(ctx, call))
		}
		if err := c.store.Append(c.sessionID, core.Content{Role: "tool", Parts: toolParts}); err != nil {
			return "", fmt.Errorf("failed to store tool turn: %w", err)
		}
	}

	return "", fmt.Errorf("max iterations (%d) exceeded", c.maxIterations)
}

// History returns the conversation so far.
func (c *Client) History() ([]core.Content, error) {
	sess, err := c.store.Get(c.sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Contents, nil
}

// generate drains one model turn and returns the final response.
func (c *Client) generate(ctx context.Context, contents []core.Content) (model.Response, error) {
	respCh, errCh := c.model.Generate(ctx, model.Request{
		Instructions: c.instruction,
		Contents:     contents,
		Tools:        c.toolDefinitions(),
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

// execute runs one tool call; failures come back as text for the model.
func (c *Client) execute(ctx context.Context, call core.FunctionCall) core.Part {
	response := core.FunctionResponse{ID: call.ID, Name: call.Name}

	t, ok := c.toolsByName[call.Name]
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
		c.logger.Warn("chat.tool.error", "tool", call.Name, "error", err.Error())
		response.Error = err.Error()
		response.Response = err.Error()
		return core.FunctionResponsePart{FunctionResponse: response}
	}

	response.Response = fmt.Sprintf("%v", result)
	return core.FunctionResponsePart{FunctionResponse: response}
}

func (c *Client) toolDefinitions() []model.ToolDefinition {
	if len(c.tools) == 0 {
		return nil
	}
	defs := make([]model.ToolDefinition, len(c.tools))
	for i, t := range c.tools {
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
