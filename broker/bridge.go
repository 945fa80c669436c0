package broker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"
	"github.com/a2aproject/a2a-go/a2aclient/agentcard"

	"github.com/hupe1980/agentbus/logging"
)

// taskClient is the slice of the A2A client surface the bridge needs.
type taskClient interface {
	SendMessage(ctx context.Context, params *a2a.MessageSendParams) (a2a.SendMessageResult, error)
	GetTask(ctx context.Context, params *a2a.TaskQueryParams) (*a2a.Task, error)
	Destroy() error
}

// connectFunc resolves an agent URL into a ready client.
type connectFunc func(ctx context.Context, url string) (taskClient, error)

// BridgeOptions configures a Bridge.
type BridgeOptions struct {
	// HTTPClient used for card resolution and transport.
	HTTPClient *http.Client
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Bridge forwards questions to A2A agents and renders the outcome as plain
// text. It resolves the agent card per call, so agents may restart or move
// between invocations.
type Bridge struct {
	connect connectFunc
	logger  logging.Logger
}

// NewBridge creates a bridge with optional overrides.
func NewBridge(optFns ...func(o *BridgeOptions)) *Bridge {
	opts := BridgeOptions{
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	resolver := agentcard.NewResolver(opts.HTTPClient)

	return &Bridge{
		logger: opts.Logger,
		connect: func(ctx context.Context, url string) (taskClient, error) {
			card, err := resolver.Resolve(ctx, url)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve agent card: %w", err)
			}
			client, err := a2aclient.NewFromCard(ctx, card)
			if err != nil {
				return nil, fmt.Errorf("failed to create client: %w", err)
			}
			return client, nil
		},
	}
}

// Ask sends text to the agent at url and returns the answer. Every failure
// mode is rendered as a descriptive string; Ask never returns an error.
func (b *Bridge) Ask(ctx context.Context, url, text string) string {
	client, err := b.connect(ctx, url)
	if err != nil {
		b.logger.Warn("broker.connect.failed", "url", url, "error", err.Error())
		return fmt.Sprintf("Failed to connect to agent at %s: %v", url, err)
	}
	defer func() { _ = client.Destroy() }()

	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.TextPart{Text: text})
	result, err := client.SendMessage(ctx, &a2a.MessageSendParams{Message: msg})
	if err != nil {
		b.logger.Warn("broker.send.failed", "url", url, "error", err.Error())
		return fmt.Sprintf("Failed to send message to agent: %v", err)
	}

	taskID := result.TaskInfo().TaskID
	if taskID == "" {
		return "No task was created by the agent"
	}

	task, err := client.GetTask(ctx, &a2a.TaskQueryParams{ID: taskID})
	if err != nil {
		return fmt.Sprintf("Failed to retrieve task result: %v", err)
	}

	return renderTask(task)
}

// renderTask turns a finished task into the answer text or a failure
// description.
func renderTask(task *a2a.Task) string {
	if task.Status.State == a2a.TaskStateFailed {
		if reason := messageText(task.Status.Message); reason != "" {
			return fmt.Sprintf("Agent task failed: %s", reason)
		}
		return "Agent task failed"
	}

	for _, artifact := range task.Artifacts {
		for _, part := range artifact.Parts {
			if tp, ok := part.(a2a.TextPart); ok && tp.Text != "" {
				return tp.Text
			}
		}
	}

	return "No text content received from agent"
}

func messageText(msg *a2a.Message) string {
	if msg == nil {
		return ""
	}
	var text string
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok {
			text += tp.Text
		}
	}
	return text
}
