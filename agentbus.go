// Package agentbus provides a high-level façade for serving agents over the
// A2A protocol. Most applications interact with this package by:
//  1. Building an agent (agent.New with a model and tools)
//  2. Creating an AgentBus via New() (optionally overriding the task store,
//     listen address or logger)
//  3. Calling Serve() to expose the agent as an A2A service
//
// The façade delegates protocol handling to the a2a package while keeping
// setup ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable task store and a
// structured logger.
package agentbus

import (
	"context"

	a2asdk "github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"

	"github.com/hupe1980/agentbus/a2a"
	"github.com/hupe1980/agentbus/core"
	"github.com/hupe1980/agentbus/logging"
)

// Options configures the AgentBus instance.
type Options struct {
	// Addr is the listen address for the A2A endpoint.
	Addr string
	// Card overrides the generated agent card.
	Card *a2asdk.AgentCard
	// TaskStore persists task state (defaults to an in-memory store).
	TaskStore a2asrv.TaskStore
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// AgentBus serves a single agent over the A2A protocol.
type AgentBus struct {
	agent  core.Agent
	server *a2a.Server
}

// New creates an AgentBus for the given agent with optional overrides. Any
// unset service is initialized with an in-memory implementation.
func New(agent core.Agent, optFns ...func(o *Options)) *AgentBus {
	opts := Options{
		Addr:      ":8080",
		TaskStore: a2a.NewInMemoryTaskStore(),
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	server := a2a.NewServer(agent, func(o *a2a.ServerOptions) {
		o.Addr = opts.Addr
		o.Card = opts.Card
		o.TaskStore = opts.TaskStore
		o.Logger = opts.Logger
	})

	return &AgentBus{agent: agent, server: server}
}

// Agent returns the served agent.
func (b *AgentBus) Agent() core.Agent { return b.agent }

// Card returns the agent card served at the well-known path.
func (b *AgentBus) Card() *a2asdk.AgentCard { return b.server.Card() }

// Serve runs the A2A endpoint until ctx is canceled.
func (b *AgentBus) Serve(ctx context.Context) error {
	return b.server.Start(ctx)
}

// Shutdown gracefully stops the endpoint.
func (b *AgentBus) Shutdown(ctx context.Context) error {
	return b.server.Shutdown(ctx)
}
