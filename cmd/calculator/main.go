package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/agentbus"
	"github.com/hupe1980/agentbus/agent"
	"github.com/hupe1980/agentbus/config"
	"github.com/hupe1980/agentbus/logging"
	"github.com/hupe1980/agentbus/tool"
)

// calculator serves a math agent over the A2A protocol. The agent streams
// its progress (tool calls included) as task status updates.
func main() {
	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("failed to load env files: %v", err)
	}

	cfg := config.AgentFromEnv(":8080")
	if v := cfg.MissingModelKey(); v != "" {
		log.Fatalf("%s environment variable is required", v)
	}

	logger := logging.New(&logging.Config{
		Level:  logging.LogLevelInfo,
		Format: "text",
		Output: os.Stderr,
	})

	model, err := agentbus.NewModel(cfg.ModelProvider, cfg.ModelName)
	if err != nil {
		log.Fatalf("failed to create model: %v", err)
	}
	calcAgent := agent.New("calculator", model, func(o *agent.Options) {
		o.Description = "Solves arithmetic problems step by step"
		o.Instruction = "You are a calculator assistant. Use the calculate tool for every " +
			"arithmetic operation instead of computing in your head. Show the result clearly."
		o.Tools = []tool.Tool{
			tool.NewCalculateTool(),
			tool.NewCurrentDateTool(),
		}
		o.Logger = logger
	})

	bus := agentbus.New(calcAgent, func(o *agentbus.Options) {
		o.Addr = cfg.Addr
		o.Logger = logger
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("calculator agent listening on %s", cfg.Addr)
	if err := bus.Serve(ctx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
