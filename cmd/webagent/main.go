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

// webagent serves a web research agent over the A2A protocol. It answers
// questions by searching the web via Tavily.
func main() {
	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("failed to load env files: %v", err)
	}

	cfg := config.AgentFromEnv(":8081")
	if v := cfg.MissingModelKey(); v != "" {
		log.Fatalf("%s environment variable is required", v)
	}
	if cfg.TavilyAPIKey == "" {
		log.Fatal("TAVILY_API_KEY environment variable is required")
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
	webAgent := agent.New("web", model, func(o *agent.Options) {
		o.Description = "Researches questions using live web search"
		o.Instruction = "You are a research assistant. Use the web_search tool to find current " +
			"information, then answer concisely and cite the sources you used."
		o.Tools = []tool.Tool{
			tool.NewWebSearchTool(func(wo *tool.WebSearchOptions) {
				wo.APIKey = cfg.TavilyAPIKey
			}),
		}
		o.Logger = logger
	})

	bus := agentbus.New(webAgent, func(o *agentbus.Options) {
		o.Addr = cfg.Addr
		o.Logger = logger
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("web agent listening on %s", cfg.Addr)
	if err := bus.Serve(ctx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
