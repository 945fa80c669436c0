package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hupe1980/agentbus/broker"
	"github.com/hupe1980/agentbus/config"
	"github.com/hupe1980/agentbus/logging"
)

// broker serves the MCP tool broker: web_tool and rag_tool, each delegating
// to a remote A2A agent over streamable HTTP.
func main() {
	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("failed to load env files: %v", err)
	}

	cfg := config.BrokerFromEnv()

	logger := logging.New(&logging.Config{
		Level:  logging.LogLevelInfo,
		Format: "text",
		Output: os.Stderr,
	})

	server := broker.NewServer(func(o *broker.ServerOptions) {
		o.WebAgentURL = cfg.WebAgentURL
		o.RAGAgentURL = cfg.RAGAgentURL
		o.Logger = logger
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("broker listening on %s (web agent %s, rag agent %s)", cfg.Addr, cfg.WebAgentURL, cfg.RAGAgentURL)
	if err := server.Start(cfg.Addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
