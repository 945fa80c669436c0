package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentbus"
	"github.com/hupe1980/agentbus/chat"
	"github.com/hupe1980/agentbus/config"
)

// chat is an interactive client: it connects to the tool broker over MCP and
// lets the model delegate questions to the web and rag agents.
func main() {
	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("failed to load env files: %v", err)
	}

	cfg := config.ChatFromEnv()
	if v := cfg.MissingModelKey(); v != "" {
		log.Fatalf("%s environment variable is required", v)
	}

	model, err := agentbus.NewModel(cfg.ModelProvider, cfg.ModelName)
	if err != nil {
		log.Fatalf("failed to create model: %v", err)
	}

	ctx := context.Background()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	toolset, err := chat.NewToolset(connectCtx, cfg.BrokerURL)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to broker at %s: %v", cfg.BrokerURL, err)
	}
	defer toolset.Close()

	fmt.Printf("Connected to broker at %s with %d tools\n", cfg.BrokerURL, len(toolset.Tools()))

	client := chat.NewClient(model, toolset.Tools(), func(o *chat.ClientOptions) {
		o.SessionID = uuid.NewString()
		o.Instruction = "You are a helpful assistant. Use web_tool for questions about current " +
			"events and rag_tool for questions about the knowledge base. Answer directly when no " +
			"tool is needed."
	})

	fmt.Println("Type your question (or 'exit' to quit):")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		turnCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
		answer, err := client.Send(turnCtx, input)
		cancel()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(answer)
	}
}
