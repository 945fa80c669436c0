// Package config loads service configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads environment variables from .env files. Loads in
// priority order: .env.local (highest), then .env. Missing files are not an
// error; already-set variables are never overridden.
func LoadEnvFiles() error {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Getenv returns the value of key or fallback when unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Agent configures an A2A agent service.
type Agent struct {
	// Addr is the listen address.
	Addr string
	// ModelProvider selects the chat model backend ("openai" or "anthropic").
	ModelProvider string
	// ModelName overrides the provider's default model id when non-empty.
	ModelName string
	// OpenAIAPIKey authorizes model and embedding calls.
	OpenAIAPIKey string
	// AnthropicAPIKey authorizes model calls when the provider is anthropic.
	AnthropicAPIKey string
	// TavilyAPIKey authorizes web search calls (web agent only).
	TavilyAPIKey string
}

// AgentFromEnv reads agent configuration, with addr as the default listen
// address.
func AgentFromEnv(addr string) Agent {
	return Agent{
		Addr:            Getenv("AGENT_ADDR", addr),
		ModelProvider:   Getenv("MODEL_PROVIDER", "openai"),
		ModelName:       os.Getenv("MODEL_NAME"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		TavilyAPIKey:    os.Getenv("TAVILY_API_KEY"),
	}
}

// MissingModelKey returns the name of the unset credential variable required
// by the configured provider, or "" when the credential is present.
func (a Agent) MissingModelKey() string {
	return missingModelKey(a.ModelProvider, a.OpenAIAPIKey, a.AnthropicAPIKey)
}

// Broker configures the MCP tool broker.
type Broker struct {
	// Addr is the listen address.
	Addr string
	// WebAgentURL is the A2A endpoint of the web research agent.
	WebAgentURL string
	// RAGAgentURL is the A2A endpoint of the knowledge base agent.
	RAGAgentURL string
}

// BrokerFromEnv reads broker configuration.
func BrokerFromEnv() Broker {
	return Broker{
		Addr:        Getenv("BROKER_ADDR", ":8090"),
		WebAgentURL: Getenv("WEB_AGENT_URL", "http://localhost:8081"),
		RAGAgentURL: Getenv("RAG_AGENT_URL", "http://localhost:8082"),
	}
}

// Chat configures the interactive chat client.
type Chat struct {
	// BrokerURL is the MCP endpoint of the tool broker.
	BrokerURL string
	// ModelProvider selects the chat model backend ("openai" or "anthropic").
	ModelProvider string
	// ModelName overrides the provider's default model id when non-empty.
	ModelName string
	// OpenAIAPIKey authorizes model calls.
	OpenAIAPIKey string
	// AnthropicAPIKey authorizes model calls when the provider is anthropic.
	AnthropicAPIKey string
}

// ChatFromEnv reads chat client configuration.
func ChatFromEnv() Chat {
	return Chat{
		BrokerURL:       Getenv("BROKER_URL", "http://localhost:8090/mcp"),
		ModelProvider:   Getenv("MODEL_PROVIDER", "openai"),
		ModelName:       os.Getenv("MODEL_NAME"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}
}

// MissingModelKey returns the name of the unset credential variable required
// by the configured provider, or "" when the credential is present.
func (c Chat) MissingModelKey() string {
	return missingModelKey(c.ModelProvider, c.OpenAIAPIKey, c.AnthropicAPIKey)
}

func missingModelKey(provider, openaiKey, anthropicKey string) string {
	if provider == "anthropic" {
		if anthropicKey == "" {
			return "ANTHROPIC_API_KEY"
		}
		return ""
	}
	if openaiKey == "" {
		return "OPENAI_API_KEY"
	}
	return ""
}
