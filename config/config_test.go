package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	t.Setenv("AGENTBUS_TEST_KEY", "set")

	assert.Equal(t, "set", Getenv("AGENTBUS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", Getenv("AGENTBUS_TEST_MISSING", "fallback"))
}

func TestBrokerFromEnv(t *testing.T) {
	t.Setenv("BROKER_ADDR", ":9999")
	t.Setenv("WEB_AGENT_URL", "http://web:8081")

	cfg := BrokerFromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "http://web:8081", cfg.WebAgentURL)
	assert.Equal(t, "http://localhost:8082", cfg.RAGAgentURL)
}

func TestAgentFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_PROVIDER", "")

	cfg := AgentFromEnv(":8081")
	assert.Equal(t, ":8081", cfg.Addr)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "openai", cfg.ModelProvider)
	assert.Empty(t, cfg.MissingModelKey())
}

func TestAgentFromEnvAnthropicProvider(t *testing.T) {
	t.Setenv("MODEL_PROVIDER", "anthropic")
	t.Setenv("MODEL_NAME", "claude-3-5-haiku-20241022")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg := AgentFromEnv(":8080")
	assert.Equal(t, "anthropic", cfg.ModelProvider)
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.ModelName)
	assert.Equal(t, "sk-ant-test", cfg.AnthropicAPIKey)
	assert.Empty(t, cfg.MissingModelKey())
}

func TestMissingModelKey(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", Agent{ModelProvider: "openai"}.MissingModelKey())
	assert.Equal(t, "ANTHROPIC_API_KEY", Agent{ModelProvider: "anthropic"}.MissingModelKey())
	assert.Equal(t, "ANTHROPIC_API_KEY", Chat{ModelProvider: "anthropic"}.MissingModelKey())
	assert.Empty(t, Chat{ModelProvider: "anthropic", AnthropicAPIKey: "sk"}.MissingModelKey())
}

func TestLoadEnvFilesMissing(t *testing.T) {
	// Missing .env files are not an error.
	assert.NoError(t, LoadEnvFiles())
}
