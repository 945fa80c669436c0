package agentbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelDefaultsToOpenAI(t *testing.T) {
	m, err := NewModel("", "")
	require.NoError(t, err)
	assert.Equal(t, "openai", m.Info().Provider)
}

func TestNewModelOpenAIName(t *testing.T) {
	m, err := NewModel("openai", "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "openai", m.Info().Provider)
	assert.Equal(t, "gpt-4o", m.Info().Name)
}

func TestNewModelAnthropic(t *testing.T) {
	m, err := NewModel("anthropic", "claude-3-5-haiku-20241022")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", m.Info().Provider)
	assert.Equal(t, "claude-3-5-haiku-20241022", m.Info().Name)
}

func TestNewModelUnknownProvider(t *testing.T) {
	m, err := NewModel("cohere", "")
	assert.Nil(t, m)
	assert.ErrorContains(t, err, "unknown model provider")
}
