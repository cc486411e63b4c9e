package factory

import (
	"testing"

	"ai-workspace-be/pkg/llm/breaker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	for _, name := range []string{"openai", "ollama", ""} {
		p, err := NewLLMProvider(Config{Provider: name, Model: "m"})
		require.NoError(t, err, name)
		assert.IsType(t, &breaker.Provider{}, p)
	}

	_, err := NewLLMProvider(Config{Provider: "gemini"})
	assert.ErrorContains(t, err, "unsupported")
}
