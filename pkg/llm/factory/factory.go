package factory

import (
	"fmt"
	"time"

	"ai-workspace-be/pkg/llm"
	"ai-workspace-be/pkg/llm/breaker"
	"ai-workspace-be/pkg/llm/ollama"
	"ai-workspace-be/pkg/llm/openai"

	"github.com/sony/gobreaker"
)

type Config struct {
	Provider      string
	Model         string
	APIKey        string
	BaseURL       string
	OllamaBaseURL string
	Timeout       time.Duration

	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
	OnStateChange      func(name string, from, to gobreaker.State)
}

// NewLLMProvider builds the configured provider behind a circuit breaker.
func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	var provider llm.LLMProvider

	switch cfg.Provider {
	case "openai", "":
		provider = openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout)
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		provider = ollama.NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return breaker.Wrap(provider, breaker.Settings{
		Name:          "llm-" + cfg.Provider,
		MaxFailures:   cfg.BreakerMaxFailures,
		OpenTimeout:   cfg.BreakerOpenTimeout,
		OnStateChange: cfg.OnStateChange,
	}), nil
}
