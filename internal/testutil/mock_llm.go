package testutil

import (
	"context"

	"ai-workspace-be/pkg/llm"

	"github.com/stretchr/testify/mock"
)

// MockLLM stands in for the language model provider.
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// LastUserMessage returns the content of the final message of a history.
func LastUserMessage(history []llm.Message) string {
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Content
}
