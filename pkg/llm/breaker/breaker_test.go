package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-workspace-be/pkg/llm"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls int
	err   error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "ok", nil
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, nil, opts...)
}

func TestBreakerPassesThrough(t *testing.T) {
	stub := &stubProvider{}
	p := Wrap(stub, Settings{MaxFailures: 2})

	out, err := p.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, gobreaker.StateClosed, p.State())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	boom := errors.New("boom")
	stub := &stubProvider{err: boom}
	p := Wrap(stub, Settings{MaxFailures: 2, OpenTimeout: time.Hour})

	_, err := p.Generate(context.Background(), "1")
	assert.ErrorIs(t, err, boom)
	_, err = p.Generate(context.Background(), "2")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, gobreaker.StateOpen, p.State())

	_, err = p.Generate(context.Background(), "3")
	assert.ErrorIs(t, err, llm.ErrUnavailable)
	assert.Equal(t, 2, stub.calls, "open breaker must not reach the provider")
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	stub := &stubProvider{err: context.Canceled}
	p := Wrap(stub, Settings{MaxFailures: 1, OpenTimeout: time.Hour})

	_, _ = p.Generate(context.Background(), "1")
	_, _ = p.Generate(context.Background(), "2")
	assert.Equal(t, gobreaker.StateClosed, p.State())
}
