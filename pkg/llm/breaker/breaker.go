// Package breaker guards an LLM provider with a circuit breaker so a failing
// upstream is not hammered by every request.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-workspace-be/pkg/llm"

	"github.com/sony/gobreaker"
)

type Settings struct {
	Name        string
	MaxFailures uint32
	OpenTimeout time.Duration
	// OnStateChange is optional.
	OnStateChange func(name string, from, to gobreaker.State)
}

type Provider struct {
	next llm.LLMProvider
	cb   *gobreaker.CircuitBreaker
}

var _ llm.LLMProvider = &Provider{}

func Wrap(next llm.LLMProvider, s Settings) *Provider {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if s.Name == "" {
		s.Name = "llm"
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		// Caller cancellations say nothing about the upstream.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: s.OnStateChange,
	})

	return &Provider{next: next, cb: cb}
}

func (p *Provider) State() gobreaker.State {
	return p.cb.State()
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.execute(func() (string, error) {
		return p.next.Chat(ctx, history, opts...)
	})
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.execute(func() (string, error) {
		return p.next.Generate(ctx, prompt, opts...)
	})
}

func (p *Provider) execute(call func() (string, error)) (string, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
		}
		return "", err
	}
	return out.(string), nil
}
