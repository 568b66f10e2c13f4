// Package llm talks to the hosted text generation service.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/joestump/joe-writer/internal/config"
)

// Generator sends one prompt and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ConfigError reports a provider that could not be initialized. The server
// keeps running without a generator when it sees one.
type ConfigError struct {
	Provider string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("llm provider %q not configured: %v", e.Provider, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// New builds the Generator selected by cfg.Provider. All failures are
// *ConfigError.
func New(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	build, err := builderFor(cfg)
	if err != nil {
		return nil, &ConfigError{Provider: cfg.Provider, Err: err}
	}
	if cfg.FreshClient {
		// Build once up front so bad credentials surface at startup.
		if _, err := build(ctx); err != nil {
			return nil, &ConfigError{Provider: cfg.Provider, Err: err}
		}
		return &freshGenerator{build: build}, nil
	}
	g, err := build(ctx)
	if err != nil {
		return nil, &ConfigError{Provider: cfg.Provider, Err: err}
	}
	return g, nil
}

type buildFunc func(ctx context.Context) (Generator, error)

func builderFor(cfg config.LLMConfig) (buildFunc, error) {
	if cfg.Grounding && cfg.Provider != "gemini" {
		return nil, fmt.Errorf("search grounding is only supported by the gemini provider")
	}
	switch cfg.Provider {
	case "gemini", "":
		return func(ctx context.Context) (Generator, error) { return newGeminiGenerator(ctx, cfg) }, nil
	case "anthropic":
		return func(context.Context) (Generator, error) { return newAnthropicGenerator(cfg) }, nil
	case "openai", "openai-compatible":
		return func(context.Context) (Generator, error) { return newOpenAIGenerator(cfg) }, nil
	case "mock":
		return func(context.Context) (Generator, error) { return MockGenerator{}, nil }, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}

// freshGenerator constructs a new provider client for every call, trading
// setup latency for never holding on to stale credentials.
type freshGenerator struct {
	build buildFunc
}

func (f *freshGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g, err := f.build(ctx)
	if err != nil {
		return "", fmt.Errorf("build client: %w", err)
	}
	return g.Generate(ctx, prompt)
}
