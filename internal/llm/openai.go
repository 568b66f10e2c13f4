package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/joestump/joe-writer/internal/config"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openaiGenerator struct {
	client    openai.Client
	model     string
	maxTokens int64
}

func newOpenAIGenerator(cfg config.LLMConfig) (*openaiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("JOE_LLM_API_KEY is required for openai")
	}
	if cfg.Provider == "openai-compatible" && cfg.BaseURL == "" {
		return nil, errors.New("JOE_LLM_BASE_URL is required for openai-compatible")
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(normalizeOpenAIBaseURL(cfg.BaseURL)))
	}

	return &openaiGenerator{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: int64(cfg.MaxTokens),
	}, nil
}

// normalizeOpenAIBaseURL makes sure the base URL ends in /v1/ so both
// "https://host" and "https://host/v1" work.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	return base + "/"
}

func (o *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if o.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(o.maxTokens)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
