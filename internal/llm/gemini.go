package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/joestump/joe-writer/internal/config"
)

const (
	defaultGeminiModel = "gemini-2.5-pro"
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

type geminiGenerator struct {
	client    *genai.Client
	model     string
	grounding bool
}

// newGeminiGenerator picks the credential path: a service-account JSON blob
// goes through Vertex AI, otherwise a plain API key uses the Gemini API.
func newGeminiGenerator(ctx context.Context, cfg config.LLMConfig) (*geminiGenerator, error) {
	cc := &genai.ClientConfig{}
	switch {
	case cfg.CredentialsJSON != "":
		if cfg.Project == "" {
			return nil, errors.New("JOE_LLM_PROJECT is required with service account credentials")
		}
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes:          []string{cloudPlatformScope},
			CredentialsJSON: []byte(cfg.CredentialsJSON),
		})
		if err != nil {
			return nil, fmt.Errorf("load service account credentials: %w", err)
		}
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
		cc.Credentials = creds
	case cfg.APIKey != "":
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	default:
		return nil, errors.New("JOE_LLM_API_KEY or JOE_LLM_CREDENTIALS_JSON is required for gemini")
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(cfg.BaseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiGenerator{client: client, model: model, grounding: cfg.Grounding}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var gc *genai.GenerateContentConfig
	if g.grounding {
		gc = &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), gc)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return text, nil
}
