package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	Prompts struct {
		Dir string
	}
	Generation struct {
		Mode string
	}
	Upload struct {
		MaxBytes int64
	}
	LLM LLMConfig
}

// LLMConfig selects and authenticates the text generation provider.
type LLMConfig struct {
	Provider        string
	Model           string
	APIKey          string
	BaseURL         string
	Project         string
	Location        string
	CredentialsJSON string
	Grounding       bool
	FreshClient     bool
	MaxTokens       int
}

// Load reads config from environment (JOE_ prefix) and optional joe-writer.yaml.
// A few unprefixed variables common on hosting platforms are honoured as
// fallbacks: PORT, GEMINI_API_KEY, GOOGLE_CLOUD_PROJECT and
// GCP_SERVICE_ACCOUNT_JSON.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JOE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("joe-writer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("prompts.dir", "prompts")
	v.SetDefault("generation.mode", "chain")
	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.location", "us-central1")

	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("fallback.gemini_api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("fallback.project", "GOOGLE_CLOUD_PROJECT")
	_ = v.BindEnv("fallback.credentials_json", "GCP_SERVICE_ACCOUNT_JSON")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
		if port := v.GetString("port"); port != "" {
			cfg.HTTP.Addr = ":" + port
		}
	}
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Prompts.Dir = v.GetString("prompts.dir")
	cfg.Generation.Mode = strings.ToLower(v.GetString("generation.mode"))
	cfg.Upload.MaxBytes = v.GetInt64("upload.max_bytes")

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v.GetString("llm.provider")))
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.Project = v.GetString("llm.project")
	cfg.LLM.Location = v.GetString("llm.location")
	cfg.LLM.CredentialsJSON = v.GetString("llm.credentials_json")
	cfg.LLM.Grounding = v.GetBool("llm.grounding")
	cfg.LLM.FreshClient = v.GetBool("llm.fresh_client")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")

	if cfg.LLM.Provider == "gemini" {
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = v.GetString("fallback.gemini_api_key")
		}
		if cfg.LLM.Project == "" {
			cfg.LLM.Project = v.GetString("fallback.project")
		}
		if cfg.LLM.CredentialsJSON == "" {
			cfg.LLM.CredentialsJSON = v.GetString("fallback.credentials_json")
		}
	}

	switch cfg.Generation.Mode {
	case "chain", "single":
	default:
		return nil, fmt.Errorf("invalid JOE_GENERATION_MODE %q (chain, single)", cfg.Generation.Mode)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return nil, fmt.Errorf("invalid JOE_LOG_FORMAT %q (console, json)", cfg.Log.Format)
	}
	if cfg.Upload.MaxBytes <= 0 {
		return nil, fmt.Errorf("JOE_UPLOAD_MAX_BYTES must be positive")
	}
	if cfg.Prompts.Dir == "" {
		return nil, fmt.Errorf("JOE_PROMPTS_DIR is required")
	}

	return cfg, nil
}
