package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one logical request, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls the exponential backoff of WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses small, cheap models. Tips and prompts are a few
// sentences each.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
		Timeout: 20 * time.Second,
	}
}

// ConfigFromEnv overlays MINDORA_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, dst := range map[string]*string{
		"MINDORA_LLM_PROVIDER":       &cfg.Provider,
		"MINDORA_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"MINDORA_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"MINDORA_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"MINDORA_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"MINDORA_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"MINDORA_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"MINDORA_GEMINI_MODEL":       &cfg.Gemini.Model,
		"MINDORA_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"MINDORA_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("MINDORA_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig looks for the vendors' own API key variables and
// returns a Config for the first one set, in the order Gemini, OpenAI,
// Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Resolve picks the provider to use. An explicit MINDORA_LLM_PROVIDER
// wins; otherwise the first provider with a MINDORA_* key, then the
// vendors' own key variables. ok is false when nothing is configured.
func Resolve() (Config, bool) {
	cfg := ConfigFromEnv()
	if os.Getenv("MINDORA_LLM_PROVIDER") != "" {
		return cfg, cfg.Validate() == nil
	}
	for _, p := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter} {
		cfg.Provider = p
		if cfg.Validate() == nil {
			return cfg, true
		}
	}
	return DiscoverConfig()
}

// Validate checks the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "MINDORA_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "MINDORA_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "MINDORA_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "MINDORA_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
