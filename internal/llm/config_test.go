package llm

import (
	"context"
	"strings"
	"testing"
	"time"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MINDORA_LLM_PROVIDER", "MINDORA_LLM_TIMEOUT",
		"MINDORA_ANTHROPIC_API_KEY", "MINDORA_OPENAI_API_KEY",
		"MINDORA_GEMINI_API_KEY", "MINDORA_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("MINDORA_LLM_PROVIDER", "openai")
	t.Setenv("MINDORA_OPENAI_API_KEY", "sk-test")
	t.Setenv("MINDORA_OPENAI_MODEL", "gpt-4.1-nano")
	t.Setenv("MINDORA_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4.1-nano" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %s, want 5s", cfg.Timeout)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("defaults lost: %+v", cfg.Anthropic)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "MINDORA_ANTHROPIC_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}

	cfg.Provider = ProviderMock
	if err := cfg.Validate(); err != nil {
		t.Fatalf("mock needs no key: %v", err)
	}

	cfg.Provider = "llama"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown provider error")
	}
}

func TestResolve(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		if _, ok := Resolve(); ok {
			t.Fatal("expected no provider")
		}
	})

	t.Run("mindora key picks provider", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("MINDORA_GEMINI_API_KEY", "g-key")
		cfg, ok := Resolve()
		if !ok || cfg.Provider != ProviderGemini {
			t.Fatalf("got %q ok=%v", cfg.Provider, ok)
		}
	})

	t.Run("vendor key discovered", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("OPENROUTER_API_KEY", "or-key")
		cfg, ok := Resolve()
		if !ok || cfg.Provider != ProviderOpenRouter || cfg.OpenRouter.APIKey != "or-key" {
			t.Fatalf("got %+v ok=%v", cfg, ok)
		}
	})

	t.Run("explicit provider without key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("MINDORA_LLM_PROVIDER", "openai")
		t.Setenv("ANTHROPIC_API_KEY", "a-key")
		if _, ok := Resolve(); ok {
			t.Fatal("explicit provider without a key must not fall back")
		}
	})
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	events := &recordingAppender{}

	p, err := NewProvider(context.Background(), cfg, events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q", p.ModelID())
	}

	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(context.Background(), cfg, events); err == nil {
		t.Fatal("expected error for openai without key")
	}
}
