// Package tips provides the dashboard's daily wellness tip and the
// journal's reflection prompts. Both are generated by an LLM when one is
// configured and fall back to a built-in list otherwise.
package tips

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/llm"
)

// Tip is a short wellness suggestion.
type Tip struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Generated bool   `json:"generated"`
}

// Cache stores generated tips between runs.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Service produces tips and prompts. A nil provider means fallback only.
type Service struct {
	provider llm.Provider
	cache    Cache
	cfg      Config
}

// NewService creates a tip service. provider and cache may be nil.
func NewService(provider llm.Provider, cache Cache, cfg Config) *Service {
	return &Service{provider: provider, cache: cache, cfg: cfg}
}

// CacheKey is the storage key for the tip of day.
func CacheKey(day time.Time) string {
	return "mindora_tip_" + day.Format("2006-01-02")
}

// DailyTip returns the tip for the day containing now. A generated tip is
// cached so the dashboard shows the same tip all day.
func (s *Service) DailyTip(ctx context.Context, now time.Time) Tip {
	key := CacheKey(now)
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, key); err != nil {
			slog.Warn("read cached tip", "key", key, "error", err)
		} else if ok {
			var t Tip
			if err := json.Unmarshal([]byte(raw), &t); err == nil {
				return t
			}
		}
	}

	if s.provider == nil {
		return FallbackTip(now)
	}

	t, err := s.generateTip(ctx, now)
	if err != nil {
		slog.Warn("generate daily tip", "error", err)
		return FallbackTip(now)
	}

	if s.cache != nil {
		if data, err := json.Marshal(t); err == nil {
			if err := s.cache.Set(ctx, key, string(data)); err != nil {
				slog.Warn("cache tip", "key", key, "error", err)
			}
		}
	}
	return t
}

// JournalPrompt returns a reflection prompt suited to the latest mood.
func (s *Service) JournalPrompt(ctx context.Context, zone assessment.MoodZone, now time.Time) string {
	if s.provider == nil {
		return FallbackPrompt(zone, now)
	}
	p, err := s.generatePrompt(ctx, zone)
	if err != nil {
		slog.Warn("generate journal prompt", "error", err)
		return FallbackPrompt(zone, now)
	}
	return p
}

type tipOutput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Service) generateTip(ctx context.Context, now time.Time) (Tip, error) {
	ctx = llm.WithPurpose(ctx, "daily-tip")

	var recent []string
	if s.cache != nil {
		for i := 1; i <= 3; i++ {
			raw, ok, err := s.cache.Get(ctx, CacheKey(now.AddDate(0, 0, -i)))
			if err != nil || !ok {
				continue
			}
			var t Tip
			if json.Unmarshal([]byte(raw), &t) == nil {
				recent = append(recent, t.Title)
			}
		}
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      tipSystemPrompt,
		Messages:    llm.UserMessage(buildTipUserMessage(now, recent)),
		Schema:      TipSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Tip{}, fmt.Errorf("tip generation: %w", err)
	}

	var out tipOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Tip{}, fmt.Errorf("parse tip response: %w", err)
	}
	if out.Body == "" {
		return Tip{}, fmt.Errorf("empty tip body")
	}
	return Tip{Title: out.Title, Body: out.Body, Generated: true}, nil
}

type promptOutput struct {
	Prompt string `json:"prompt"`
}

func (s *Service) generatePrompt(ctx context.Context, zone assessment.MoodZone) (string, error) {
	ctx = llm.WithPurpose(ctx, "journal-prompt")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      promptSystemPrompt,
		Messages:    llm.UserMessage(buildPromptUserMessage(zone)),
		Schema:      PromptSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("prompt generation: %w", err)
	}

	var out promptOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse prompt response: %w", err)
	}
	if out.Prompt == "" {
		return "", fmt.Errorf("empty prompt")
	}
	return out.Prompt, nil
}

// FallbackTip picks a built-in tip by calendar day.
func FallbackTip(now time.Time) Tip {
	return fallbackTips[dayIndex(now, len(fallbackTips))]
}

// FallbackPrompt picks a built-in prompt for zone by calendar day.
func FallbackPrompt(zone assessment.MoodZone, now time.Time) string {
	prompts, ok := fallbackPrompts[zone]
	if !ok {
		prompts = fallbackPrompts[assessment.MoodUnmeasured]
	}
	return prompts[dayIndex(now, len(prompts))]
}

func dayIndex(now time.Time, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(now.Format("2006-01-02")))
	return int(h.Sum32() % uint32(n))
}
