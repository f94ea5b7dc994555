package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"n":1}`), Usage: newUsage(10, 5)},
		MockResponse{Content: json.RawMessage(`{"n":2}`)},
	)

	first, err := mock.Generate(context.Background(), Request{Messages: UserMessage("a")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"n":1}` || first.Usage.TotalTokens != 15 {
		t.Fatalf("unexpected first response: %+v", first)
	}
	if first.StopReason != StopEnd {
		t.Fatalf("stop reason = %q, want %q", first.StopReason, StopEnd)
	}

	second, err := mock.Generate(context.Background(), Request{Messages: UserMessage("b")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"n":2}` {
		t.Fatalf("unexpected second response: %s", second.Content)
	}
	if mock.CallCount() != 2 || mock.Calls[1].Messages[0].Content != "b" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_AddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
}

func TestPurpose(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("default purpose = %q", got)
	}
	ctx := WithPurpose(context.Background(), "daily-tip")
	if got := PurposeFrom(ctx); got != "daily-tip" {
		t.Fatalf("purpose = %q, want daily-tip", got)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		want    string
	}{
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
		{"gemini-flash", geminiModels, "gemini-2.5-flash"},
		{"gemini-2.5-pro", geminiModels, "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected a price for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("cost = %f, want 0.75", got)
	}
	if LookupCost("google/gemini-2.0-flash-001") == nil {
		t.Fatal("expected vendor-prefixed id to resolve")
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
