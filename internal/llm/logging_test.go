package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mindora-app/mindora/internal/store"
)

type recordingAppender struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingAppender) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"title":"Breathe"}`),
		Usage:   newUsage(12, 8),
	})
	events := &recordingAppender{}
	p := WithLogging(mock, "anthropic", events)

	ctx := WithPurpose(context.Background(), "daily-tip")
	_, err := p.Generate(ctx, Request{
		System:   "be kind",
		Messages: UserMessage("one tip please"),
		Schema:   &Schema{Name: "wellness-tip", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("events = %d, want 1", len(events.events))
	}
	ev := events.events[0]
	if ev.Provider != "anthropic" || ev.Model != "mock" || ev.Purpose != "daily-tip" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 8 {
		t.Fatalf("unexpected usage: %+v", ev)
	}
	for _, want := range []string{"[system]", "be kind", "[user]", "one tip please", "[schema: wellness-tip]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
	if ev.ResponseBody != `{"title":"Breathe"}` {
		t.Fatalf("response body = %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	events := &recordingAppender{}

	_, err := WithLogging(mock, "openai", events).Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	ev := events.events[0]
	if ev.Success || ev.ErrorMessage != "boom" || ev.Purpose != "unknown" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestLogging_AppendFailureIgnored(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	events := &recordingAppender{err: errors.New("disk full")}

	if _, err := WithLogging(mock, "gemini", events).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("append failure must not fail the call: %v", err)
	}
}
