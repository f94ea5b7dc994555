package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string", "maxLength": 60},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": []string{"calm", "focus"}},
			},
			"minutes": map[string]any{"type": "integer", "description": "length"},
		},
		"required": []any{"title"},
	})

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %v", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "title" {
		t.Fatalf("required = %v", s.Required)
	}
	title := s.Properties["title"]
	if title == nil || title.MaxLength == nil || *title.MaxLength != 60 {
		t.Fatalf("title = %+v", title)
	}
	tags := s.Properties["tags"]
	if tags.Type != genai.TypeArray || tags.Items == nil || len(tags.Items.Enum) != 2 {
		t.Fatalf("tags = %+v", tags)
	}
	if m := s.Properties["minutes"]; m.Type != genai.TypeInteger || m.Description != "length" {
		t.Fatalf("minutes = %+v", m)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), GeminiConfig{}); err == nil {
		t.Fatal("expected missing key error")
	}
}
